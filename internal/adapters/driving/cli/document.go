package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

var pdfInfoFormat string

var pdfInfoCmd = &cobra.Command{
	Use:   "pdf-info [file]",
	Short: "Show PDF metadata",
	Long:  `Reports page count, document info fields, encryption and whether the first pages carry a text layer.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPDFInfo,
}

var documentInfoCmd = &cobra.Command{
	Use:   "document-info [document-id]",
	Short: "Show stored metadata for a processed document",
	Long: `Looks up a document from a previous batch by its id.

Processed documents are not retained, so this always reports that the
capability is not implemented.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentInfo,
}

func init() {
	pdfInfoCmd.Flags().StringVarP(&pdfInfoFormat, "format", "f", "", "output format: json, yaml or table")
	rootCmd.AddCommand(pdfInfoCmd)
	rootCmd.AddCommand(documentInfoCmd)
}

func runPDFInfo(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return notConfigured("analysis")
	}

	format, err := resolveFormat(cmd, pdfInfoFormat)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	info, err := analysisService.InspectPDF(commandContext(cmd), data)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", args[0], err)
	}

	if format != formatTable {
		return writeStructured(cmd, format, info)
	}

	cmd.Printf("File: %s (%s)\n", args[0], humanize.Bytes(uint64(info.FileSize)))
	cmd.Printf("  Pages: %d\n", info.PageCount)
	printField(cmd, "Title", info.Title)
	printField(cmd, "Author", info.Author)
	printField(cmd, "Subject", info.Subject)
	printField(cmd, "Creator", info.Creator)
	printField(cmd, "Producer", info.Producer)
	printField(cmd, "Created", info.CreationDate)
	printField(cmd, "Modified", info.ModificationDate)
	cmd.Printf("  Encrypted: %s\n", yesNo(info.Encrypted))
	cmd.Printf("  Text layer: %s\n", yesNo(info.HasText))
	return nil
}

func runDocumentInfo(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return notConfigured("analysis")
	}

	info, err := analysisService.DocumentInfo(commandContext(cmd), args[0])
	if errors.Is(err, domain.ErrNotImplemented) {
		return fmt.Errorf("document info is not available: %w", err)
	}
	if err != nil {
		return err
	}
	return writeStructured(cmd, formatJSON, info)
}

func printField(cmd *cobra.Command, name, value string) {
	if value != "" {
		cmd.Printf("  %s: %s\n", name, value)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

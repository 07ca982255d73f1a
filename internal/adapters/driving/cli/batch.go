package cli

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// defaultCLIUser is recorded in the audit trail for CLI runs without --user.
const defaultCLIUser = "cli"

var (
	batchQuery     string
	batchLanguage  string
	batchUser      string
	batchRequestID string
	batchFormat    string
)

var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Process a batch of documents",
	Long: `Extracts text from each file, summarises it and, when --query is given,
ranks the documents by similarity to the query.

Without a query the results keep the order of the files on the command line.
With a query they are sorted by score, highest first. A file that cannot be
read by the extractor is reported as failed without affecting the others.

Examples:
  docsift batch contract.pdf scan.png notes.txt
  docsift batch --query "employment contract" --lang en *.pdf
  docsift batch --format yaml report.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchQuery, "query", "q", "", "rank documents by similarity to this query")
	batchCmd.Flags().StringVarP(&batchLanguage, "lang", "l", "", "document language: pt, en or es")
	batchCmd.Flags().StringVarP(&batchUser, "user", "u", defaultCLIUser, "user id recorded in the audit trail")
	batchCmd.Flags().StringVar(&batchRequestID, "request-id", "", "request id (default: generated)")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "", "output format: json, yaml or table")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchService == nil {
		return notConfigured("batch")
	}

	format, err := resolveFormat(cmd, batchFormat)
	if err != nil {
		return err
	}

	docs := make([]domain.DocumentInput, 0, len(args))
	var total uint64
	for _, path := range args {
		doc, err := readDocument(path)
		if err != nil {
			return err
		}
		total += uint64(len(doc.Content))
		docs = append(docs, doc)
	}

	requestID := batchRequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	if format == formatTable {
		cmd.Printf("Processing %d files (%s)...\n", len(docs), humanize.Bytes(total))
	}

	run, err := batchService.Process(commandContext(cmd), domain.BatchRequest{
		RequestID: requestID,
		UserID:    batchUser,
		Query:     batchQuery,
		Language:  batchLanguage,
		Documents: docs,
	})
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	if format != formatTable {
		return writeStructured(cmd, format, run)
	}
	printBatchTable(cmd, run)
	return nil
}

// readDocument loads a file and guesses its content type from the
// extension, falling back to content sniffing.
func readDocument(path string) (domain.DocumentInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.DocumentInput{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return domain.DocumentInput{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Content:     data,
	}, nil
}

func printBatchTable(cmd *cobra.Command, run *domain.BatchRun) {
	cmd.Printf("Batch %s (%s)\n", run.RequestID, run.Mode())
	if run.Query != nil {
		cmd.Printf("Query: %s\n", *run.Query)
	}
	cmd.Printf("Documents: %d total, %d succeeded, %d failed in %s\n",
		run.TotalDocuments, run.SuccessfulDocuments, run.FailedDocuments, formatSeconds(run.TotalProcessingTime))
	cmd.Println()

	for i := range run.Results {
		r := &run.Results[i]
		if !r.Succeeded() {
			msg := ""
			if r.ErrorMessage != nil {
				msg = *r.ErrorMessage
			}
			cmd.Printf("  [%d] %s  FAILED (%s)\n", i+1, r.Filename, r.ErrorKind)
			cmd.Printf("      %s\n", msg)
			cmd.Println()
			continue
		}

		if r.SimilarityScore != nil {
			cmd.Printf("  [%d] %s  (%.2f)\n", i+1, r.Filename, *r.SimilarityScore)
		} else {
			cmd.Printf("  [%d] %s\n", i+1, r.Filename)
		}
		if r.Justification != nil {
			cmd.Printf("      %s\n", *r.Justification)
		}
		if r.Summary != nil && *r.Summary != "" {
			cmd.Printf("      Summary: %s\n", oneLine(*r.Summary))
		}
		for _, excerpt := range r.RelevantExcerpts {
			cmd.Printf("      > %s\n", oneLine(excerpt))
		}
		cmd.Println()
	}
}

func formatSeconds(s float64) string {
	return time.Duration(s * float64(time.Second)).Round(time.Millisecond).String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

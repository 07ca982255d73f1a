package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/extractors/plaintext"
)

var (
	analyzeFile     string
	analyzeLanguage string
	analyzeUser     string
	analyzeFormat   string

	extractInfoFile   string
	extractInfoFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyse a single text",
	Long: `Summarises a text and reports keywords, sentiment, categories and the
detected language. The text is taken from the argument or from --file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

var extractInfoCmd = &cobra.Command{
	Use:   "extract-info [text]",
	Short: "Extract structured information from text",
	Long: `Finds email addresses, phone numbers, URLs, dates, CPF/CNPJ numbers and
monetary values. The text is taken from the argument or from --file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtractInfo,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "read the text from a file")
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "lang", "l", "", "text language: pt, en or es")
	analyzeCmd.Flags().StringVarP(&analyzeUser, "user", "u", defaultCLIUser, "user id recorded in the audit trail")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "output format: json, yaml or table")
	rootCmd.AddCommand(analyzeCmd)

	extractInfoCmd.Flags().StringVar(&extractInfoFile, "file", "", "read the text from a file")
	extractInfoCmd.Flags().StringVarP(&extractInfoFormat, "format", "f", "", "output format: json, yaml or table")
	rootCmd.AddCommand(extractInfoCmd)
}

// inputText returns the text argument or the decoded contents of file.
func inputText(args []string, file string) (string, error) {
	switch {
	case len(args) > 0 && file != "":
		return "", errors.New("pass either text or --file, not both")
	case len(args) > 0:
		return args[0], nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return plaintext.Decode(data), nil
	default:
		return "", errors.New("no text given: pass it as an argument or with --file")
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return notConfigured("analysis")
	}

	format, err := resolveFormat(cmd, analyzeFormat)
	if err != nil {
		return err
	}
	text, err := inputText(args, analyzeFile)
	if err != nil {
		return err
	}

	analysis, err := analysisService.AnalyzeText(commandContext(cmd), analyzeUser, text, analyzeLanguage)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if format != formatTable {
		return writeStructured(cmd, format, analysis)
	}
	printAnalysisTable(cmd, analysis)
	return nil
}

func printAnalysisTable(cmd *cobra.Command, a *domain.TextAnalysis) {
	cmd.Println("Text Analysis")
	cmd.Println("=============")
	cmd.Println()
	cmd.Printf("  Words: %s\n", humanize.Comma(int64(a.WordCount)))
	cmd.Printf("  Characters: %s\n", humanize.Comma(int64(a.CharCount)))
	language := a.Language
	if a.DetectedLanguage != "" {
		language += " (detected: " + a.DetectedLanguage + ")"
	}
	cmd.Printf("  Language: %s\n", language)
	cmd.Printf("  Sentiment: %s (%.2f)\n", a.Sentiment.Label, a.Sentiment.Confidence)
	cmd.Printf("  Categories: %s\n", strings.Join(a.Categories, ", "))
	cmd.Printf("  Keywords: %s\n", strings.Join(a.Keywords, ", "))
	cmd.Println()
	cmd.Printf("  Summary: %s\n", oneLine(a.Summary))
}

func runExtractInfo(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return notConfigured("analysis")
	}

	format, err := resolveFormat(cmd, extractInfoFormat)
	if err != nil {
		return err
	}
	text, err := inputText(args, extractInfoFile)
	if err != nil {
		return err
	}

	info, err := analysisService.ExtractInfo(commandContext(cmd), text)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if format != formatTable {
		return writeStructured(cmd, format, info)
	}
	printInfoTable(cmd, info)
	return nil
}

func printInfoTable(cmd *cobra.Command, info *domain.ExtractedInfo) {
	if info.Count() == 0 {
		cmd.Println("No information found.")
		return
	}

	section := func(title string, values []string) {
		if len(values) == 0 {
			return
		}
		cmd.Printf("[%s]\n", title)
		for _, v := range values {
			cmd.Printf("  %s\n", v)
		}
		cmd.Println()
	}

	section("Emails", info.Emails)
	section("Phones", info.Phones)
	section("URLs", info.URLs)
	dates := make([]string, 0, len(info.Dates))
	for _, d := range info.Dates {
		if d.ISO != "" && d.ISO != d.Text {
			dates = append(dates, d.Text+" ("+d.ISO+")")
		} else {
			dates = append(dates, d.Text)
		}
	}
	section("Dates", dates)
	section("Documents", info.Documents)
	section("Monetary Values", info.MonetaryValues)
}

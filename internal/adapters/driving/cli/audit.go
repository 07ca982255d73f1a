package cli

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

var (
	auditUser    string
	auditPage    int
	auditPerPage int
	auditFormat  string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the audit trail",
	Long:  `Commands for listing audit records and usage statistics.`,
}

var auditLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List audit records, newest first",
	RunE:  runAuditLogs,
}

var auditStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics",
	RunE:  runAuditStats,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check component health",
	RunE:  runHealth,
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported document languages",
	RunE:  runLanguages,
}

func init() {
	auditCmd.PersistentFlags().StringVarP(&auditUser, "user", "u", "", "only records for this user")
	auditCmd.PersistentFlags().StringVarP(&auditFormat, "format", "f", "", "output format: json, yaml or table")
	auditLogsCmd.Flags().IntVar(&auditPage, "page", 1, "page number, starting at 1")
	auditLogsCmd.Flags().IntVar(&auditPerPage, "per-page", 50, "records per page")
	auditCmd.AddCommand(auditLogsCmd)
	auditCmd.AddCommand(auditStatsCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(languagesCmd)
}

func runAuditLogs(cmd *cobra.Command, _ []string) error {
	if auditService == nil {
		return notConfigured("audit")
	}

	format, err := resolveFormat(cmd, auditFormat)
	if err != nil {
		return err
	}

	page, err := auditService.Logs(commandContext(cmd), auditUser, auditPage, auditPerPage)
	if err != nil {
		return fmt.Errorf("failed to list audit logs: %w", err)
	}

	if format != formatTable {
		return writeStructured(cmd, format, page)
	}

	if len(page.Records) == 0 {
		cmd.Println("No audit records found.")
		return nil
	}

	cmd.Printf("Audit records (page %d, %d per page)\n", page.Page, page.PerPage)
	cmd.Println()
	for i := range page.Records {
		rec := &page.Records[i]
		elapsed := "-"
		if rec.ProcessingTime != nil {
			elapsed = formatSeconds(*rec.ProcessingTime)
		}
		cmd.Printf("  %s  %-7s  %s  user=%s  %s\n",
			humanize.Time(rec.Timestamp), rec.Status, rec.RequestID, rec.UserID, elapsed)
		if rec.Query != nil {
			cmd.Printf("      query: %s\n", *rec.Query)
		}
		if rec.Error != nil {
			cmd.Printf("      error: %s\n", *rec.Error)
		}
	}
	return nil
}

func runAuditStats(cmd *cobra.Command, _ []string) error {
	if auditService == nil {
		return notConfigured("audit")
	}

	format, err := resolveFormat(cmd, auditFormat)
	if err != nil {
		return err
	}

	stats, err := auditService.Stats(commandContext(cmd), auditUser)
	if err != nil {
		return fmt.Errorf("failed to get audit stats: %w", err)
	}

	if format != formatTable {
		return writeStructured(cmd, format, stats)
	}

	scope := "all users"
	if auditUser != "" {
		scope = "user " + auditUser
	}
	cmd.Printf("Usage statistics (%s)\n", scope)
	cmd.Printf("  Requests: %s\n", humanize.Comma(int64(stats.TotalRequests)))
	cmd.Printf("  Successful: %s\n", humanize.Comma(int64(stats.SuccessfulRequests)))
	cmd.Printf("  Failed: %s\n", humanize.Comma(int64(stats.FailedRequests)))
	cmd.Printf("  Success rate: %.1f%%\n", stats.SuccessRate()*100)
	cmd.Printf("  Average time: %s\n", formatSeconds(stats.AvgProcessingTime))
	cmd.Printf("  Total time: %s\n", formatSeconds(stats.TotalProcessingTime))
	return nil
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if auditService == nil {
		return notConfigured("audit")
	}

	report := auditService.Health(commandContext(cmd))

	cmd.Printf("Status: %s\n", report.Status)
	names := make([]string, 0, len(report.Components))
	for name := range report.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.Printf("  %s: %s\n", name, report.Components[name])
	}

	if report.Status != domain.HealthHealthy {
		return fmt.Errorf("service is %s", report.Status)
	}
	return nil
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return notConfigured("analysis")
	}

	cmd.Println("Supported languages:")
	for _, lang := range analysisService.SupportedLanguages() {
		cmd.Printf("  %-3s %-10s (OCR: %s)\n", lang.Code, lang.Name, lang.OCRCode)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/logger"
)

var (
	watchQuery    string
	watchLanguage string
	watchUser     string
	watchSettle   time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Process documents as they arrive in a directory",
	Long: `Watches a directory and runs every new or changed file through the
pipeline as a one-document batch. A file is processed once it has not been
written to for the --settle interval.

Examples:
  docsift watch ./inbox
  docsift watch --query "invoice overdue" ./scans`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchQuery, "query", "q", "", "score each document against this query")
	watchCmd.Flags().StringVarP(&watchLanguage, "lang", "l", "", "document language: pt, en or es")
	watchCmd.Flags().StringVarP(&watchUser, "user", "u", defaultCLIUser, "user id recorded in the audit trail")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 500*time.Millisecond, "quiet period before a file is processed")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if batchService == nil {
		return notConfigured("batch")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for new documents (Ctrl+C to stop)\n", dir)
	return watchLoop(commandContext(cmd), watcher.Events, watcher.Errors, watchSettle, func(path string) {
		processWatched(commandContext(cmd), cmd, path)
	})
}

// watchLoop calls process for each file once it has been quiet for settle.
// It returns when ctx is done or the event channel closes.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	settle time.Duration,
	process func(path string),
) error {
	pending := make(map[string]*time.Timer)
	ready := make(chan string)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if strings.HasPrefix(filepath.Base(ev.Name), ".") {
				continue
			}
			if t, ok := pending[ev.Name]; ok {
				t.Reset(settle)
				continue
			}
			name := ev.Name
			pending[name] = time.AfterFunc(settle, func() {
				select {
				case ready <- name:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			// A timer reset after it fired delivers the path twice.
			if _, ok := pending[path]; !ok {
				continue
			}
			delete(pending, path)
			if info, err := os.Stat(path); err != nil || info.IsDir() {
				continue
			}
			process(path)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func processWatched(ctx context.Context, cmd *cobra.Command, path string) {
	doc, err := readDocument(path)
	if err != nil {
		cmd.Printf("%s: %v\n", filepath.Base(path), err)
		return
	}

	run, err := batchService.Process(ctx, domain.BatchRequest{
		RequestID: uuid.New().String(),
		UserID:    watchUser,
		Query:     watchQuery,
		Language:  watchLanguage,
		Documents: []domain.DocumentInput{doc},
	})
	if err != nil {
		cmd.Printf("%s: %v\n", doc.Filename, err)
		return
	}

	for i := range run.Results {
		r := &run.Results[i]
		switch {
		case !r.Succeeded():
			msg := ""
			if r.ErrorMessage != nil {
				msg = *r.ErrorMessage
			}
			cmd.Printf("%s: failed (%s) %s\n", r.Filename, r.ErrorKind, msg)
		case r.SimilarityScore != nil:
			cmd.Printf("%s: completed (%.2f) %s\n", r.Filename, *r.SimilarityScore, oneLine(deref(r.Summary)))
		default:
			cmd.Printf("%s: completed %s\n", r.Filename, oneLine(deref(r.Summary)))
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest a directory and keep it in sync",
	Long: `Processes every supported file under the directory, then watches it
for new and changed files until interrupted. Hidden files and directories
are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if newConnector == nil {
		return errors.New("connector not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := newConnector(args[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Validate(ctx); err != nil {
		return err
	}

	docs, errs := conn.FullSync(ctx)
	var raws []domain.RawDocument
	for raw := range docs {
		raws = append(raws, raw)
	}
	if err := <-errs; err != nil && ctx.Err() == nil {
		return fmt.Errorf("scanning %s: %w", args[0], err)
	}

	cmd.Printf("Found %d supported files in %s\n", len(raws), args[0])
	for _, r := range documentService.Upload(ctx, raws) {
		printResult(cmd, r)
	}

	changes, err := conn.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching %s: %w", args[0], err)
	}
	cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", args[0])

	for change := range changes {
		switch change.Type {
		case domain.ChangeCreated, domain.ChangeUpdated:
			printResult(cmd, documentService.Process(ctx, change.Document))
		case domain.ChangeDeleted:
			logger.Info("%s removed; its chunks stay until documents clear", change.Document.Filename)
		}
	}
	return nil
}

func printResult(cmd *cobra.Command, r domain.ProcessResult) {
	if r.Err != nil {
		cmd.Printf("✗ Error processing %s: %v\n", r.Filename, r.Err)
		return
	}
	cmd.Printf("✓ Processed %s (%d chunks)\n", r.Filename, len(r.Chunks))
}

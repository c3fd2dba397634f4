package cli

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Process documents into the knowledge base",
	Long: `Extracts text from each file, splits it into chunks, embeds them and
stores them in the vector store.

Supported formats: .txt, .csv, .png, .jpg, .jpeg, .pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage the knowledge base",
	Long:  `Count or remove the stored document chunks.`,
}

var documentsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many chunks are stored",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsCount,
}

var documentsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored chunk",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsClear,
}

// clearConfirmed skips the confirmation prompt.
var clearConfirmed bool

func init() {
	documentsClearCmd.Flags().BoolVarP(&clearConfirmed, "yes", "y", false, "do not ask for confirmation")

	documentsCmd.AddCommand(documentsCountCmd)
	documentsCmd.AddCommand(documentsClearCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	raws := make([]domain.RawDocument, 0, len(args))
	for _, path := range args {
		raws = append(raws, domain.RawDocument{Filename: filepath.Base(path), Path: path})
	}

	results := documentService.Upload(cmd.Context(), raws)

	failed := 0
	for _, r := range results {
		printResult(cmd, r)
		if r.Err != nil {
			failed++
		}
	}

	if failed == len(results) {
		return fmt.Errorf("no documents processed (%d failed)", failed)
	}
	cmd.Printf("\nSuccessfully processed %d documents!\n", len(results)-failed)
	return nil
}

func runDocumentsCount(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	count, err := documentService.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count documents: %w", err)
	}

	if count == 0 {
		cmd.Println("No documents uploaded yet")
		return nil
	}
	cmd.Printf("%d chunks in knowledge base\n", count)
	return nil
}

func runDocumentsClear(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if !clearConfirmed {
		cmd.Print("Delete all stored documents? [y/N]: ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := documentService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}
	cmd.Println("All documents cleared")
	return nil
}

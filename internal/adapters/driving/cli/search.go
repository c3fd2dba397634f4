package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
	askModel    string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base",
	Long: `Embeds the query and returns the most similar stored chunks with
their similarity scores. No language model is called.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Retrieves the chunks most relevant to the question and asks the
language model to answer from them. Requires OPENROUTER_API_KEY.

The number of chunks is set with: docchat settings set retrieval.k <n>`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultK, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "language model to use")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if ragService == nil {
		return errors.New("rag service not configured")
	}

	results := ragService.Search(cmd.Context(), args[0], searchLimit)

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RetrievedChunk) error {
	if results == nil {
		results = []domain.RetrievedChunk{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.RetrievedChunk) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, r.SourceName(), r.Similarity)
		cmd.Printf("      %s\n", snippet(r.Content, 160))
		cmd.Println()
	}
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := requireLLM(); err != nil {
		return err
	}
	if documentService != nil {
		if n, err := documentService.Count(cmd.Context()); err == nil && n == 0 {
			return fmt.Errorf("%w: upload documents first with: docchat upload <files>", domain.ErrNoDocuments)
		}
	}

	question := strings.TrimSpace(args[0])
	if question == "" {
		return fmt.Errorf("%w: please enter a question", domain.ErrInvalidInput)
	}

	answer := ragService.Ask(cmd.Context(), question, askModel)
	cmd.Println(answer.Text)

	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, src := range answer.Sources {
			cmd.Printf("  [%d] %s (%.2f)\n", i+1, src.SourceName(), src.Similarity)
		}
	}

	return answer.Err
}

// snippet flattens whitespace and cuts s to at most n runes.
func snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

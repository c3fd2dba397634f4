package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driving/tui"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driving"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/services"
)

// resumeID is the session to reopen.
var resumeID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with your documents",
	Long: `Starts an interactive chat. In a terminal this opens the chat UI;
otherwise questions are read line by line from standard input.

Commands:
  /upload <path...>  process files (globs allowed)
  /model <id>        switch language model
  /clear             clear the chat history
  /clear-docs        delete all stored documents
  /quit              exit

Controls:
  Enter    - Send
  Ctrl+L   - Clear chat
  Esc      - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&resumeID, "resume", "", "resume a previous session by ID")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if err := requireLLM(); err != nil {
		return err
	}
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if pingServices != nil {
		if err := pingServices(cmd.Context()); err != nil {
			cmd.PrintErrf("Warning: %v\n", err)
		}
	}

	session, err := openSession(cmd.Context())
	if err != nil {
		return err
	}

	if isTerminal(cmd) {
		return tui.Run(cmd.Context(), &tui.Ports{Session: session, Settings: settingsService})
	}
	return runREPL(cmd, session)
}

func openSession(ctx context.Context) (*services.Session, error) {
	model := domain.DefaultModel
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s.LLM.Model != "" {
			model = s.LLM.Model
		}
	}

	if resumeID != "" {
		return services.ResumeSession(ctx, resumeID, documentService, ragService, historyStore, model)
	}
	return services.NewSession(documentService, ragService, historyStore, model), nil
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runREPL answers questions read line by line from the command's input.
func runREPL(cmd *cobra.Command, session driving.ChatSession) error {
	ctx := cmd.Context()
	cmd.Printf("Session %s (model %s). Type /quit to exit.\n", session.ID(), session.Model())

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			done, err := replCommand(cmd, session, line)
			if err != nil {
				cmd.PrintErrf("Error: %v\n", err)
			}
			if done {
				return nil
			}
			continue
		}

		exchange, err := session.Ask(ctx, line)
		if errors.Is(err, domain.ErrNoDocuments) || errors.Is(err, domain.ErrInvalidInput) {
			cmd.PrintErrf("Error: %s\n", userMessage(err))
			continue
		}
		cmd.Printf("Assistant: %s\n", exchange.Answer)
		if len(exchange.Sources) > 0 {
			cmd.Printf("Sources: %s\n", strings.Join(uniqueStrings(exchange.Sources), ", "))
		}
		cmd.Println()
	}
	return scanner.Err()
}

func replCommand(cmd *cobra.Command, session driving.ChatSession, line string) (bool, error) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case "/quit", "/exit":
		return true, nil

	case "/clear":
		if err := session.ClearChat(cmd.Context()); err != nil {
			return false, err
		}
		cmd.Println("Chat cleared")

	case "/clear-docs":
		if err := session.ClearDocuments(cmd.Context()); err != nil {
			return false, err
		}
		cmd.Println("All documents cleared")

	case "/model":
		if len(args) == 0 {
			cmd.Printf("Model: %s\n", session.Model())
			return false, nil
		}
		session.SetModel(args[0])
		if settingsService != nil {
			if err := settingsService.SetModel(args[0]); err != nil {
				return false, err
			}
		}
		cmd.Printf("Model set to %s\n", args[0])

	case "/upload":
		raws, err := expandPaths(args)
		if err != nil {
			return false, err
		}
		for _, r := range session.Upload(cmd.Context(), raws) {
			printResult(cmd, r)
		}

	default:
		return false, fmt.Errorf("unknown command %s", name)
	}
	return false, nil
}

// expandPaths turns glob patterns into raw documents.
func expandPaths(patterns []string) ([]domain.RawDocument, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no paths given", domain.ErrInvalidInput)
	}
	var raws []domain.RawDocument
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern %q", domain.ErrInvalidInput, pattern)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: no files match %s", domain.ErrInvalidInput, pattern)
		}
		for _, path := range matches {
			raws = append(raws, domain.RawDocument{Filename: filepath.Base(path), Path: path})
		}
	}
	return raws, nil
}

func userMessage(err error) string {
	if errors.Is(err, domain.ErrNoDocuments) {
		return services.MsgNoDocuments
	}
	return services.MsgEmptyQuestion
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

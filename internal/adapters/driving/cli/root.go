// Package cli implements the docchat command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driving"
	"github.com/iamshubh29/RAG-Project-CSI/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Command annotations that limit what setup builds.
const (
	annotationSettingsOnly = "docchat/settings-only"
	annotationSkipServices = "docchat/skip-services"
)

var (
	verbose   bool
	configDir string
)

// Services holds everything the commands run against.
type Services struct {
	Documents driving.DocumentService
	RAG       driving.RAGService
	History   driven.HistoryStore

	// NewConnector opens a connector over a local directory for watch.
	NewConnector func(root string) (driven.Connector, error)

	// LLMErr explains why questions cannot be answered, if they cannot.
	LLMErr error

	// Ping checks that the embedding service and language model answer. May be nil.
	Ping func(ctx context.Context) error

	// Warnings are non-fatal problems found while wiring.
	Warnings []string

	// Close releases every resource. May be nil.
	Close func()
}

// Wiring builds services on demand once flags are parsed.
type Wiring struct {
	Settings func(configDir string) (driving.SettingsService, error)
	Services func(ctx context.Context, configDir string, settings driving.SettingsService) (*Services, error)
}

var (
	wiring Wiring

	settingsService driving.SettingsService
	documentService driving.DocumentService
	ragService      driving.RAGService
	historyStore    driven.HistoryStore
	newConnector    func(root string) (driven.Connector, error)
	llmErr          error
	pingServices    func(ctx context.Context) error
	closeServices   func()
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with your documents",
	Long: `DocChat answers questions about your documents.

Upload text, CSV, image and PDF files, then ask questions. Relevant passages
are retrieved from a vector store and sent to a language model as context.

Credentials are read from the environment or a .env file:
  OPENROUTER_API_KEY   language model (required for ask and chat)
  SUPABASE_URL         vector store
  SUPABASE_ANON_KEY    vector store`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.docchat)")
}

// SetWiring sets how services are built.
func SetWiring(w Wiring) {
	wiring = w
}

// Execute runs the root command. Services are closed whether or not the
// command succeeds.
func Execute(ctx context.Context) error {
	defer teardown()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("loading .env: %v", err)
	}
	logger.SetVerbose(verbose)

	if cmd.Annotations[annotationSkipServices] == "true" {
		return nil
	}

	if settingsService == nil && wiring.Settings != nil {
		s, err := wiring.Settings(configDir)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		settingsService = s
	}

	if cmd.Annotations[annotationSettingsOnly] == "true" || documentService != nil || wiring.Services == nil {
		return nil
	}

	svc, err := wiring.Services(cmd.Context(), configDir, settingsService)
	if err != nil {
		return err
	}
	for _, w := range svc.Warnings {
		logger.Warn("%s", w)
	}
	documentService = svc.Documents
	ragService = svc.RAG
	historyStore = svc.History
	newConnector = svc.NewConnector
	llmErr = svc.LLMErr
	pingServices = svc.Ping
	closeServices = svc.Close
	return nil
}

func teardown() {
	if closeServices != nil {
		closeServices()
		closeServices = nil
	}
}

// requireLLM fails commands that need the language model when it is unavailable.
func requireLLM() error {
	if ragService == nil {
		return errors.New("rag service not configured")
	}
	return llmErr
}

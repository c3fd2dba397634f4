package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the language model, retrieval, chunking and storage settings.

Credentials are never stored here. Set them in the environment or a .env file.`,
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runSettingsShow,
}

var settingsModelCmd = &cobra.Command{
	Use:   "model [id]",
	Short: "Set the default language model",
	Long: `Set the language model used by ask and chat.

Available models:
  anthropic/claude-3-haiku    (default)
  google/gemini-pro
  microsoft/wizardlm-2-8x22b

Other OpenRouter model IDs are accepted as-is.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runSettingsModel,
}

var settingsSetCmd = &cobra.Command{
	Use:         "set [key] [value]",
	Short:       "Set a single setting",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:         "keys",
	Short:       "List the settings that can be set",
	Annotations: map[string]string{annotationSettingsOnly: "true"},
	RunE:        runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsModelCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("File: %s\n", settingsService.Path())
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	cmd.Printf("  Timeout: %s\n", settings.LLM.Timeout)
	cmd.Printf("  API Key: %s\n", keyStatus(settings.LLM.APIKey))
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Chunks per question (k): %d\n", settings.Retrieval.K)
	cmd.Printf("  Similarity threshold: %.2f\n", settings.Retrieval.Threshold)
	cmd.Println()

	cmd.Println("[Chunker]")
	cmd.Printf("  Chunk size: %d\n", settings.Chunker.ChunkSize)
	cmd.Printf("  Overlap: %d\n", settings.Chunker.Overlap)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider)
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Provider == domain.AIProviderOpenAI {
		cmd.Printf("  API Key: %s\n", keyStatus(settings.Embedding.APIKey))
	}
	cmd.Println()

	cmd.Println("[Vector Store]")
	cmd.Printf("  Backend: %s\n", settings.VectorStore.Backend)
	switch settings.VectorStore.Backend {
	case domain.VectorBackendSupabase:
		cmd.Printf("  URL: %s\n", valueOrUnset(settings.VectorStore.URL))
		cmd.Printf("  Key: %s\n", keyStatus(settings.VectorStore.Key))
	case domain.VectorBackendPostgres:
		cmd.Printf("  DSN: %s\n", keyStatus(settings.VectorStore.DSN))
	case domain.VectorBackendElasticsearch:
		cmd.Printf("  Addresses: %s\n", valueOrUnset(strings.Join(settings.VectorStore.Addresses, ", ")))
		cmd.Printf("  Index: %s\n", settings.VectorStore.Index)
	case domain.VectorBackendSQLite:
		cmd.Printf("  Path: %s\n", valueOrUnset(settings.VectorStore.Path))
	case domain.VectorBackendMemory, domain.VectorBackendNull:
	}
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Workers: %d\n", settings.Ingest.Workers)
	cmd.Printf("  Max upload size: %s\n", settings.Ingest.MaxUploadSize)
	cmd.Println()

	cmd.Println("[Archive]")
	if settings.Archive.Endpoint == "" {
		cmd.Println("  Disabled")
	} else {
		cmd.Printf("  Endpoint: %s\n", settings.Archive.Endpoint)
		cmd.Printf("  Bucket: %s\n", settings.Archive.Bucket)
		cmd.Printf("  Access Key: %s\n", keyStatus(settings.Archive.AccessKey))
	}

	return nil
}

func runSettingsModel(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetModel(args[0]); err != nil {
		return fmt.Errorf("failed to set model: %w", err)
	}
	cmd.Printf("Model set to %s\n", args[0])
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func keyStatus(key string) string {
	if key == "" {
		return "(not set)"
	}
	return maskAPIKey(key)
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

// maskAPIKey masks an API key for display, showing only the first and last 4 characters.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

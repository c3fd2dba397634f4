package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/ai"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/config/file"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/ocr/tesseract"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/storage/sqlite"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driving/cli"
	"github.com/iamshubh29/RAG-Project-CSI/internal/connectors/filesystem"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driving"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/services"
	"github.com/iamshubh29/RAG-Project-CSI/internal/normalisers"
	"github.com/iamshubh29/RAG-Project-CSI/internal/postprocessors"
)

// resolveDir returns configDir, or ~/.docchat when it is empty.
func resolveDir(configDir string) (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	return file.DefaultDir()
}

func newSettingsService(configDir string) (driving.SettingsService, error) {
	dir, err := resolveDir(configDir)
	if err != nil {
		return nil, err
	}
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, err
	}
	return services.NewSettingsService(store), nil
}

// newServices builds the ingestion and question-answering services from settings.
func newServices(ctx context.Context, configDir string, settingsService driving.SettingsService) (*cli.Services, error) {
	dir, err := resolveDir(configDir)
	if err != nil {
		return nil, err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	maxUpload, err := settings.Ingest.MaxUploadBytes()
	if err != nil {
		return nil, err
	}

	local, err := sqlite.NewStore(filepath.Join(dir, "data"))
	if err != nil {
		return nil, err
	}

	result, err := ai.Initialise(ctx, settings, local)
	if err != nil {
		local.Close()
		return nil, err
	}

	ocr := tesseract.New()
	registry := normalisers.NewDefaultRegistry(ocr, ocr)

	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors)
	pipeline, err := postprocessors.BuildPipeline(processors, domain.PipelineConfigFor(settings.Chunker))
	if err != nil {
		result.Close()
		local.Close()
		return nil, err
	}

	documents := services.NewDocumentService(registry, pipeline, result.EmbeddingService, result.VectorStore)
	documents.SetWorkers(settings.Ingest.Workers)
	documents.SetMaxUploadSize(maxUpload)
	if result.Archive != nil {
		documents.SetArchive(result.Archive)
	}

	prompts, err := file.NewPromptStore(filepath.Join(dir, "prompts"))
	if err != nil {
		result.Close()
		local.Close()
		return nil, err
	}
	rag := services.NewRAGService(result.EmbeddingService, result.VectorStore, result.LLMService, settings.Retrieval)
	rag.SetPromptStore(prompts)

	warnings := result.Warnings
	if w := ocrWarning(); w != "" {
		warnings = append(warnings, w)
	}

	return &cli.Services{
		Documents: documents,
		RAG:       rag,
		History:   local.HistoryStore(),
		NewConnector: func(root string) (driven.Connector, error) {
			return filesystem.New(root, registry.Supports), nil
		},
		LLMErr:   result.LLMErr,
		Ping: func(ctx context.Context) error {
			return ai.Ping(ctx, result)
		},
		Warnings: warnings,
		Close: func() {
			result.Close()
			local.Close()
		},
	}, nil
}

// ocrWarning reports missing OCR tools. Only images and scanned PDFs need them.
func ocrWarning() string {
	if err := tesseract.CheckAvailable(); err != nil {
		return fmt.Sprintf("%v: image and scanned PDF uploads will fail\n%s", err, tesseract.InstallInstructions())
	}
	return ""
}

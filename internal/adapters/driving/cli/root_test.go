package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/storage/memory"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driving"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/services"
)

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := Execute(context.Background())
	return buf.String(), err
}

// executeWithInput runs the root command reading stdin from input.
func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	rootCmd.SetIn(strings.NewReader(input))
	return execute(t, args...)
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "docchat", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{"upload", "ask", "search", "documents", "chat", "watch", "mcp", "settings", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestSetup_BuildsServicesFromWiring(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	settingsService, documentService, ragService = nil, nil, nil

	docs := &mockDocumentService{count: 9}
	closed := false
	var gotDir string
	SetWiring(Wiring{
		Settings: func(dir string) (driving.SettingsService, error) {
			gotDir = dir
			return services.NewSettingsService(memory.NewConfigStore()), nil
		},
		Services: func(_ context.Context, _ string, _ driving.SettingsService) (*Services, error) {
			return &Services{
				Documents: docs,
				RAG:       &mockRAGService{},
				Warnings:  []string{"vector store credentials missing"},
				Close:     func() { closed = true },
			}, nil
		},
	})

	out, err := execute(t, "documents", "count", "--config-dir", "/tmp/docchat-test")

	require.NoError(t, err)
	assert.Contains(t, out, "9 chunks in knowledge base")
	assert.Equal(t, "/tmp/docchat-test", gotDir)
	assert.True(t, closed)
}

func TestExecute_ClosesServicesWhenCommandFails(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	documentService, ragService = nil, nil

	closed := false
	SetWiring(Wiring{
		Services: func(context.Context, string, driving.SettingsService) (*Services, error) {
			return &Services{
				Documents: &mockDocumentService{count: 1},
				RAG:       &mockRAGService{},
				LLMErr:    errors.New("OPENROUTER_API_KEY is not set"),
				Close:     func() { closed = true },
			}, nil
		},
	})

	_, err := execute(t, "ask", "anything?")

	require.EqualError(t, err, "OPENROUTER_API_KEY is not set")
	assert.True(t, closed)
	assert.Nil(t, closeServices)
}

func TestSetup_SettingsCommandsSkipServices(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	documentService = nil

	SetWiring(Wiring{
		Services: func(context.Context, string, driving.SettingsService) (*Services, error) {
			return nil, errors.New("should not be called")
		},
	})

	_, err := execute(t, "settings", "show")

	assert.NoError(t, err)
}

func TestSetup_WiringError(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	documentService = nil

	SetWiring(Wiring{
		Services: func(context.Context, string, driving.SettingsService) (*Services, error) {
			return nil, errors.New("sqlite: disk full")
		},
	})

	_, err := execute(t, "documents", "count")

	assert.EqualError(t, err, "sqlite: disk full")
}

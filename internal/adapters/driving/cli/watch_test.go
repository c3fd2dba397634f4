package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
)

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch [dir]", watchCmd.Use)
}

func TestWatchCmd_SyncsThenProcessesChanges(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.connector.docs = []domain.RawDocument{
		{Filename: "a.txt", Path: "/kb/a.txt"},
		{Filename: "sub/b.csv", Path: "/kb/sub/b.csv"},
	}
	ts.connector.changes = []domain.RawDocumentChange{
		{Type: domain.ChangeCreated, Document: domain.RawDocument{Filename: "c.txt", Path: "/kb/c.txt"}},
		{Type: domain.ChangeUpdated, Document: domain.RawDocument{Filename: "a.txt", Path: "/kb/a.txt"}},
		{Type: domain.ChangeDeleted, Document: domain.RawDocument{Filename: "sub/b.csv"}},
	}

	out, err := execute(t, "watch", "/kb")

	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 supported files in /kb")
	assert.Contains(t, out, "✓ Processed sub/b.csv (2 chunks)")
	assert.Contains(t, out, "Watching /kb for changes")
	assert.Contains(t, out, "✓ Processed c.txt (2 chunks)")
	require.Len(t, ts.documents.uploaded, 4)
	assert.True(t, ts.connector.closed)
}

func TestWatchCmd_InvalidDirectory(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.connector.validateErr = fmt.Errorf("%w: /nope does not exist", domain.ErrInvalidInput)

	_, err := execute(t, "watch", "/nope")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, ts.documents.uploaded)
}

func TestWatchCmd_ConnectorError(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	newConnector = func(string) (driven.Connector, error) { return nil, errors.New("too many open files") }

	_, err := execute(t, "watch", "/kb")

	assert.EqualError(t, err, "too many open files")
}

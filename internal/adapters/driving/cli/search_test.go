package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

func sampleChunks() []domain.RetrievedChunk {
	return []domain.RetrievedChunk{
		{Content: "Revenue grew 12%\nin Q3.", Metadata: domain.ChunkMetadata{Filename: "report.pdf", ChunkID: 1}, Similarity: 0.82},
		{Content: "Costs were flat.", Similarity: 0.41},
	}
}

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Table(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.rag.results = sampleChunks()

	out, err := execute(t, "search", "revenue")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] report.pdf (0.82)")
	assert.Contains(t, out, "Revenue grew 12% in Q3.")
	assert.Contains(t, out, "[2] Unknown (0.41)")
	assert.Equal(t, domain.DefaultK, ts.rag.lastK)
}

func TestSearchCmd_Limit(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "search", "revenue", "-n", "7")

	require.NoError(t, err)
	assert.Equal(t, 7, ts.rag.lastK)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSON(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.rag.results = sampleChunks()

	out, err := execute(t, "search", "revenue", "--json")

	require.NoError(t, err)
	var decoded []domain.RetrievedChunk
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "report.pdf", decoded[0].Metadata.Filename)
	assert.Contains(t, out, "\"chunk_id\": 1")
}

func TestSearchCmd_JSONEmpty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "search", "revenue", "--json")

	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestAskCmd_PrintsAnswerAndSources(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.rag.answer = domain.Answer{Text: "Revenue grew 12%.", Sources: sampleChunks()}

	out, err := execute(t, "ask", "How did revenue change?", "--model", domain.ModelGeminiPro)

	require.NoError(t, err)
	assert.Contains(t, out, "Revenue grew 12%.")
	assert.Contains(t, out, "Sources:")
	assert.Contains(t, out, "[1] report.pdf (0.82)")
	assert.Equal(t, domain.ModelGeminiPro, ts.rag.lastModel)
}

func TestAskCmd_MissingCredentials(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	llmErr = fmt.Errorf("%w: OPENROUTER_API_KEY is not set", domain.ErrMissingCredentials)

	_, err := execute(t, "ask", "anything")

	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
	assert.Empty(t, ts.rag.questions)
}

func TestAskCmd_NoDocuments(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.documents.count = 0

	_, err := execute(t, "ask", "anything")

	assert.ErrorIs(t, err, domain.ErrNoDocuments)
	assert.Empty(t, ts.rag.questions)
}

func TestAskCmd_EmptyQuestion(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "ask", "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAskCmd_GenerationError(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.rag.answer = domain.Answer{
		Text: "Error generating response: openrouter error (status 502): bad gateway",
		Err:  fmt.Errorf("%w: bad gateway", domain.ErrGeneration),
	}

	out, err := execute(t, "ask", "anything")

	assert.ErrorIs(t, err, domain.ErrGeneration)
	assert.Contains(t, out, "Error generating response:")
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "a b c", snippet("a\n b\tc", 10))
	assert.Equal(t, "héll...", snippet("héllo world", 4))
}

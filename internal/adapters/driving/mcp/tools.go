package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// SearchInput is the input schema for the search_documents tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the text to find similar passages for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of passages to return (default 3)"`
}

// SearchOutput is the output schema for the search_documents tool.
type SearchOutput struct {
	Results []ChunkOutput `json:"results"`
	Count   int           `json:"count"`
}

// ChunkOutput represents a single retrieved passage.
type ChunkOutput struct {
	Filename   string  `json:"filename"`
	ChunkID    int     `json:"chunk_id"`
	Similarity float64 `json:"similarity"`
	Content    string  `json:"content"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the uploaded documents"`
	Model    string `json:"model,omitempty" jsonschema:"OpenRouter model id (default anthropic/claude-3-haiku)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string        `json:"answer"`
	Model   string        `json:"model"`
	Sources []ChunkOutput `json:"sources"`
}

// UploadInput is the input schema for the upload_documents tool.
type UploadInput struct {
	Paths []string `json:"paths" jsonschema:"local file paths to process (.txt, .csv, .png, .jpg, .jpeg, .pdf)"`
}

// UploadOutput is the output schema for the upload_documents tool.
type UploadOutput struct {
	Results   []UploadResultOutput `json:"results"`
	Processed int                  `json:"processed"`
	Failed    int                  `json:"failed"`
}

// UploadResultOutput reports one processed file.
type UploadResultOutput struct {
	Filename string `json:"filename"`
	Chunks   int    `json:"chunks"`
	Error    string `json:"error,omitempty"`
}

// CountInput is the (empty) input schema for the document_count tool.
type CountInput struct{}

// CountOutput is the output schema for the document_count tool.
type CountOutput struct {
	Count int `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Find the passages of the uploaded documents most similar to a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the uploaded documents as context",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_documents",
		Description: "Process local files into the knowledge base",
	}, s.handleUpload)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "document_count",
		Description: "Number of chunks stored in the knowledge base",
	}, s.handleCount)
}

// handleSearch handles the search_documents tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if input.Query == "" {
		return nil, SearchOutput{}, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultK
	}

	results := s.ports.RAG.Search(ctx, input.Query, limit)
	return nil, SearchOutput{Results: chunkOutputs(results), Count: len(results)}, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.LLMErr != nil {
		return nil, AskOutput{}, s.ports.LLMErr
	}
	if input.Question == "" {
		return nil, AskOutput{}, fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}
	if n, err := s.ports.Documents.Count(ctx); err == nil && n == 0 {
		return nil, AskOutput{}, fmt.Errorf("%w: upload documents first", domain.ErrNoDocuments)
	}

	answer := s.ports.RAG.Ask(ctx, input.Question, input.Model)
	if answer.Err != nil {
		return nil, AskOutput{}, answer.Err
	}

	return nil, AskOutput{
		Answer:  answer.Text,
		Model:   answer.Model,
		Sources: chunkOutputs(answer.Sources),
	}, nil
}

// handleUpload handles the upload_documents tool invocation.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, UploadOutput, error) {
	if len(input.Paths) == 0 {
		return nil, UploadOutput{}, fmt.Errorf("%w: at least one path is required", domain.ErrInvalidInput)
	}

	raws := make([]domain.RawDocument, len(input.Paths))
	for i, path := range input.Paths {
		raws[i] = domain.RawDocument{Filename: filepath.Base(path), Path: path}
	}

	results := s.ports.Documents.Upload(ctx, raws)

	output := UploadOutput{Results: make([]UploadResultOutput, len(results))}
	for i, r := range results {
		output.Results[i] = UploadResultOutput{Filename: r.Filename, Chunks: len(r.Chunks)}
		if r.Err != nil {
			output.Results[i].Error = r.Err.Error()
			output.Failed++
			continue
		}
		output.Processed++
	}
	return nil, output, nil
}

// handleCount handles the document_count tool invocation.
func (s *Server) handleCount(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CountInput,
) (*mcp.CallToolResult, CountOutput, error) {
	n, err := s.ports.Documents.Count(ctx)
	if err != nil {
		return nil, CountOutput{}, err
	}
	return nil, CountOutput{Count: n}, nil
}

func chunkOutputs(chunks []domain.RetrievedChunk) []ChunkOutput {
	out := make([]ChunkOutput, len(chunks))
	for i, c := range chunks {
		out[i] = ChunkOutput{
			Filename:   c.SourceName(),
			ChunkID:    c.Metadata.ChunkID,
			Similarity: c.Similarity,
			Content:    c.Content,
		}
	}
	return out
}

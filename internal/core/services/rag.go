package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driving"
	"github.com/iamshubh29/RAG-Project-CSI/internal/logger"
)

// Ensure RAGService implements the interface.
var _ driving.RAGService = (*RAGService)(nil)

// NoContextAnswer is returned without calling the model when retrieval finds nothing.
const NoContextAnswer = "Sorry, I couldn't find any relevant content in your uploaded documents " +
	"to answer this question. Try uploading a more detailed file or rephrasing your question."

// RAGService retrieves chunks for a question and asks the language model.
type RAGService struct {
	embedder  driven.EmbeddingService
	store     driven.VectorStore
	llm       driven.LLMService
	prompts   driven.PromptStore
	k         int
	threshold float64
	model     string
}

// NewRAGService creates a RAG service. The llm parameter is optional (can be
// nil); Ask then reports domain.ErrMissingCredentials.
func NewRAGService(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	llm driven.LLMService,
	retrieval domain.RetrievalSettings,
) *RAGService {
	s := &RAGService{
		embedder:  embedder,
		store:     store,
		llm:       llm,
		k:         retrieval.K,
		threshold: retrieval.Threshold,
		model:     domain.DefaultModel,
	}
	if s.k < 1 {
		s.k = domain.DefaultK
	}
	if llm != nil && llm.ModelName() != "" {
		s.model = llm.ModelName()
	}
	return s
}

// SetPromptStore sets where the answer template is loaded from.
func (s *RAGService) SetPromptStore(prompts driven.PromptStore) {
	s.prompts = prompts
}

// DefaultModel returns the model used when Ask is given none.
func (s *RAGService) DefaultModel() string {
	return s.model
}

// Search embeds query and returns at most k similar chunks.
// A k below 1 uses the configured default. Failures are logged and yield no results.
func (s *RAGService) Search(ctx context.Context, query string, k int) []domain.RetrievedChunk {
	if k < 1 {
		k = s.k
	}
	chunks, err := s.search(ctx, query, k)
	if err != nil {
		logger.Warn("search failed: %v", err)
		return nil
	}
	return chunks
}

func (s *RAGService) search(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error) {
	opts := domain.SearchOptions{Limit: k, Threshold: s.threshold}

	if placeholder, ok := s.store.(driven.PlaceholderSearcher); ok {
		return placeholder.SearchText(ctx, query, opts)
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %w", domain.ErrRetrieval, err)
	}

	chunks, err := s.store.Search(ctx, vector, opts)
	if err != nil {
		if errors.Is(err, domain.ErrRetrieval) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrRetrieval, err)
	}
	logger.Debug("retrieved %d chunks for %q", len(chunks), query)
	return chunks, nil
}

// Ask answers question from the most similar chunks.
func (s *RAGService) Ask(ctx context.Context, question, model string) domain.Answer {
	if model == "" {
		model = s.model
	}
	answer := domain.Answer{Question: question, Model: model}

	answer.Sources = s.Search(ctx, question, s.k)
	if len(answer.Sources) == 0 {
		answer.Text = NoContextAnswer
		return answer
	}

	if s.llm == nil {
		answer.Err = fmt.Errorf("%w: %w: OPENROUTER_API_KEY is not set", domain.ErrGeneration, domain.ErrMissingCredentials)
		answer.Text = "Error generating response: " + answer.Err.Error()
		return answer
	}

	prompt := fmt.Sprintf(s.template(), BuildContext(answer.Sources), question)
	text, err := s.llm.Complete(ctx, prompt, driven.CompleteOptions{Model: model})
	if err != nil {
		logger.Error("generation with %s failed: %v", model, err)
		answer.Err = fmt.Errorf("%w: %w", domain.ErrGeneration, err)
		answer.Text = "Error generating response: " + err.Error()
		return answer
	}

	answer.Text = text
	return answer
}

// BuildContext numbers chunks from 1 and labels each with its source file.
func BuildContext(chunks []domain.RetrievedChunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = fmt.Sprintf("Document %d (from %s):\n%s", i+1, c.SourceName(), c.Content)
	}
	return strings.Join(parts, "\n\n")
}

func (s *RAGService) template() string {
	if s.prompts == nil {
		return driven.DefaultRAGAnswerPrompt
	}
	prompt, err := s.prompts.Load(driven.PromptRAGAnswer)
	if err != nil {
		logger.Warn("load prompt: %v", err)
		return driven.DefaultRAGAnswerPrompt
	}
	return prompt
}

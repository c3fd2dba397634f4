package driven

import (
	"context"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// Connector lists and watches files for ingestion.
type Connector interface {
	// Validate checks the connector can read its source.
	Validate(ctx context.Context) error

	// FullSync emits every supported file currently in the source.
	FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Watch emits changes until ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Close releases resources.
	Close() error
}

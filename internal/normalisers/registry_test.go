package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
)

type fakeNormaliser struct {
	exts []string
	text string
}

func (f *fakeNormaliser) SupportedExtensions() []string { return f.exts }

func (f *fakeNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	return &driven.NormaliseResult{Document: domain.Document{Filename: raw.Filename, Content: f.text}}, nil
}

func TestRegistry_DispatchIsCaseInsensitive(t *testing.T) {
	r := NewRegistry(
		&fakeNormaliser{exts: []string{".txt"}, text: "text"},
		&fakeNormaliser{exts: []string{".png", ".jpg"}, text: "image"},
	)

	tests := []struct {
		filename string
		want     string
	}{
		{"notes.txt", "text"},
		{"NOTES.TXT", "text"},
		{"photo.JPG", "image"},
		{"photo.png", "image"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result, err := r.Normalise(context.Background(), &domain.RawDocument{Filename: tt.filename})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Document.Content)
		})
	}
}

func TestRegistry_UnsupportedFormat(t *testing.T) {
	r := NewRegistry(&fakeNormaliser{exts: []string{".txt"}})

	_, err := r.Normalise(context.Background(), &domain.RawDocument{Filename: "slides.pptx"})
	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), ".pptx")

	_, err = r.Normalise(context.Background(), &domain.RawDocument{Filename: "Makefile"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRegistry_NilDocument(t *testing.T) {
	_, err := NewRegistry().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistry_SupportedExtensions(t *testing.T) {
	r := NewRegistry(
		&fakeNormaliser{exts: []string{".txt"}},
		&fakeNormaliser{exts: []string{".PNG", ".csv"}},
	)

	assert.Equal(t, []string{".csv", ".png", ".txt"}, r.SupportedExtensions())
	assert.True(t, r.Supports("DATA.CSV"))
	assert.False(t, r.Supports("data.xlsx"))
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	r := NewRegistry(&fakeNormaliser{exts: []string{".txt"}, text: "first"})
	r.Register(&fakeNormaliser{exts: []string{".txt"}, text: "second"})

	result, err := r.Normalise(context.Background(), &domain.RawDocument{Filename: "a.txt"})
	require.NoError(t, err)
	assert.Equal(t, "second", result.Document.Content)
}

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry(nil, nil)

	assert.Equal(t, []string{".csv", ".jpeg", ".jpg", ".pdf", ".png", ".txt"}, r.SupportedExtensions())

	result, err := r.Normalise(context.Background(), &domain.RawDocument{
		Filename: "TEST.TXT",
		Content:  []byte("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", result.Document.Content)
	assert.Equal(t, ".txt", result.Document.FileType)
}

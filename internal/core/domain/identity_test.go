package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentID(t *testing.T) {
	t.Run("is the first eight hex characters of the md5 digest", func(t *testing.T) {
		// md5("test.txt") = dd18bf3a8e0a2a3e53e2661c7fb53534
		assert.Equal(t, "dd18bf3a", DocumentID("test.txt"))
	})

	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, DocumentID("report.pdf"), DocumentID("report.pdf"))
	})

	t.Run("has fixed length", func(t *testing.T) {
		assert.Len(t, DocumentID(""), DocumentIDLength)
		assert.Len(t, DocumentID("a very long filename with spaces.csv"), DocumentIDLength)
	})

	t.Run("differs for different filenames", func(t *testing.T) {
		assert.NotEqual(t, DocumentID("a.txt"), DocumentID("b.txt"))
	})

	t.Run("is a prefix of the full digest", func(t *testing.T) {
		full := FullDocumentID("data.csv")
		assert.Len(t, full, 32)
		assert.Equal(t, full[:8], DocumentID("data.csv"))
	})
}

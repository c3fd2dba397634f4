package sidebar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSidebar_Empty(t *testing.T) {
	b := New(nil)

	view := b.View()

	assert.Contains(t, view, "Knowledge Base")
	assert.Contains(t, view, "No documents uploaded yet")
	assert.Contains(t, view, "Total Questions: 0")
	assert.NotContains(t, view, "Recent Questions")
}

func TestSidebar_WithActivity(t *testing.T) {
	b := New(nil)
	b.Documents = 12
	b.Questions = 2
	b.Model = "anthropic/claude-3-haiku"
	b.Recent = []string{"first question..."}
	b.SetHeight(30)

	view := b.View()

	assert.Contains(t, view, "12 chunks in knowledge base")
	assert.Contains(t, view, "Total Questions: 2")
	assert.Contains(t, view, "Model: claude-3-haiku")
	assert.Contains(t, view, "• first question...")
}

func TestSidebar_ModelName(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"anthropic/claude-3-haiku", "claude-3-haiku"},
		{"microsoft/wizardlm-2-8x22b", "wizardlm-2-8x22b"},
		{"local-model", "local-model"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			b := &Sidebar{Model: tt.model}
			assert.Equal(t, tt.want, b.modelName())
		})
	}
}

// Package sidebar renders the chat session summary.
package sidebar

import (
	"fmt"
	"strings"

	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driving/tui/styles"
)

// Width is the sidebar's outer width in cells.
const Width = 34

// Sidebar shows document count, question count, model and recent questions.
type Sidebar struct {
	styles *styles.Styles
	height int

	Documents int
	Questions int
	Model     string
	Recent    []string
}

// New creates a sidebar.
func New(s *styles.Styles) *Sidebar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Sidebar{styles: s}
}

// SetHeight sets the outer height.
func (b *Sidebar) SetHeight(height int) {
	b.height = height
}

// View renders the sidebar.
func (b *Sidebar) View() string {
	var sb strings.Builder

	sb.WriteString(b.styles.Title.Render("Knowledge Base"))
	sb.WriteString("\n")
	if b.Documents > 0 {
		sb.WriteString(b.styles.Success.Render(fmt.Sprintf("%d chunks in knowledge base", b.Documents)))
	} else {
		sb.WriteString(b.styles.Muted.Render("No documents uploaded yet"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(b.styles.Title.Render("Chat Statistics"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total Questions: %d\n", b.Questions))
	sb.WriteString(fmt.Sprintf("Model: %s\n", b.modelName()))

	if len(b.Recent) > 0 {
		sb.WriteString("\n")
		sb.WriteString(b.styles.Title.Render("Recent Questions"))
		sb.WriteString("\n")
		for _, q := range b.Recent {
			sb.WriteString(b.styles.Muted.Render("• " + q))
			sb.WriteString("\n")
		}
	}

	style := b.styles.Sidebar.Width(Width - 2)
	if b.height > 2 {
		style = style.Height(b.height - 2)
	}
	return style.Render(strings.TrimRight(sb.String(), "\n"))
}

// modelName drops the provider prefix ("anthropic/claude-3-haiku" -> "claude-3-haiku").
func (b *Sidebar) modelName() string {
	if i := strings.LastIndex(b.Model, "/"); i >= 0 {
		return b.Model[i+1:]
	}
	return b.Model
}

// Package tui provides the interactive chat interface for docchat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driving"
)

// Ports aggregates the driving ports the chat TUI uses.
type Ports struct {
	// Session is the chat being shown. Required.
	Session driving.ChatSession

	// Settings persists a model chosen with /model. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Session == nil {
		return ErrMissingSession
	}
	return nil
}

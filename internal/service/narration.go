package service

import (
	"log/slog"

	"github.com/ekisa-team/narrator/internal/narration"
)

// Narration is a service abstraction for step explanations.
type Narration struct{}

// NewNarration creates a new Narration service.
func NewNarration() *Narration {
	return &Narration{}
}

// Explain returns the explanation for a teaching step.
func (s *Narration) Explain(req narration.Request) string {
	slog.Debug("Explaining step", "algorithm", req.Algorithm, "difficulty", req.Difficulty)
	return narration.Explain(req)
}

// internal/newsletter/engine.go

// Package newsletter is the facade over the generation engine: records
// in, finished document and manifest out. It owns no I/O beyond what
// the injected prose generator performs.
package newsletter

import (
	"context"

	"github.com/dalemusser/courtpost/internal/domain/models"
	"github.com/dalemusser/courtpost/internal/newsletter/assemble"
	"github.com/dalemusser/courtpost/internal/newsletter/booking"
	"github.com/dalemusser/courtpost/internal/newsletter/capacity"
	"github.com/dalemusser/courtpost/internal/newsletter/grouping"
	"github.com/dalemusser/courtpost/internal/newsletter/prose"
)

// Engine wires the grouping, capacity, booking, and assembly stages
// behind one call. It is safe for concurrent use.
type Engine struct {
	asm assemble.Assembler
}

// New builds an Engine. A nil generator means fallback prose only.
func New(b booking.Builder, th capacity.Thresholds, g prose.Generator) *Engine {
	return &Engine{asm: assemble.New(b, th, g)}
}

// BuildInput carries one generation request. Records are assumed
// already validated by the csvdata parser.
type BuildInput struct {
	Records []models.SessionRecord
	Events  []models.EventInput
	Order   []string
	Subject string
	Summary string
}

// Build groups the records and assembles the final document. Identical
// inputs with a deterministic generator produce byte-identical HTML.
func (e *Engine) Build(ctx context.Context, in BuildInput) (models.Document, []models.ManifestEntry, error) {
	return e.asm.Assemble(ctx, assemble.Input{
		Groups:  grouping.Group(in.Records),
		Events:  in.Events,
		Order:   in.Order,
		Subject: in.Subject,
		Summary: in.Summary,
	})
}

// Export shapes a document for the download/export surface.
func Export(doc models.Document) models.ExportPayload {
	return models.ExportPayload{
		Subject:     doc.Subject,
		Content:     doc.HTML,
		PreviewText: doc.PreviewText,
	}
}

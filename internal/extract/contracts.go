package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/visiting-cards/internal/entity"
)

// TextExtractor is Stage 1: card file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	SourceType string // constants.IMAGE | constants.TXT
	Method     string // "image-ocr" | "plain-text"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// FieldExtractor is Stage 2: text -> contact fields.
type FieldExtractor interface {
	Extract(text string) entity.ContactRecord
}

var _ FieldExtractor = (*Extractor)(nil)

package pipeline

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/extract"
	"github.com/joseph-ayodele/visiting-cards/internal/repository"
)

// Source describes where a record came from. Both fields are empty for manual entries.
type Source struct {
	Path string
	Hash string
}

// ParseStage turns text into a contact record and stores it.
type ParseStage struct {
	Extractor extract.FieldExtractor
	Cards     repository.CardRepository
	Logger    *slog.Logger
}

func NewParseStage(fe extract.FieldExtractor, cards repository.CardRepository, logger *slog.Logger) *ParseStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParseStage{Extractor: fe, Cards: cards, Logger: logger}
}

// Parse runs the field extractor only.
func (s *ParseStage) Parse(text string) entity.ContactRecord {
	return s.Extractor.Extract(text)
}

// Save stores rec with its source and returns the stored card.
func (s *ParseStage) Save(ctx context.Context, rec entity.ContactRecord, src Source) (*entity.Card, error) {
	card, err := s.Cards.Create(ctx, &entity.Card{
		ContactRecord: rec,
		SourcePath:    src.Path,
		SourceHash:    src.Hash,
	})
	if err != nil {
		s.Logger.Error("pipeline.save.failed", "path", src.Path, "error", err)
		return nil, err
	}
	s.Logger.Info("pipeline.save.ok", "card_id", card.ID, "name", card.Name, "path", src.Path)
	return card, nil
}

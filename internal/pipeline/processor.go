package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/visiting-cards/internal/common"
	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/ingest"
)

// ErrNothingExtracted is returned when a card yields no field at all.
var ErrNothingExtracted = errors.New("no contact fields extracted")

type Options struct {
	Preview bool // extract but do not store
	Force   bool // process even if a card with the same hash exists
}

type Result struct {
	Path         string
	Hash         string
	Text         string
	Record       entity.ContactRecord
	CardID       uuid.UUID
	Deduplicated bool
	Saved        bool
	NeedsReview  bool
	Confidence   float32
	Warnings     []string
	Duration     time.Duration
}

// Processor coordinates OCR (text extract) then field extraction and storage.
type Processor struct {
	logger *slog.Logger
	ocr    *OCRStage
	parse  *ParseStage
}

func NewProcessor(logger *slog.Logger, ocr *OCRStage, parse *ParseStage) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, ocr: ocr, parse: parse}
}

// ProcessFile hashes the file, skips it when already stored (unless Force),
// recognizes its text, extracts the fields and stores them unless Preview.
func (p *Processor) ProcessFile(ctx context.Context, path string, opts Options) (Result, error) {
	start := time.Now()
	out := Result{Path: path}

	abs, err := filepath.Abs(path)
	if err != nil {
		return out, err
	}
	out.Path = abs
	if !ingest.AllowedExt(filepath.Ext(abs)) {
		return out, fmt.Errorf("%w: unsupported extension %q", common.ErrInvalidInput, filepath.Ext(abs))
	}

	hash, err := ingest.HashFile(abs)
	if err != nil {
		p.logger.Error("pipeline.hash.failed", "path", abs, "error", err)
		return out, fmt.Errorf("hash file: %w", err)
	}
	out.Hash = hash

	if !opts.Force && !opts.Preview {
		existing, err := p.parse.Cards.FindByHash(ctx, hash)
		switch {
		case err == nil:
			p.logger.Info("pipeline.dedup", "path", abs, "card_id", existing.ID)
			out.CardID = existing.ID
			out.Record = existing.ContactRecord
			out.Deduplicated = true
			out.Duration = time.Since(start)
			return out, nil
		case !errors.Is(err, common.ErrNotFound):
			return out, fmt.Errorf("lookup by hash: %w", err)
		}
	}

	res, needsReview, err := p.ocr.Run(ctx, abs, hash)
	out.Warnings = res.Warnings
	if err != nil {
		p.logger.Error("pipeline.ocr.failed", "path", abs, "error", err)
		return out, err
	}
	p.logger.Debug("pipeline.ocr.ok",
		"path", abs,
		"method", res.Method,
		"confidence", res.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
	)
	out.Text = res.Text
	out.Confidence = res.Confidence
	out.NeedsReview = needsReview

	err = p.finish(ctx, &out, Source{Path: abs, Hash: hash}, opts)
	out.Duration = time.Since(start)
	return out, err
}

// ProcessText runs field extraction on already recognized text and stores
// the record unless Preview.
func (p *Processor) ProcessText(ctx context.Context, text string, opts Options) (Result, error) {
	start := time.Now()
	out := Result{Text: text}
	err := p.finish(ctx, &out, Source{}, opts)
	out.Duration = time.Since(start)
	return out, err
}

func (p *Processor) finish(ctx context.Context, out *Result, src Source, opts Options) error {
	out.Record = p.parse.Parse(out.Text)
	p.logger.Debug("pipeline.extract.ok", "path", src.Path, "name", out.Record.Name, "email", out.Record.Email)
	if opts.Preview {
		return nil
	}
	if out.Record.IsEmpty() {
		p.logger.Warn("pipeline.extract.empty", "path", src.Path)
		return ErrNothingExtracted
	}
	card, err := p.parse.Save(ctx, out.Record, src)
	if err != nil {
		return err
	}
	out.CardID = card.ID
	out.Saved = true
	return nil
}

// SaveManual validates and stores a hand-entered record.
func (p *Processor) SaveManual(ctx context.Context, rec entity.ContactRecord) (*entity.Card, error) {
	rec = rec.Trimmed()
	if err := common.ValidateContact(rec); err != nil {
		return nil, err
	}
	return p.parse.Save(ctx, rec, Source{})
}

package cards

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/visiting-cards/internal/common"
	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/export"
	"github.com/joseph-ayodele/visiting-cards/internal/extract"
	"github.com/joseph-ayodele/visiting-cards/internal/ingest"
	"github.com/joseph-ayodele/visiting-cards/internal/pipeline"
	"github.com/joseph-ayodele/visiting-cards/internal/repository"
)

// Service handles card business logic shared by the CLI and the gRPC server.
type Service struct {
	extractor extract.FieldExtractor
	processor *pipeline.Processor
	cardRepo  repository.CardRepository
	exporter  *export.Service
	logger    *slog.Logger
}

// NewService creates a new card service.
func NewService(
	fe extract.FieldExtractor,
	proc *pipeline.Processor,
	cardRepo repository.CardRepository,
	exporter *export.Service,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		extractor: fe,
		processor: proc,
		cardRepo:  cardRepo,
		exporter:  exporter,
		logger:    logger,
	}
}

// ScanResult is the outcome for one file of a directory scan.
type ScanResult struct {
	pipeline.Result
	Err error
}

// Extract runs field extraction on text without touching the store.
func (s *Service) Extract(text string) entity.ContactRecord {
	return s.extractor.Extract(text)
}

// Scan processes one card file.
func (s *Service) Scan(ctx context.Context, path string, opts pipeline.Options) (pipeline.Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return pipeline.Result{}, fmt.Errorf("%w: path is required", common.ErrInvalidInput)
	}
	s.logger.Info("scanning card", "path", path, "preview", opts.Preview, "force", opts.Force)
	return s.processor.ProcessFile(ctx, path, opts)
}

// ScanDirectory processes every card file under root in walk order.
// Per-file failures are reported in the results and do not stop the scan.
func (s *Service) ScanDirectory(ctx context.Context, root string, skipHidden bool, opts pipeline.Options) ([]ScanResult, ingest.DirStats, error) {
	files, stats, failed, err := ingest.ScanDirectory(root, skipHidden)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	for _, f := range failed {
		s.logger.Warn("unreadable path skipped", "path", f.Path, "error", f.Err)
	}

	out := make([]ScanResult, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return out, stats, err
		}
		res, err := s.processor.ProcessFile(ctx, f, opts)
		if err != nil {
			stats.Failed++
			s.logger.Error("card scan failed", "path", f, "error", err)
		}
		out = append(out, ScanResult{Result: res, Err: err})
	}
	s.logger.Info("directory scan complete", "root", root, "matched", stats.Matched, "failed", stats.Failed)
	return out, stats, nil
}

// Save validates and stores a manually entered record.
func (s *Service) Save(ctx context.Context, rec entity.ContactRecord) (*entity.Card, error) {
	card, err := s.processor.SaveManual(ctx, rec)
	if err != nil {
		s.logger.Warn("manual entry rejected", "name", rec.Name, "error", err)
		return nil, err
	}
	return card, nil
}

// List returns all stored cards, oldest first.
func (s *Service) List(ctx context.Context) ([]*entity.Card, error) {
	return s.cardRepo.List(ctx)
}

// Get returns one card by id.
func (s *Service) Get(ctx context.Context, id string) (*entity.Card, error) {
	cid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%w: id must be a UUID", common.ErrInvalidInput)
	}
	return s.cardRepo.GetByID(ctx, cid)
}

// DeleteByName removes all cards with exactly this name. Deleting a name
// that is not stored is not an error and removes nothing.
func (s *Service) DeleteByName(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: name is required", common.ErrInvalidInput)
	}
	return s.cardRepo.DeleteByName(ctx, name)
}

// Export returns every stored card as XLSX bytes.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	return s.exporter.ExportCardsXLSX(ctx)
}

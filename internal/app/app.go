package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/visiting-cards/internal/cards"
	"github.com/joseph-ayodele/visiting-cards/internal/common"
	"github.com/joseph-ayodele/visiting-cards/internal/export"
	"github.com/joseph-ayodele/visiting-cards/internal/extract"
	"github.com/joseph-ayodele/visiting-cards/internal/ocr"
	"github.com/joseph-ayodele/visiting-cards/internal/pipeline"
	"github.com/joseph-ayodele/visiting-cards/internal/repository"
)

// App is the wired set of collaborators both binaries run on.
type App struct {
	DB        *repository.DB
	Cards     repository.CardRepository
	Extractor *extract.Extractor
	Processor *pipeline.Processor
	Service   *cards.Service
	logger    *slog.Logger
}

// NewExtractor builds the field extractor from configuration.
func NewExtractor(cfg common.ExtractConfig) (*extract.Extractor, error) {
	vocab := extract.DefaultVocabulary()
	if cfg.VocabularyFile != "" {
		v, err := extract.LoadVocabulary(cfg.VocabularyFile)
		if err != nil {
			return nil, fmt.Errorf("load vocabulary: %w", err)
		}
		vocab = v
	}
	return extract.NewExtractor(vocab, extract.WithLongLineThreshold(cfg.LongLineThreshold)), nil
}

// New opens the store, migrates it and wires the pipeline. opts are passed
// to the OCR extractor.
func New(ctx context.Context, cfg *common.Config, logger *slog.Logger, opts ...ocr.Option) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fe, err := NewExtractor(cfg.Extract)
	if err != nil {
		return nil, err
	}

	db, err := repository.Open(ctx, repository.Config{
		Driver:           cfg.Database.Driver,
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		return nil, common.WrapError(err, "open database")
	}
	if err := repository.Migrate(ctx, db, logger); err != nil {
		repository.Close(db, logger)
		return nil, err
	}

	cardRepo := repository.NewCardRepository(db, logger)

	ocrExtractor := ocr.NewExtractor(ocr.Config{
		Tesseract:           cfg.OCR.Tesseract,
		TesseractLang:       cfg.OCR.Language,
		TessdataDir:         cfg.OCR.TessdataDir,
		PSM:                 cfg.OCR.PSM,
		EnableTSVConfidence: cfg.OCR.EnableTSVConfidence,
		HeicConverter:       cfg.OCR.HeicConverter,
		ArtifactCacheDir:    cfg.OCR.ArtifactCacheDir,
	}, logger, opts...)
	ocrStage := pipeline.NewOCRStage(extract.NewOCRAdapter(ocrExtractor, logger), logger)
	parseStage := pipeline.NewParseStage(fe, cardRepo, logger)
	processor := pipeline.NewProcessor(logger, ocrStage, parseStage)

	svc := cards.NewService(fe, processor, cardRepo, export.NewService(cardRepo, logger), logger)

	return &App{
		DB:        db,
		Cards:     cardRepo,
		Extractor: fe,
		Processor: processor,
		Service:   svc,
		logger:    logger,
	}, nil
}

// Close releases the store.
func (a *App) Close() {
	repository.Close(a.DB, a.logger)
}

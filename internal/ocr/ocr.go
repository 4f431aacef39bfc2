package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/visiting-cards/constants"
)

type Config struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string // default "eng"
	TessdataDir   string

	PSM int // page segmentation mode; 11 (sparse text) suits most cards, 0 = tesseract default
	OEM int // 1 = LSTM; leave 0 to use default

	EnableTSVConfidence bool

	HeicConverter    string // "heif-convert" | "magick" | "sips"
	ArtifactCacheDir string
}

type Result struct {
	Text       string
	SourceType string // constants.IMAGE | constants.TXT
	Method     string // "image-ocr" | "plain-text"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

type Option func(*Extractor)

// WithRunner replaces the exec runner, mainly for tests.
func WithRunner(r Runner) Option {
	return func(e *Extractor) {
		if r != nil {
			e.runner = r
		}
	}
}

func NewExtractor(cfg Config, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.ArtifactCacheDir == "" {
		cfg.ArtifactCacheDir = "./tmp"
	}
	e := &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting ocr extraction", "path", path, "ext", ext)

	switch constants.MapExtToFormat(ext) {
	case constants.TXT:
		b, err := os.ReadFile(path)
		if err != nil {
			return Result{SourceType: constants.TXT}, fmt.Errorf("read text: %w", err)
		}
		txt := Normalize(string(b))
		return Result{
			Text:       txt,
			SourceType: constants.TXT,
			Method:     "plain-text",
			Duration:   time.Since(start),
			Confidence: heuristicConfidence(txt),
		}, nil
	case constants.IMAGE:
		var warns []string
		if constants.IsHEICExt(ext) {
			hashHex, _ := ContentHashFromContext(ctx)
			out, w, cleanup, err := convertHEICtoPNG(ctx, e.runner, e.logger, e.cfg.HeicConverter, path, e.cfg.ArtifactCacheDir, hashHex)
			warns = append(warns, w...)
			if cleanup != nil {
				defer cleanup()
			}
			if err != nil {
				e.logger.Error("heic conversion failed", "path", path, "error", err)
				return Result{SourceType: constants.IMAGE, Warnings: warns}, err
			}
			path = out
		}
		res, err := e.extractImage(ctx, path)
		res.Duration = time.Since(start)
		res.Warnings = append(res.Warnings, warns...)
		return res, err
	default:
		e.logger.Error("unsupported ocr extension", "extension", ext)
		return Result{}, fmt.Errorf("unsupported extension: %q", ext)
	}
}

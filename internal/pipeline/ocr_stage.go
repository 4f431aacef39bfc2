package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/joseph-ayodele/visiting-cards/constants"
	"github.com/joseph-ayodele/visiting-cards/internal/extract"
	"github.com/joseph-ayodele/visiting-cards/internal/ocr"
)

// OCRStage turns a card file into text.
type OCRStage struct {
	TextExtractor extract.TextExtractor
	Logger        *slog.Logger
}

func NewOCRStage(tx extract.TextExtractor, logger *slog.Logger) *OCRStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &OCRStage{TextExtractor: tx, Logger: logger}
}

// Run recognizes the text of the file at path. hashHex, when known, lets the
// OCR provider cache converted artifacts. needsReview is set for low-confidence images.
func (s *OCRStage) Run(ctx context.Context, path, hashHex string) (res extract.TextExtractionResult, needsReview bool, err error) {
	format := constants.MapExtToFormat(filepath.Ext(path))
	if format == "" {
		return res, false, fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}
	if hashHex != "" {
		ctx = ocr.WithContentHash(ctx, hashHex)
	}

	res, err = s.TextExtractor.Extract(ctx, path)
	if err != nil {
		return res, false, err
	}

	if format == constants.IMAGE && res.Confidence > 0 && res.Confidence < ocr.ImageConfidenceThreshold {
		s.Logger.Warn("image ocr confidence low; needs review", "path", path, "conf", res.Confidence)
		needsReview = true
	}
	return res, needsReview, nil
}

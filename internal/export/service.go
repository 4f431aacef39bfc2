package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/visiting-cards/internal/repository"
)

// SheetName is the worksheet holding exported cards.
const SheetName = "Cards"

// Service is a tiny façade over the card repository that produces XLSX bytes.
type Service struct {
	cards  repository.CardRepository
	logger *slog.Logger
}

func NewService(cards repository.CardRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cards: cards, logger: logger}
}

var headers = []string{
	"Name",
	"Email",
	"Phone",
	"Company",
	"Designation",
	"Address",
	"Card ID",
	"Source File",
	"Created At",
}

// ExportCardsXLSX returns every stored card as an XLSX workbook, oldest first.
func (s *Service) ExportCardsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// replace the default sheet so the workbook has a single named sheet
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	row := 2
	for _, c := range cards {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(SheetName, cell, v)
		}
		write(1, c.Name)
		write(2, c.Email)
		write(3, c.Phone)
		write(4, c.Company)
		write(5, c.Designation)
		write(6, c.Address)
		write(7, c.ID.String())
		write(8, c.SourcePath)
		write(9, c.CreatedAt.UTC().Format(time.RFC3339))
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(SheetName, "A", "A", 24) // name
	_ = f.SetColWidth(SheetName, "B", "B", 30) // email
	_ = f.SetColWidth(SheetName, "C", "C", 20) // phone
	_ = f.SetColWidth(SheetName, "D", "E", 28) // company, designation
	_ = f.SetColWidth(SheetName, "F", "F", 60) // address
	_ = f.SetColWidth(SheetName, "G", "G", 38) // id
	_ = f.SetColWidth(SheetName, "H", "H", 48) // path
	_ = f.SetColWidth(SheetName, "I", "I", 22) // created
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		s.logger.Warn("export.xlsx.freeze_failed", "error", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(cards),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

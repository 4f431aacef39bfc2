package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/repository"
)

type listOnly struct {
	repository.CardRepository
	cards []*entity.Card
	err   error
}

func (l listOnly) List(context.Context) ([]*entity.Card, error) { return l.cards, l.err }

func TestExportCardsXLSX(t *testing.T) {
	id := uuid.MustParse("6f1c1a52-8a8e-4c0b-9a40-5d1a2f7c9e11")
	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	repo := listOnly{cards: []*entity.Card{{
		ID: id,
		ContactRecord: entity.ContactRecord{
			Name:        "Jane Doe",
			Email:       "jane@initech.com",
			Phone:       "+1 415 555 1234",
			Company:     "Initech LLC",
			Designation: "Sales Director",
			Address:     "12 Main Street | Suite 400",
		},
		SourcePath: "/cards/jane.png",
		CreatedAt:  created,
	}}}

	b, err := NewService(repo, nil).ExportCardsXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, []string{
		"Jane Doe", "jane@initech.com", "+1 415 555 1234", "Initech LLC", "Sales Director",
		"12 Main Street | Suite 400", id.String(), "/cards/jane.png", "2024-05-01T09:30:00Z",
	}, rows[1])
}

func TestExportCardsXLSXEmpty(t *testing.T) {
	b, err := NewService(listOnly{}, nil).ExportCardsXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExportCardsXLSXRepositoryError(t *testing.T) {
	_, err := NewService(listOnly{err: errors.New("db down")}, nil).ExportCardsXLSX(context.Background())
	assert.ErrorContains(t, err, "db down")
}

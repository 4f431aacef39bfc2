package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/visiting-cards/internal/common"
)

func TestNewExtractorDefaults(t *testing.T) {
	fe, err := NewExtractor(common.ExtractConfig{LongLineThreshold: 30})
	require.NoError(t, err)
	assert.Equal(t, "Acme Technologies Pvt Ltd", fe.Extract("Jane Doe\nAcme Technologies Pvt Ltd").Company)
}

func TestNewExtractorVocabularyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("designation: [chef]\ncompany: [bistro]\naddress: [rue]\n"), 0o644))

	fe, err := NewExtractor(common.ExtractConfig{VocabularyFile: path, LongLineThreshold: 30})
	require.NoError(t, err)

	rec := fe.Extract("Marie Curie\nHead Chef\nLe Petit Bistro\nRue Cler, Paris")
	assert.Equal(t, "Head Chef", rec.Designation)
	assert.Equal(t, "Le Petit Bistro", rec.Company)
	assert.Equal(t, "Rue Cler, Paris", rec.Address)
}

func TestNewExtractorBadVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("designation: 12\n"), 0o644))

	_, err := NewExtractor(common.ExtractConfig{VocabularyFile: path})
	assert.Error(t, err)

	_, err = NewExtractor(common.ExtractConfig{VocabularyFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := common.LoadConfig()
	cfg.Database.Driver = "mysql"
	_, err := New(context.Background(), cfg, nil)
	assert.Error(t, err)
}

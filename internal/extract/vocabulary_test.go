package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVocabularyOverridesPresentCategories(t *testing.T) {
	doc := []byte(`
designation: [Chef, sommelier]
company:
  - bistro
`)
	v, err := ParseVocabulary(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"Chef", "sommelier"}, v.Designation)
	assert.Equal(t, []string{"bistro"}, v.Company)
	assert.Equal(t, DefaultVocabulary().Address, v.Address)
}

func TestParseVocabularyEmptyDocumentKeepsDefaults(t *testing.T) {
	v, err := ParseVocabulary([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultVocabulary(), v)
}

func TestParseVocabularyRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown category", "hobby: [golf]"},
		{"not a list", "company: acme"},
		{"non string keyword", "address: [12, road]"},
		{"blank keyword", "address: ['  ']"},
		{"not a mapping", "- manager"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVocabulary([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.yaml")
	require.NoError(t, os.WriteFile(path, []byte("address: [rue, strasse]\n"), 0o600))

	v, err := LoadVocabulary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"rue", "strasse"}, v.Address)

	_, err = LoadVocabulary(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestVocabularyNormalized(t *testing.T) {
	v := Vocabulary{Designation: []string{" CEO ", "ceo", "", "Owner"}}.normalized()
	assert.Equal(t, []string{"ceo", "owner"}, v.Designation)
	assert.Empty(t, v.Company)
}

func TestContainsAny(t *testing.T) {
	kw := []string{"tech", "ltd", "lane"}
	assert.True(t, containsAny("acme technologies", kw))
	assert.True(t, containsAny("acme pvt.ltd", kw))
	assert.True(t, containsAny("novatech", kw))
	assert.True(t, containsAny("elaine", kw))
	assert.False(t, containsAny("acme corp", kw))
	assert.False(t, containsAny("", kw))
}

func TestContainsAtWordStart(t *testing.T) {
	kw := []string{"tech", "ltd", "lane"}
	assert.True(t, containsAtWordStart("acme technologies", kw))
	assert.True(t, containsAtWordStart("acme pvt.ltd", kw))
	assert.True(t, containsAtWordStart("(ltd)", kw))
	assert.False(t, containsAtWordStart("elaine", kw))
	assert.False(t, containsAtWordStart("novatech", kw))
	assert.False(t, containsAtWordStart("", kw))
}

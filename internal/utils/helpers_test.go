package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/pipeline"
)

func TestFromPBRecordIgnoresForeignFields(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{
		"name":  "Jane Doe",
		"phone": 4155551234.0,
		"extra": "x",
	})
	assert.NoError(t, err)
	assert.Equal(t, entity.ContactRecord{Name: "Jane Doe"}, FromPBRecord(s))
	assert.Equal(t, entity.ContactRecord{}, FromPBRecord(nil))
}

func TestToPBCard(t *testing.T) {
	id := uuid.New()
	c := &entity.Card{
		ID:            id,
		ContactRecord: entity.ContactRecord{Name: "Jane", Company: "Initech"},
		CreatedAt:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	s := ToPBCard(c)
	assert.Equal(t, id.String(), StringField(s, "id"))
	assert.Equal(t, "Initech", StringField(s, "company"))
	assert.Equal(t, "2024-01-02T03:04:05Z", StringField(s, "created_at"))
	assert.Len(t, ToPBCards([]*entity.Card{c, c}).GetValues(), 2)
}

func TestToPBScanResultHidesUnsavedID(t *testing.T) {
	s := ToPBScanResult(pipeline.Result{CardID: uuid.New(), Record: entity.ContactRecord{Name: "Jane"}})
	assert.Empty(t, StringField(s, "card_id"))
	assert.False(t, BoolField(s, "saved"))
	assert.Equal(t, "Jane", FromPBRecord(s.GetFields()["record"].GetStructValue()).Name)
}

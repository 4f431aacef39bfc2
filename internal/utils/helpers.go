package utils

import (
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/pipeline"
)

func recordFields(r entity.ContactRecord) map[string]*structpb.Value {
	return map[string]*structpb.Value{
		"name":        structpb.NewStringValue(r.Name),
		"email":       structpb.NewStringValue(r.Email),
		"phone":       structpb.NewStringValue(r.Phone),
		"company":     structpb.NewStringValue(r.Company),
		"designation": structpb.NewStringValue(r.Designation),
		"address":     structpb.NewStringValue(r.Address),
	}
}

func ToPBRecord(r entity.ContactRecord) *structpb.Struct {
	return &structpb.Struct{Fields: recordFields(r)}
}

// FromPBRecord reads the six contact fields; missing or non-string fields are empty.
func FromPBRecord(s *structpb.Struct) entity.ContactRecord {
	if s == nil {
		return entity.ContactRecord{}
	}
	return entity.ContactRecordFromMap(s.AsMap())
}

func ToPBCard(c *entity.Card) *structpb.Struct {
	f := recordFields(c.ContactRecord)
	f["id"] = structpb.NewStringValue(c.ID.String())
	f["source_path"] = structpb.NewStringValue(c.SourcePath)
	f["created_at"] = structpb.NewStringValue(c.CreatedAt.UTC().Format(time.RFC3339))
	return &structpb.Struct{Fields: f}
}

func ToPBCards(cs []*entity.Card) *structpb.ListValue {
	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(cs))}
	for _, c := range cs {
		out.Values = append(out.Values, structpb.NewStructValue(ToPBCard(c)))
	}
	return out
}

func ToPBScanResult(r pipeline.Result) *structpb.Struct {
	cardID := ""
	if r.Saved || r.Deduplicated {
		cardID = r.CardID.String()
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"record":       structpb.NewStructValue(ToPBRecord(r.Record)),
		"card_id":      structpb.NewStringValue(cardID),
		"path":         structpb.NewStringValue(r.Path),
		"text":         structpb.NewStringValue(r.Text),
		"saved":        structpb.NewBoolValue(r.Saved),
		"deduplicated": structpb.NewBoolValue(r.Deduplicated),
		"needs_review": structpb.NewBoolValue(r.NeedsReview),
		"confidence":   structpb.NewNumberValue(float64(r.Confidence)),
	}}
}

// BoolField returns s[key] as a bool, false when absent.
func BoolField(s *structpb.Struct, key string) bool {
	if s == nil {
		return false
	}
	return s.GetFields()[key].GetBoolValue()
}

// StringField returns s[key] as a string, "" when absent.
func StringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[key].GetStringValue()
}

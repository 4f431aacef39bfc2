package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Vocabulary holds the keyword sets used to classify card lines.
// Keywords match case-insensitively as substrings of a line.
type Vocabulary struct {
	Designation []string `yaml:"designation" json:"designation"`
	Company     []string `yaml:"company" json:"company"`
	Address     []string `yaml:"address" json:"address"`
}

// DefaultVocabulary returns the built-in keyword sets.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Designation: []string{
			"manager", "developer", "director", "engineer", "analyst",
			"ceo", "cto", "cfo", "founder", "president", "consultant",
			"officer", "executive", "designer", "architect", "partner",
		},
		Company: []string{
			"ltd", "pvt", "inc", "llc", "llp", "limited", "corporation",
			"solutions", "tech", "systems", "group", "enterprises",
			"industries", "consulting", "services",
		},
		Address: []string{
			"road", "street", "avenue", "lane", "city", "state", "zip",
			"pincode", "floor", "suite", "building", "sector", "nagar",
			"marg", "plaza", "tower", "blvd",
		},
	}
}

// normalized returns a copy with keywords trimmed, lowercased and deduplicated.
func (v Vocabulary) normalized() Vocabulary {
	return Vocabulary{
		Designation: normalizeKeywords(v.Designation),
		Company:     normalizeKeywords(v.Company),
		Address:     normalizeKeywords(v.Address),
	}
}

func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// keywordMatcher reports whether any keyword occurs in lower.
// lower must already be lowercased.
type keywordMatcher func(lower string, keywords []string) bool

// containsAny is a plain substring test: "tech" matches "infotech".
func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// containsAtWordStart only accepts a keyword that begins a word, so "lane"
// does not match "elaine".
func containsAtWordStart(lower string, keywords []string) bool {
	for _, k := range keywords {
		for off := 0; off < len(lower); {
			idx := strings.Index(lower[off:], k)
			if idx < 0 {
				break
			}
			idx += off
			if atWordStart(lower, idx) {
				return true
			}
			_, size := utf8.DecodeRuneInString(lower[idx:])
			off = idx + size
		}
	}
	return false
}

func atWordStart(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:idx])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

const vocabularySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "designation": {"$ref": "#/$defs/keywords"},
    "company": {"$ref": "#/$defs/keywords"},
    "address": {"$ref": "#/$defs/keywords"}
  },
  "$defs": {
    "keywords": {
      "type": "array",
      "items": {"type": "string", "minLength": 1, "pattern": "\\S"}
    }
  }
}`

// LoadVocabulary reads a YAML vocabulary file. See ParseVocabulary.
func LoadVocabulary(path string) (Vocabulary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary: %w", err)
	}
	return ParseVocabulary(b)
}

// ParseVocabulary decodes a YAML vocabulary document. Categories present in
// the document replace the built-in list; absent categories keep it.
func ParseVocabulary(doc []byte) (Vocabulary, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return Vocabulary{}, fmt.Errorf("decode vocabulary: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if err := validateVocabulary(raw); err != nil {
		return Vocabulary{}, err
	}

	var parsed struct {
		Designation *[]string `yaml:"designation"`
		Company     *[]string `yaml:"company"`
		Address     *[]string `yaml:"address"`
	}
	if err := yaml.Unmarshal(doc, &parsed); err != nil {
		return Vocabulary{}, fmt.Errorf("decode vocabulary: %w", err)
	}

	v := DefaultVocabulary()
	if parsed.Designation != nil {
		v.Designation = *parsed.Designation
	}
	if parsed.Company != nil {
		v.Company = *parsed.Company
	}
	if parsed.Address != nil {
		v.Address = *parsed.Address
	}
	return v, nil
}

func validateVocabulary(raw map[string]any) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("vocabulary.json", strings.NewReader(vocabularySchema)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("vocabulary.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	// round-trip through JSON so the validator sees JSON-native types
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal vocabulary: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("unmarshal vocabulary: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("vocabulary does not match schema: %w", err)
	}
	return nil
}

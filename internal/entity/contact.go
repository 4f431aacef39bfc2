package entity

import "strings"

// ContactRecord is the six-field result of extracting a business card.
// An empty string means the field was not found.
type ContactRecord struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Designation string `json:"designation"`
	Address     string `json:"address"`
}

// IsEmpty reports whether no field was found.
func (c ContactRecord) IsEmpty() bool {
	return c == ContactRecord{}
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (c ContactRecord) Trimmed() ContactRecord {
	return ContactRecord{
		Name:        strings.TrimSpace(c.Name),
		Email:       strings.TrimSpace(c.Email),
		Phone:       strings.TrimSpace(c.Phone),
		Company:     strings.TrimSpace(c.Company),
		Designation: strings.TrimSpace(c.Designation),
		Address:     strings.TrimSpace(c.Address),
	}
}

// AsMap returns the record keyed by the json field names.
func (c ContactRecord) AsMap() map[string]any {
	return map[string]any{
		"name":        c.Name,
		"email":       c.Email,
		"phone":       c.Phone,
		"company":     c.Company,
		"designation": c.Designation,
		"address":     c.Address,
	}
}

// ContactRecordFromMap is the inverse of AsMap. Unknown keys and non-string values are ignored.
func ContactRecordFromMap(m map[string]any) ContactRecord {
	str := func(k string) string {
		s, _ := m[k].(string)
		return s
	}
	return ContactRecord{
		Name:        str("name"),
		Email:       str("email"),
		Phone:       str("phone"),
		Company:     str("company"),
		Designation: str("designation"),
		Address:     str("address"),
	}
}

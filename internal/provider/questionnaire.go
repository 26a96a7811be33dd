package provider

import "encoding/json"

// Questionnaire completeness is not guaranteed by the provider: sections and
// fields appear only when the applicant answered them, and two shapes exist in
// the wild. The newer shape nests answers under "items", the older one puts
// them directly on the section. Value handles both and never fails on absence.

// Questionnaires is the ordered list of questionnaires on an applicant.
type Questionnaires []Questionnaire

// Questionnaire is one named set of sections.
type Questionnaire struct {
	ID       string             `json:"id"`
	Sections map[string]Section `json:"sections"`
}

// Section holds answers either under Items (newer shape) or directly keyed on
// the section object (older shape).
type Section struct {
	Items  map[string]Item
	Fields map[string]Item
}

// Item is a single questionnaire answer.
type Item struct {
	Value string `json:"value"`
}

// UnmarshalJSON splits the "items" subtree from direct field entries so both
// section shapes end up queryable through the same accessor.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if key == "items" {
			if err := json.Unmarshal(value, &s.Items); err != nil {
				return err
			}
			continue
		}
		var item Item
		if err := json.Unmarshal(value, &item); err != nil {
			// Direct entries may be bare strings rather than {value: ...}.
			var str string
			if err := json.Unmarshal(value, &str); err != nil {
				continue
			}
			item.Value = str
		}
		if s.Fields == nil {
			s.Fields = make(map[string]Item)
		}
		s.Fields[key] = item
	}
	return nil
}

// Value extracts a named answer, preferring the items shape and falling back
// to the direct shape. It returns "" when the list, section, or field is
// absent; missing questionnaire data is normal, never an error.
func (qs Questionnaires) Value(sectionID, fieldID string) string {
	for _, q := range qs {
		section, ok := q.Sections[sectionID]
		if !ok {
			continue
		}
		if item, ok := section.Items[fieldID]; ok {
			return item.Value
		}
		if item, ok := section.Fields[fieldID]; ok {
			return item.Value
		}
	}
	return ""
}

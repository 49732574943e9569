package domain

import "strings"

// ContentItem is an entry of the site content tree
type ContentItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	TemplateID string `json:"template_id"`
}

// TemplateLineage lists a template id followed by every template it inherits from,
// nearest first.
type TemplateLineage []string

// InheritsFrom reports whether the lineage contains templateID. A template
// inherits from itself.
func (l TemplateLineage) InheritsFrom(templateID string) bool {
	want := NormalizeTemplateID(templateID)
	if want == "" {
		return false
	}
	for _, id := range l {
		if NormalizeTemplateID(id) == want {
			return true
		}
	}
	return false
}

// NormalizeTemplateID lowercases an id and drops the surrounding braces
// used by {GUID} style identifiers.
func NormalizeTemplateID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.TrimPrefix(id, "{")
	id = strings.TrimSuffix(id, "}")
	return strings.ToLower(id)
}

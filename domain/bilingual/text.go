// Package bilingual provides the two-locale text value used by every
// site entity. The primary locale is Indonesian, the secondary is English.
package bilingual

import "strings"

// Locale identifies one of the two display locales.
type Locale string

// Locale values.
const (
	Primary   Locale = "id"
	Secondary Locale = "en"
)

// Locales returns both locales, primary first.
func Locales() []Locale {
	return []Locale{Primary, Secondary}
}

// Text is a string rendered in both display locales.
type Text struct {
	primary   string
	secondary string
}

// New creates a Text from its primary and secondary renderings.
func New(primary, secondary string) Text {
	return Text{
		primary:   strings.TrimSpace(primary),
		secondary: strings.TrimSpace(secondary),
	}
}

// Primary returns the Indonesian rendering.
func (t Text) Primary() string { return t.primary }

// Secondary returns the English rendering.
func (t Text) Secondary() string { return t.secondary }

// In returns the rendering for the given locale.
func (t Text) In(l Locale) string {
	if l == Secondary {
		return t.secondary
	}
	return t.primary
}

// Values returns both renderings, primary first.
func (t Text) Values() []string {
	return []string{t.primary, t.secondary}
}

// IsEmpty returns true if neither locale has text.
func (t Text) IsEmpty() bool {
	return t.primary == "" && t.secondary == ""
}

// Equal returns true if both renderings match exactly.
func (t Text) Equal(other Text) bool {
	return t.primary == other.primary && t.secondary == other.secondary
}

// String returns the primary rendering, falling back to the secondary.
func (t Text) String() string {
	if t.primary != "" {
		return t.primary
	}
	return t.secondary
}

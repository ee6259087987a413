package slide

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrAmbiguousBinding indicates a slide (or a lookup) cannot be resolved to
// exactly one binding and needs manual attention.
var ErrAmbiguousBinding = errors.New("ambiguous slide binding")

// BindingKind distinguishes home-rotation slides from page-bound ones.
type BindingKind string

// BindingKind values.
const (
	HomeRotation BindingKind = "home_rotation"
	PageBound    BindingKind = "page_bound"
)

// Binding is the resolved placement of a slide.
type Binding struct {
	kind     BindingKind
	pagePath string
	legacy   bool
}

// NewHomeBinding returns the generic home-rotation binding.
func NewHomeBinding() Binding {
	return Binding{kind: HomeRotation}
}

// NewPageBinding returns a binding to pagePath.
func NewPageBinding(pagePath string) Binding {
	return Binding{kind: PageBound, pagePath: pagePath}
}

// Kind returns the binding kind.
func (b Binding) Kind() BindingKind { return b.kind }

// PagePath returns the bound page, empty for home rotation.
func (b Binding) PagePath() string { return b.pagePath }

// Legacy returns true when the binding was inferred from the secondary CTA
// link rather than read from the explicit page binding.
func (b Binding) Legacy() bool { return b.legacy }

// String returns a readable representation.
func (b Binding) String() string {
	if b.kind == PageBound {
		return fmt.Sprintf("%s(%s)", b.kind, b.pagePath)
	}
	return string(b.kind)
}

// IsPagePath reports whether link looks like a site-relative page path:
// a single leading slash, more than just "/", no whitespace.
func IsPagePath(link string) bool {
	if len(link) < 2 || link[0] != '/' || link[1] == '/' {
		return false
	}
	return !strings.ContainsFunc(link, unicode.IsSpace)
}

// ClassifyBinding resolves where a slide renders.
//
// An explicit page binding always wins. Slides without one are read through
// the legacy convention where the secondary CTA link doubles as the page key:
// an empty or non-path secondary link means home rotation, a path-shaped one
// with no primary link means page-bound, and a path-shaped one next to a
// populated primary link is ambiguous.
func ClassifyBinding(s Slide) (Binding, error) {
	if s.pageBinding != nil && *s.pageBinding != "" {
		return NewPageBinding(*s.pageBinding), nil
	}

	secondary := s.secondaryCTA.Link()
	if !IsPagePath(secondary) {
		return NewHomeBinding(), nil
	}
	if s.primaryCTA.HasLink() {
		return Binding{}, fmt.Errorf("%w: slide %s has primary link %q and page-shaped secondary link %q",
			ErrAmbiguousBinding, s.id, s.primaryCTA.Link(), secondary)
	}
	b := NewPageBinding(secondary)
	b.legacy = true
	return b, nil
}

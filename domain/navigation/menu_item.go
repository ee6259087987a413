// Package navigation models the site's self-referencing menu hierarchy.
package navigation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/helixml/sitekit/domain/bilingual"
)

// PathPlaceholder marks an item with no direct navigation target; such
// items only reveal their children.
const PathPlaceholder = "#"

// ErrInvalidLocation indicates an item would end up in a different
// placement zone than its parent.
var ErrInvalidLocation = errors.New("invalid menu location")

// Location is the placement zone a menu item renders in.
type Location string

// Location values.
const (
	LocationHeader Location = "header"
	LocationFooter Location = "footer"
)

// Locations returns every known placement zone.
func Locations() []Location {
	return []Location{LocationHeader, LocationFooter}
}

// ParseLocation validates a location string.
func ParseLocation(s string) (Location, error) {
	for _, l := range Locations() {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLocation, s)
}

// MenuItem is a single node in the navigation forest.
type MenuItem struct {
	id        string
	label     bilingual.Text
	path      string
	parentID  *string
	sortOrder int
	location  Location
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

// NewMenuItem creates an active, unparented MenuItem with a fresh ID.
// An empty path is stored as PathPlaceholder.
func NewMenuItem(label bilingual.Text, path string, location Location) MenuItem {
	if path == "" {
		path = PathPlaceholder
	}
	now := time.Now().UTC()
	return MenuItem{
		id:        uuid.NewString(),
		label:     label,
		path:      path,
		location:  location,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}
}

// ReconstructMenuItem recreates a MenuItem from persistence.
func ReconstructMenuItem(
	id string,
	label bilingual.Text,
	path string,
	parentID *string,
	sortOrder int,
	location Location,
	active bool,
	createdAt, updatedAt time.Time,
) MenuItem {
	return MenuItem{
		id:        id,
		label:     label,
		path:      path,
		parentID:  copyID(parentID),
		sortOrder: sortOrder,
		location:  location,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the item identifier.
func (m MenuItem) ID() string { return m.id }

// Label returns the bilingual display label.
func (m MenuItem) Label() bilingual.Text { return m.label }

// Path returns the route, or PathPlaceholder.
func (m MenuItem) Path() string { return m.path }

// HasTarget returns false for grouping items that only reveal children.
func (m MenuItem) HasTarget() bool { return m.path != PathPlaceholder }

// ParentID returns the parent identifier, or nil for a root.
func (m MenuItem) ParentID() *string { return copyID(m.parentID) }

// IsRoot returns true if the item has no parent.
func (m MenuItem) IsRoot() bool { return m.parentID == nil }

// IsChildOf returns true if parentID is this item's parent.
func (m MenuItem) IsChildOf(parentID string) bool {
	return m.parentID != nil && *m.parentID == parentID
}

// SortOrder returns the position among siblings.
func (m MenuItem) SortOrder() int { return m.sortOrder }

// Location returns the placement zone.
func (m MenuItem) Location() Location { return m.location }

// IsActive returns whether the item is rendered.
func (m MenuItem) IsActive() bool { return m.active }

// CreatedAt returns the creation timestamp.
func (m MenuItem) CreatedAt() time.Time { return m.createdAt }

// UpdatedAt returns the last modification timestamp.
func (m MenuItem) UpdatedAt() time.Time { return m.updatedAt }

// Group returns the sibling group this item belongs to.
func (m MenuItem) Group() Group {
	return Group{parentID: copyID(m.parentID), location: m.location}
}

// WithParent returns a copy placed under parentID (nil makes it a root).
func (m MenuItem) WithParent(parentID *string) MenuItem {
	m.parentID = copyID(parentID)
	return m.touch()
}

// WithSortOrder returns a copy at the given sibling position.
func (m MenuItem) WithSortOrder(order int) MenuItem {
	m.sortOrder = order
	return m.touch()
}

// WithLocation returns a copy in the given placement zone.
func (m MenuItem) WithLocation(location Location) MenuItem {
	m.location = location
	return m.touch()
}

// WithLabel returns a copy with a new label.
func (m MenuItem) WithLabel(label bilingual.Text) MenuItem {
	m.label = label
	return m.touch()
}

// Activate returns an active copy.
func (m MenuItem) Activate() MenuItem {
	m.active = true
	return m.touch()
}

// Deactivate returns an inactive copy. Inactive items stay in storage.
func (m MenuItem) Deactivate() MenuItem {
	m.active = false
	return m.touch()
}

func (m MenuItem) touch() MenuItem {
	m.updatedAt = time.Now().UTC()
	return m
}

// Group identifies a sibling group: items sharing a parent and location.
type Group struct {
	parentID *string
	location Location
}

// NewGroup creates a sibling group key.
func NewGroup(parentID *string, location Location) Group {
	return Group{parentID: copyID(parentID), location: location}
}

// ParentID returns the shared parent, or nil for roots.
func (g Group) ParentID() *string { return copyID(g.parentID) }

// Location returns the shared placement zone.
func (g Group) Location() Location { return g.location }

// Key returns a comparable representation of the group.
func (g Group) Key() string {
	parent := "<root>"
	if g.parentID != nil {
		parent = *g.parentID
	}
	return string(g.location) + "/" + parent
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

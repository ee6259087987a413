package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/helixml/sitekit/domain/navigation"
	"github.com/helixml/sitekit/domain/repository"
)

// MenuMatch selects menu items by label or path. Label matches either
// locale, ignoring case. Empty fields are ignored; at least one of Label
// and Path must be set.
type MenuMatch struct {
	Label    string
	Path     string
	Location navigation.Location
}

func (m MenuMatch) matches(item navigation.MenuItem) bool {
	if m.Location != "" && item.Location() != m.Location {
		return false
	}
	if m.Path != "" && item.Path() == m.Path {
		return true
	}
	if m.Label == "" {
		return false
	}
	for _, v := range item.Label().Values() {
		if strings.EqualFold(v, strings.TrimSpace(m.Label)) {
			return true
		}
	}
	return false
}

// Navigation manages the menu forest. Every mutation runs in one
// transaction, re-reads current state first and verifies the affected
// sibling group before committing.
type Navigation struct {
	repository.Collection[navigation.MenuItem]
	store  navigation.Store
	logger *slog.Logger
}

// NewNavigation creates a new Navigation service.
func NewNavigation(store navigation.Store, logger *slog.Logger) *Navigation {
	return &Navigation{
		Collection: repository.NewCollection[navigation.MenuItem](store),
		store:      store,
		logger:     logger,
	}
}

// InsertChild inserts item under parentID (nil for a root) at
// desiredSortOrder, shifting siblings at or after that position down by one.
// A negative desiredSortOrder appends after the last sibling.
func (s *Navigation) InsertChild(ctx context.Context, parentID *string, item navigation.MenuItem, desiredSortOrder int) (navigation.MenuItem, error) {
	var created navigation.MenuItem
	err := s.store.Atomic(ctx, func(tx navigation.Store) error {
		var err error
		created, err = s.insertChild(ctx, tx, parentID, item, desiredSortOrder)
		return err
	})
	if err != nil {
		return navigation.MenuItem{}, err
	}

	s.logger.InfoContext(ctx, "menu item inserted",
		slog.String("id", created.ID()),
		slog.String("path", created.Path()),
		slog.String("location", string(created.Location())),
		slog.Int("sort_order", created.SortOrder()),
	)
	return created, nil
}

func (s *Navigation) insertChild(ctx context.Context, tx navigation.Store, parentID *string, item navigation.MenuItem, desired int) (navigation.MenuItem, error) {
	if parentID != nil {
		parent, err := tx.FindOne(ctx, repository.WithID(*parentID))
		if err != nil {
			return navigation.MenuItem{}, storeError("load parent", err)
		}
		if parent.Location() != item.Location() {
			return navigation.MenuItem{}, fmt.Errorf("insert menu item: %w: item is %s, parent %s is %s",
				ErrInvalidLocation, item.Location(), parent.ID(), parent.Location())
		}
	}

	group := navigation.NewGroup(parentID, item.Location())
	if desired < 0 {
		siblings, err := tx.Find(ctx, navigation.WithGroup(group)...)
		if err != nil {
			return navigation.MenuItem{}, storeError("load siblings", err)
		}
		desired = navigation.NextSortOrder(siblings)
	}

	options := append(navigation.WithGroup(group),
		navigation.WithSortOrderFrom(desired),
		repository.WithOrderDesc("sort_order"),
	)
	shifted, err := tx.Find(ctx, options...)
	if err != nil {
		return navigation.MenuItem{}, storeError("load siblings to shift", err)
	}
	for _, sibling := range shifted {
		if _, err := tx.Save(ctx, sibling.WithSortOrder(sibling.SortOrder()+1)); err != nil {
			return navigation.MenuItem{}, storeError("shift sibling", err)
		}
	}

	created, err := tx.Create(ctx, item.WithParent(parentID).WithSortOrder(desired))
	if err != nil {
		return navigation.MenuItem{}, storeError("insert menu item", err)
	}
	if err := verifyGroup(ctx, tx, group); err != nil {
		return navigation.MenuItem{}, err
	}
	return created, nil
}

// Reparent moves an item under newParentID (nil makes it a root). The item
// keeps its sort order unless that position is taken in the new group, in
// which case it is appended after the last sibling.
func (s *Navigation) Reparent(ctx context.Context, itemID string, newParentID *string) (navigation.MenuItem, error) {
	var moved navigation.MenuItem
	err := s.store.Atomic(ctx, func(tx navigation.Store) error {
		item, err := tx.FindOne(ctx, repository.WithID(itemID))
		if err != nil {
			return storeError("load menu item", err)
		}

		if newParentID != nil {
			if *newParentID == itemID {
				return fmt.Errorf("reparent %s: %w: item cannot be its own parent", itemID, ErrConflict)
			}
			parent, err := tx.FindOne(ctx, repository.WithID(*newParentID))
			if err != nil {
				return storeError("load new parent", err)
			}
			if parent.Location() != item.Location() {
				return fmt.Errorf("reparent %s: %w: item is %s, parent %s is %s",
					itemID, ErrInvalidLocation, item.Location(), parent.ID(), parent.Location())
			}
			all, err := tx.Find(ctx)
			if err != nil {
				return storeError("load menu", err)
			}
			if navigation.IsDescendant(all, itemID, *newParentID) {
				return fmt.Errorf("reparent %s: %w: %s is a descendant", itemID, ErrConflict, *newParentID)
			}
		}

		group := navigation.NewGroup(newParentID, item.Location())
		siblings, err := tx.Find(ctx, navigation.WithGroup(group)...)
		if err != nil {
			return storeError("load siblings", err)
		}
		order := item.SortOrder()
		if navigation.SortOrderTaken(siblings, order, item.ID()) {
			order = navigation.NextSortOrder(siblings)
		}

		moved, err = tx.Save(ctx, item.WithParent(newParentID).WithSortOrder(order))
		if err != nil {
			return storeError("save menu item", err)
		}
		return verifyGroup(ctx, tx, group)
	})
	if err != nil {
		return navigation.MenuItem{}, err
	}

	s.logger.InfoContext(ctx, "menu item reparented",
		slog.String("id", moved.ID()),
		slog.Any("parent_id", moved.ParentID()),
		slog.Int("sort_order", moved.SortOrder()),
	)
	return moved, nil
}

// DeleteSubtree deletes an item and all of its descendants, children before
// parents, and returns the number of rows deleted.
func (s *Navigation) DeleteSubtree(ctx context.Context, itemID string) (int, error) {
	deleted := 0
	err := s.store.Atomic(ctx, func(tx navigation.Store) error {
		item, err := tx.FindOne(ctx, repository.WithID(itemID))
		if err != nil {
			return storeError("load menu item", err)
		}
		all, err := tx.Find(ctx)
		if err != nil {
			return storeError("load menu", err)
		}
		for _, d := range append(navigation.Descendants(all, itemID), item) {
			if err := tx.Delete(ctx, d); err != nil {
				return storeError("delete menu item", err)
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "menu subtree deleted", slog.String("id", itemID), slog.Int("deleted", deleted))
	return deleted, nil
}

// ActivateInLocation activates an item and places it in location. A child can
// only be placed in its parent's location. Descendants follow the item; a
// sort-order collision in the destination group appends after the last
// sibling.
func (s *Navigation) ActivateInLocation(ctx context.Context, itemID string, location navigation.Location) (navigation.MenuItem, error) {
	var updated navigation.MenuItem
	err := s.store.Atomic(ctx, func(tx navigation.Store) error {
		item, err := tx.FindOne(ctx, repository.WithID(itemID))
		if err != nil {
			return storeError("load menu item", err)
		}
		if parentID := item.ParentID(); parentID != nil {
			parent, err := tx.FindOne(ctx, repository.WithID(*parentID))
			if err != nil {
				return storeError("load parent", err)
			}
			if parent.Location() != location {
				return fmt.Errorf("activate %s: %w: parent %s is %s", itemID, ErrInvalidLocation, parent.ID(), parent.Location())
			}
		}

		next := item.Activate()
		group := navigation.NewGroup(item.ParentID(), location)
		if item.Location() != location {
			siblings, err := tx.Find(ctx, navigation.WithGroup(group)...)
			if err != nil {
				return storeError("load siblings", err)
			}
			order := item.SortOrder()
			if navigation.SortOrderTaken(siblings, order, item.ID()) {
				order = navigation.NextSortOrder(siblings)
			}
			next = next.WithLocation(location).WithSortOrder(order)

			all, err := tx.Find(ctx)
			if err != nil {
				return storeError("load menu", err)
			}
			for _, d := range navigation.Descendants(all, itemID) {
				if _, err := tx.Save(ctx, d.WithLocation(location)); err != nil {
					return storeError("move descendant", err)
				}
			}
		}

		updated, err = tx.Save(ctx, next)
		if err != nil {
			return storeError("save menu item", err)
		}
		return verifyGroup(ctx, tx, group)
	})
	if err != nil {
		return navigation.MenuItem{}, err
	}

	s.logger.InfoContext(ctx, "menu item activated",
		slog.String("id", updated.ID()),
		slog.String("location", string(updated.Location())),
	)
	return updated, nil
}

// Deactivate hides an item without deleting it.
func (s *Navigation) Deactivate(ctx context.Context, itemID string) (navigation.MenuItem, error) {
	item, err := s.store.FindOne(ctx, repository.WithID(itemID))
	if err != nil {
		return navigation.MenuItem{}, storeError("load menu item", err)
	}
	if !item.IsActive() {
		return item, nil
	}
	updated, err := s.store.Save(ctx, item.Deactivate())
	if err != nil {
		return navigation.MenuItem{}, storeError("save menu item", err)
	}
	s.logger.InfoContext(ctx, "menu item deactivated", slog.String("id", itemID))
	return updated, nil
}

// FindByLabelOrPath returns every item matching m, in sibling order.
func (s *Navigation) FindByLabelOrPath(ctx context.Context, m MenuMatch) ([]navigation.MenuItem, error) {
	options := navigation.WithSiblingOrder()
	if m.Location != "" {
		options = append(options, navigation.WithLocation(m.Location))
	}
	items, err := s.store.Find(ctx, options...)
	if err != nil {
		return nil, storeError("find menu items", err)
	}
	var out []navigation.MenuItem
	for _, item := range items {
		if m.matches(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// ResolveAnchor returns the single item matching m. No match is
// ErrNotFound and several matches are ErrAmbiguousParent.
func (s *Navigation) ResolveAnchor(ctx context.Context, m MenuMatch) (navigation.MenuItem, error) {
	items, err := s.FindByLabelOrPath(ctx, m)
	if err != nil {
		return navigation.MenuItem{}, err
	}
	switch len(items) {
	case 0:
		return navigation.MenuItem{}, fmt.Errorf("resolve anchor %q/%q: %w", m.Label, m.Path, ErrNotFound)
	case 1:
		return items[0], nil
	default:
		ids := make([]string, len(items))
		for i, item := range items {
			ids[i] = item.ID()
		}
		return navigation.MenuItem{}, fmt.Errorf("resolve anchor %q/%q: %w: %s",
			m.Label, m.Path, ErrAmbiguousParent, strings.Join(ids, ", "))
	}
}

// Ensure returns the sibling of item that already serves the same path (or,
// for placeholder items, the same primary label), or inserts item at
// sortOrder. The boolean reports whether a row was inserted.
func (s *Navigation) Ensure(ctx context.Context, parentID *string, item navigation.MenuItem, sortOrder int) (navigation.MenuItem, bool, error) {
	var result navigation.MenuItem
	created := false
	err := s.store.Atomic(ctx, func(tx navigation.Store) error {
		siblings, err := tx.Find(ctx, navigation.WithGroup(navigation.NewGroup(parentID, item.Location()))...)
		if err != nil {
			return storeError("load siblings", err)
		}
		for _, sibling := range siblings {
			if sameEntry(sibling, item) {
				result = sibling
				return nil
			}
		}
		result, err = s.insertChild(ctx, tx, parentID, item, sortOrder)
		created = err == nil
		return err
	})
	if err != nil {
		return navigation.MenuItem{}, false, err
	}
	return result, created, nil
}

func sameEntry(existing, candidate navigation.MenuItem) bool {
	if candidate.HasTarget() {
		return existing.Path() == candidate.Path()
	}
	return !existing.HasTarget() && strings.EqualFold(existing.Label().Primary(), candidate.Label().Primary())
}

// Tree returns the ordered forest for one location. Inactive items are
// included; callers check MenuItem.IsActive.
func (s *Navigation) Tree(ctx context.Context, location navigation.Location) ([]navigation.Node, error) {
	items, err := s.store.Find(ctx, append(navigation.WithSiblingOrder(), navigation.WithLocation(location))...)
	if err != nil {
		return nil, storeError("load menu", err)
	}
	return navigation.BuildForest(items), nil
}

// Validate checks the whole menu table for broken invariants.
func (s *Navigation) Validate(ctx context.Context) ([]navigation.Violation, error) {
	items, err := s.store.Find(ctx)
	if err != nil {
		return nil, storeError("load menu", err)
	}
	return navigation.Validate(items), nil
}

func verifyGroup(ctx context.Context, tx navigation.Store, group navigation.Group) error {
	siblings, err := tx.Find(ctx, navigation.WithGroup(group)...)
	if err != nil {
		return storeError("verify siblings", err)
	}
	if violations := navigation.ValidateGroup(siblings); len(violations) > 0 {
		return fmt.Errorf("verify group %s: %w: %s", group.Key(), ErrConflict, violations[0])
	}
	return nil
}

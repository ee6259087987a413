package navigation

import (
	"fmt"
	"sort"
)

// Node is a MenuItem with its ordered children.
type Node struct {
	Item     MenuItem
	Children []Node
}

// BuildForest arranges items into ordered trees. Items whose parent is not
// present in items are treated as roots so nothing is silently dropped.
func BuildForest(items []MenuItem) []Node {
	byID := make(map[string]bool, len(items))
	for _, item := range items {
		byID[item.ID()] = true
	}

	children := make(map[string][]MenuItem)
	var roots []MenuItem
	for _, item := range items {
		if item.IsRoot() || !byID[*item.parentID] {
			roots = append(roots, item)
			continue
		}
		children[*item.parentID] = append(children[*item.parentID], item)
	}

	visited := make(map[string]bool, len(items))
	var build func(level []MenuItem) []Node
	build = func(level []MenuItem) []Node {
		SortSiblings(level)
		nodes := make([]Node, 0, len(level))
		for _, item := range level {
			if visited[item.ID()] {
				continue
			}
			visited[item.ID()] = true
			nodes = append(nodes, Node{Item: item, Children: build(children[item.ID()])})
		}
		return nodes
	}
	return build(roots)
}

// SortSiblings orders items by sort order, breaking ties by ID.
func SortSiblings(items []MenuItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortOrder() != items[j].SortOrder() {
			return items[i].SortOrder() < items[j].SortOrder()
		}
		return items[i].ID() < items[j].ID()
	})
}

// NextSortOrder returns max(sortOrder)+1 over siblings, or 0 when empty.
func NextSortOrder(siblings []MenuItem) int {
	next := 0
	for _, s := range siblings {
		if s.SortOrder() >= next {
			next = s.SortOrder() + 1
		}
	}
	return next
}

// SortOrderTaken reports whether any sibling other than exceptID uses order.
func SortOrderTaken(siblings []MenuItem, order int, exceptID string) bool {
	for _, s := range siblings {
		if s.ID() != exceptID && s.SortOrder() == order {
			return true
		}
	}
	return false
}

// Descendants returns every descendant of rootID in depth-first post-order:
// each child appears before its own parent, deepest items first.
func Descendants(items []MenuItem, rootID string) []MenuItem {
	children := make(map[string][]MenuItem)
	for _, item := range items {
		if item.parentID != nil {
			children[*item.parentID] = append(children[*item.parentID], item)
		}
	}

	var out []MenuItem
	seen := map[string]bool{rootID: true}
	var walk func(id string)
	walk = func(id string) {
		level := children[id]
		SortSiblings(level)
		for _, child := range level {
			if seen[child.ID()] {
				continue
			}
			seen[child.ID()] = true
			walk(child.ID())
			out = append(out, child)
		}
	}
	walk(rootID)
	return out
}

// IsDescendant reports whether candidateID lies in the subtree of rootID.
func IsDescendant(items []MenuItem, rootID, candidateID string) bool {
	for _, d := range Descendants(items, rootID) {
		if d.ID() == candidateID {
			return true
		}
	}
	return false
}

// ViolationKind classifies a consistency problem in the menu table.
type ViolationKind string

// ViolationKind values.
const (
	ViolationDuplicateSortOrder ViolationKind = "duplicate_sort_order"
	ViolationOrphan             ViolationKind = "orphan"
	ViolationLocationMismatch   ViolationKind = "location_mismatch"
	ViolationCycle              ViolationKind = "cycle"
)

// Violation describes one broken invariant.
type Violation struct {
	Kind    ViolationKind
	ItemIDs []string
	Detail  string
}

// String returns a readable representation.
func (v Violation) String() string {
	return fmt.Sprintf("%s: %s %v", v.Kind, v.Detail, v.ItemIDs)
}

// ValidateGroup checks sort-order uniqueness inside one sibling group.
func ValidateGroup(siblings []MenuItem) []Violation {
	byOrder := make(map[int][]string)
	for _, s := range siblings {
		byOrder[s.SortOrder()] = append(byOrder[s.SortOrder()], s.ID())
	}

	orders := make([]int, 0, len(byOrder))
	for order := range byOrder {
		orders = append(orders, order)
	}
	sort.Ints(orders)

	var violations []Violation
	for _, order := range orders {
		ids := byOrder[order]
		if len(ids) < 2 {
			continue
		}
		sort.Strings(ids)
		violations = append(violations, Violation{
			Kind:    ViolationDuplicateSortOrder,
			ItemIDs: ids,
			Detail:  fmt.Sprintf("sort_order %d", order),
		})
	}
	return violations
}

// Validate checks every invariant across the whole menu table.
func Validate(items []MenuItem) []Violation {
	byID := make(map[string]MenuItem, len(items))
	for _, item := range items {
		byID[item.ID()] = item
	}

	groups := make(map[string][]MenuItem)
	var groupKeys []string
	var violations []Violation

	for _, item := range items {
		key := item.Group().Key()
		if _, ok := groups[key]; !ok {
			groupKeys = append(groupKeys, key)
		}
		groups[key] = append(groups[key], item)

		if item.IsRoot() {
			continue
		}
		parent, ok := byID[*item.parentID]
		if !ok {
			violations = append(violations, Violation{
				Kind:    ViolationOrphan,
				ItemIDs: []string{item.ID()},
				Detail:  "parent " + *item.parentID + " missing",
			})
			continue
		}
		if parent.Location() != item.Location() {
			violations = append(violations, Violation{
				Kind:    ViolationLocationMismatch,
				ItemIDs: []string{item.ID(), parent.ID()},
				Detail:  fmt.Sprintf("%s under %s", item.Location(), parent.Location()),
			})
		}
	}

	sort.Strings(groupKeys)
	for _, key := range groupKeys {
		violations = append(violations, ValidateGroup(groups[key])...)
	}

	violations = append(violations, findCycles(byID)...)
	return violations
}

func findCycles(byID map[string]MenuItem) []Violation {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	reported := make(map[string]bool)
	var violations []Violation
	for _, start := range ids {
		path := map[string]bool{}
		current := byID[start]
		for !current.IsRoot() && !reported[current.ID()] {
			if path[current.ID()] {
				members := cycleMembers(byID, current)
				for _, id := range members {
					reported[id] = true
				}
				violations = append(violations, Violation{
					Kind:    ViolationCycle,
					ItemIDs: members,
					Detail:  "parent chain loops",
				})
				break
			}
			path[current.ID()] = true
			next, ok := byID[*current.parentID]
			if !ok {
				break
			}
			current = next
		}
	}
	return violations
}

// cycleMembers follows parents from an item known to sit on a cycle.
func cycleMembers(byID map[string]MenuItem, on MenuItem) []string {
	members := []string{on.ID()}
	current := byID[*on.parentID]
	for current.ID() != on.ID() {
		members = append(members, current.ID())
		current = byID[*current.parentID]
	}
	sort.Strings(members)
	return members
}

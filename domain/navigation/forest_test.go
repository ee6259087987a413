package navigation

import (
	"testing"
	"time"

	"github.com/helixml/sitekit/domain/bilingual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, parent *string, order int, loc Location) MenuItem {
	return ReconstructMenuItem(id, bilingual.New(id, id), "/"+id, parent, order, loc, true, time.Time{}, time.Time{})
}

func ptr(s string) *string { return &s }

func TestNewMenuItem_Defaults(t *testing.T) {
	m := NewMenuItem(bilingual.New("Bisnis", "Business"), "", LocationHeader)

	assert.NotEmpty(t, m.ID())
	assert.Equal(t, PathPlaceholder, m.Path())
	assert.False(t, m.HasTarget())
	assert.True(t, m.IsRoot())
	assert.True(t, m.IsActive())
}

func TestMenuItem_ParentIsCopied(t *testing.T) {
	parent := "p1"
	m := NewMenuItem(bilingual.New("a", "a"), "/a", LocationHeader).WithParent(&parent)
	parent = "changed"

	require.NotNil(t, m.ParentID())
	assert.Equal(t, "p1", *m.ParentID())
	assert.True(t, m.IsChildOf("p1"))
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("footer")
	require.NoError(t, err)
	assert.Equal(t, LocationFooter, loc)

	_, err = ParseLocation("sidebar")
	assert.ErrorIs(t, err, ErrInvalidLocation)
}

func TestBuildForest_OrdersSiblings(t *testing.T) {
	items := []MenuItem{
		item("about", nil, 1, LocationHeader),
		item("home", nil, 0, LocationHeader),
		item("team", ptr("about"), 2, LocationHeader),
		item("history", ptr("about"), 0, LocationHeader),
	}

	forest := BuildForest(items)

	require.Len(t, forest, 2)
	assert.Equal(t, "home", forest[0].Item.ID())
	assert.Equal(t, "about", forest[1].Item.ID())
	require.Len(t, forest[1].Children, 2)
	assert.Equal(t, "history", forest[1].Children[0].Item.ID())
	assert.Equal(t, "team", forest[1].Children[1].Item.ID())
}

func TestBuildForest_OrphansBecomeRoots(t *testing.T) {
	forest := BuildForest([]MenuItem{item("lost", ptr("gone"), 0, LocationFooter)})

	require.Len(t, forest, 1)
	assert.Equal(t, "lost", forest[0].Item.ID())
}

func TestDescendants_ChildrenBeforeParents(t *testing.T) {
	items := []MenuItem{
		item("root", nil, 0, LocationHeader),
		item("a", ptr("root"), 0, LocationHeader),
		item("a1", ptr("a"), 0, LocationHeader),
		item("b", ptr("root"), 1, LocationHeader),
		item("other", nil, 1, LocationHeader),
	}

	got := Descendants(items, "root")

	ids := make([]string, len(got))
	for i, d := range got {
		ids[i] = d.ID()
	}
	assert.Equal(t, []string{"a1", "a", "b"}, ids)
	assert.True(t, IsDescendant(items, "root", "a1"))
	assert.False(t, IsDescendant(items, "root", "other"))
}

func TestNextSortOrder(t *testing.T) {
	assert.Equal(t, 0, NextSortOrder(nil))
	assert.Equal(t, 8, NextSortOrder([]MenuItem{
		item("a", nil, 3, LocationHeader),
		item("b", nil, 7, LocationHeader),
	}))
}

func TestValidate(t *testing.T) {
	items := []MenuItem{
		item("home", nil, 0, LocationHeader),
		item("about", nil, 0, LocationHeader),
		item("contact", ptr("home"), 0, LocationFooter),
		item("orphan", ptr("missing"), 0, LocationHeader),
		item("x", ptr("y"), 0, LocationFooter),
		item("y", ptr("x"), 1, LocationFooter),
	}

	violations := Validate(items)

	kinds := map[ViolationKind]int{}
	for _, v := range violations {
		kinds[v.Kind]++
	}
	assert.Equal(t, 1, kinds[ViolationDuplicateSortOrder])
	assert.Equal(t, 1, kinds[ViolationOrphan])
	assert.Equal(t, 1, kinds[ViolationLocationMismatch])
	assert.Equal(t, 1, kinds[ViolationCycle])
}

func TestValidate_CleanTree(t *testing.T) {
	items := []MenuItem{
		item("home", nil, 0, LocationHeader),
		item("about", nil, 1, LocationHeader),
		item("team", ptr("about"), 0, LocationHeader),
		item("privacy", nil, 0, LocationFooter),
	}

	assert.Empty(t, Validate(items))
}

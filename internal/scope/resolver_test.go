package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProductAuthorized_AllScopeDominates(t *testing.T) {
	product := Product{ID: "p1", Category: CategoryID("c1")}
	grants := []Grant{
		{Scope: ScopeSpecific, Products: []string{"other"}},
		{Scope: ScopeAll},
	}

	assert.True(t, IsProductAuthorized(product, grants))
}

func TestIsProductAuthorized_SpecificScope(t *testing.T) {
	product := Product{ID: "p1"}

	assert.True(t, IsProductAuthorized(product, []Grant{
		{Scope: ScopeSpecific, Products: []string{"p1", "p2"}},
	}))
	assert.False(t, IsProductAuthorized(product, []Grant{
		{Scope: ScopeSpecific, Products: []string{"p2"}},
	}))
}

func TestIsProductAuthorized_CategoryScopeIsExact(t *testing.T) {
	// Product sits in a child category; the grant covers only the parent.
	// Category membership is tested exactly, without descendant expansion.
	product := Product{ID: "p1", Category: CategoryID("child")}

	assert.False(t, IsProductAuthorized(product, []Grant{
		{Scope: ScopeCategory, Categories: []string{"parent"}},
	}))
	assert.True(t, IsProductAuthorized(product, []Grant{
		{Scope: ScopeCategory, Categories: []string{"child"}},
	}))
}

func TestIsProductAuthorized_MixedScope(t *testing.T) {
	grants := []Grant{
		{Scope: ScopeMixed, Categories: []string{"c1"}, Products: []string{"p9"}},
	}

	assert.True(t, IsProductAuthorized(Product{ID: "p9"}, grants))
	assert.True(t, IsProductAuthorized(Product{ID: "p1", Category: CategoryID("c1")}, grants))
	assert.False(t, IsProductAuthorized(Product{ID: "p1", Category: CategoryID("c2")}, grants))
}

func TestIsProductAuthorized_EmptyCategoryKeyNeverMatches(t *testing.T) {
	product := Product{ID: "p1"}

	assert.False(t, IsProductAuthorized(product, []Grant{
		{Scope: ScopeCategory, Categories: []string{""}},
	}))
}

func selectionTree() *Tree {
	return BuildTree([]Category{
		{ID: "A"},
		{ID: "B", ParentID: "A"},
		{ID: "C", ParentID: "A"},
		{ID: "D", ParentID: "B"},
	})
}

func TestToggleCategory_TogglesDescendantsAtomically(t *testing.T) {
	tree := selectionTree()
	sel := NewSelection()

	sel.ToggleCategory(tree, "A")

	assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, sel.CategoryIDs())
}

func TestToggleCategory_Involution(t *testing.T) {
	tree := selectionTree()
	sel := NewSelection()
	sel.ToggleProduct("p1")

	sel.ToggleCategory(tree, "B")
	sel.ToggleCategory(tree, "B")

	assert.Empty(t, sel.CategoryIDs())
	assert.Equal(t, []string{"p1"}, sel.ProductIDs())
}

func TestToggleCategory_PartialSelectionCompletesSet(t *testing.T) {
	tree := selectionTree()
	sel := NewSelection()

	// Only a subtree selected; toggling the root must add, not remove.
	sel.ToggleCategory(tree, "B")
	assert.ElementsMatch(t, []string{"B", "D"}, sel.CategoryIDs())

	sel.ToggleCategory(tree, "A")
	assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, sel.CategoryIDs())

	// Now fully selected: toggling the root clears the whole set.
	sel.ToggleCategory(tree, "A")
	assert.Empty(t, sel.CategoryIDs())
}

func TestToggleProduct(t *testing.T) {
	sel := NewSelection()

	sel.ToggleProduct("p1")
	assert.True(t, sel.HasProduct("p1"))

	sel.ToggleProduct("p1")
	assert.False(t, sel.HasProduct("p1"))
	assert.True(t, sel.IsEmpty())
}

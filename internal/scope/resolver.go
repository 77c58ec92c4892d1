package scope

import "sort"

// Grant scope values.
const (
	ScopeAll      = "all"
	ScopeCategory = "category"
	ScopeSpecific = "specific"
	ScopeMixed    = "mixed"
)

// Sku is one purchasable variant of a product.
type Sku struct {
	Code          string   `json:"code"`
	Spec          string   `json:"spec"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
}

// Product is a manufacturer product as returned by the backend.
type Product struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Code      string      `json:"code"`
	Category  CategoryRef `json:"category"`
	BasePrice float64     `json:"basePrice"`
	Skus      []Sku       `json:"skus"`
}

// Grant is an existing authorization grant. A grant with scope "all" covers
// every product; "category" covers products whose category id is listed;
// "specific" covers exactly the listed products; "mixed" is the union of the
// category and specific cases.
type Grant struct {
	Scope      string   `json:"scope"`
	Categories []string `json:"categories"`
	Products   []string `json:"products"`
	Status     string   `json:"status"`
}

// IsProductAuthorized reports whether any grant covers the product.
//
// Category membership is tested against the grant's category ids exactly,
// without expanding them to descendants. That asymmetry with
// Tree.DescendantIDs matches the platform's observed behavior; see DESIGN.md.
func IsProductAuthorized(product Product, grants []Grant) bool {
	categoryKey := product.Category.Key()

	for _, grant := range grants {
		switch grant.Scope {
		case ScopeAll:
			return true
		case ScopeSpecific:
			if containsID(grant.Products, product.ID) {
				return true
			}
		case ScopeCategory:
			if categoryKey != "" && containsID(grant.Categories, categoryKey) {
				return true
			}
		case ScopeMixed:
			if containsID(grant.Products, product.ID) {
				return true
			}
			if categoryKey != "" && containsID(grant.Categories, categoryKey) {
				return true
			}
		}
	}
	return false
}

func containsID(ids []string, id string) bool {
	if id == "" {
		return false
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Selection tracks the operator's chosen categories and products while an
// authorization request is being put together.
type Selection struct {
	categories map[string]bool
	products   map[string]bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{
		categories: make(map[string]bool),
		products:   make(map[string]bool),
	}
}

// ToggleCategory toggles a category and all its descendants atomically. The
// category counts as selected only when every descendant id is present;
// otherwise toggling adds the full descendant set. Toggling twice restores
// the selection to its original state.
func (s *Selection) ToggleCategory(tree *Tree, id string) {
	ids := tree.DescendantIDs(id)

	allSelected := true
	for cid := range ids {
		if !s.categories[cid] {
			allSelected = false
			break
		}
	}

	if allSelected {
		for cid := range ids {
			delete(s.categories, cid)
		}
		return
	}
	for cid := range ids {
		s.categories[cid] = true
	}
}

// ToggleProduct toggles a single product in or out of the selection.
func (s *Selection) ToggleProduct(id string) {
	if s.products[id] {
		delete(s.products, id)
		return
	}
	s.products[id] = true
}

// HasCategory reports whether a category id is currently selected.
func (s *Selection) HasCategory(id string) bool {
	return s.categories[id]
}

// HasProduct reports whether a product id is currently selected.
func (s *Selection) HasProduct(id string) bool {
	return s.products[id]
}

// CategoryIDs returns the selected category ids in sorted order.
func (s *Selection) CategoryIDs() []string {
	return sortedKeys(s.categories)
}

// ProductIDs returns the selected product ids in sorted order.
func (s *Selection) ProductIDs() []string {
	return sortedKeys(s.products)
}

// IsEmpty reports whether nothing is selected.
func (s *Selection) IsEmpty() bool {
	return len(s.categories) == 0 && len(s.products) == 0
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

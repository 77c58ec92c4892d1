package scope

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
)

// maxNotesNames caps how many category/product names are spelled out in the
// operator-review notes; beyond it a count indicator is appended. Fixed by
// contract with the review workflow.
const maxNotesNames = 50

// ErrEmptySelection is returned when a submission is built with nothing
// selected. The caller blocks the request instead of posting it.
var ErrEmptySelection = errors.New("no categories or products selected")

// Submission is the payload posted to the backend to request a new
// authorization grant.
type Submission struct {
	ManufacturerID string   `json:"manufacturerId"`
	Scope          string   `json:"scope"`
	Categories     []string `json:"categories"`
	Products       []string `json:"products"`
	ValidUntil     string   `json:"validUntil,omitempty"`
	Notes          string   `json:"notes"`
}

// BuildSubmission classifies the selection into a grant scope and serializes
// it, together with human-readable notes, for operator review. validUntil is
// an ISO date or empty for no expiry.
func BuildSubmission(manufacturerID string, sel *Selection, tree *Tree, products []Product, validUntil string) (Submission, error) {
	if sel == nil || sel.IsEmpty() {
		return Submission{}, ErrEmptySelection
	}

	categoryIDs := sel.CategoryIDs()
	productIDs := sel.ProductIDs()

	var grantScope string
	switch {
	case len(categoryIDs) > 0 && len(productIDs) > 0:
		grantScope = ScopeMixed
	case len(categoryIDs) > 0:
		grantScope = ScopeCategory
	default:
		grantScope = ScopeSpecific
	}

	productName := make(map[string]string, len(products))
	for _, p := range products {
		productName[p.ID] = p.Name
	}

	categoryNames := make([]string, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		categoryNames = append(categoryNames, nameOrID(tree.Name(id), id))
	}
	productNames := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		productNames = append(productNames, nameOrID(productName[id], id))
	}

	notes := strings.TrimSpace(fmt.Sprintf(dedent.Dedent(`
		scope: %s
		categories (%d): %s
		products (%d): %s
	`),
		grantScope,
		len(categoryNames), truncateNames(categoryNames),
		len(productNames), truncateNames(productNames),
	))

	return Submission{
		ManufacturerID: manufacturerID,
		Scope:          grantScope,
		Categories:     categoryIDs,
		Products:       productIDs,
		ValidUntil:     validUntil,
		Notes:          notes,
	}, nil
}

func nameOrID(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

// truncateNames joins up to maxNotesNames names, appending how many were
// left out.
func truncateNames(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	if len(names) <= maxNotesNames {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s … (+%d more)",
		strings.Join(names[:maxNotesNames], ", "),
		len(names)-maxNotesNames,
	)
}

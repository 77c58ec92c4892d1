// authz-preview loads a manufacturer's authorization view and prints which
// products existing grants already cover, plus a dry-run submission payload
// for a category/product selection.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/perttu/commission-console/config"
	"github.com/perttu/commission-console/internal/api"
	"github.com/perttu/commission-console/internal/console"
	"github.com/perttu/commission-console/internal/scope"
)

func main() {
	var manufacturerID, categories, products, validUntil string

	flag.StringVar(&manufacturerID, "manufacturer", "", "Manufacturer ID (required)")
	flag.StringVar(&categories, "categories", "", "Comma-separated category IDs to toggle into the selection")
	flag.StringVar(&products, "products", "", "Comma-separated product IDs to select")
	flag.StringVar(&validUntil, "valid-until", "", "ISO date the grant expires")
	flag.Parse()

	if manufacturerID == "" {
		fmt.Fprintf(os.Stderr, "usage: authz-preview -manufacturer <id> [-categories a,b] [-products p1,p2] [-valid-until date]\n")
		os.Exit(1)
	}

	config.LoadEnvFile()
	cfg := config.FromEnv()
	if missing := cfg.Missing(); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "missing required config: %s\n", strings.Join(missing, ", "))
		os.Exit(1)
	}

	client := api.NewClient(api.ClientOpts{
		BaseURL: cfg.APIBaseURL,
		Token:   cfg.APIToken,
	})

	view, err := console.LoadAuthorizationView(context.Background(), client, manufacturerID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load authorization view: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s — %d categories, %d products, %d grants\n\n",
		view.Manufacturer.Name, len(view.Categories), len(view.Products), len(view.Grants))

	for _, p := range view.Products {
		badge := " "
		if view.IsProductAuthorized(p) {
			badge = "✓"
		}
		q := view.Quote(p)
		fmt.Printf("[%s] %-30s  list %.0f  min %d  commission %d\n",
			badge, p.Name, q.ListPrice, q.DiscountedPrice, q.Commission)
	}

	if categories == "" && products == "" {
		return
	}

	sel := scope.NewSelection()
	for _, id := range splitIDs(categories) {
		sel.ToggleCategory(view.Tree, id)
	}
	for _, id := range splitIDs(products) {
		sel.ToggleProduct(id)
	}

	sub, err := scope.BuildSubmission(manufacturerID, sel, view.Tree, view.Products, validUntil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot build submission: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(sub, "", "  ")
	fmt.Printf("\ndry-run submission:\n%s\n", out)
}

func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

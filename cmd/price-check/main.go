// price-check quotes the minimum resale price and commission split for a
// list price under a given discount rule, the same way product views do.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/dedent"

	"github.com/perttu/commission-console/internal/pricing"
)

func main() {
	var listPrice, rate, minPrice, commission, floor float64
	var basis string

	flag.Float64Var(&listPrice, "list", 0, "List price in currency units")
	flag.StringVar(&basis, "basis", "", "Pricing basis: rate or minPrice (inferred when omitted)")
	flag.Float64Var(&rate, "rate", -1, "Discount rate in [0,1]")
	flag.Float64Var(&minPrice, "min-price", -1, "Absolute minimum discount price")
	flag.Float64Var(&commission, "commission", -1, "Commission rate in [0,1], capped at 0.5")
	flag.Float64Var(&floor, "floor", -1, "Minimum sale discount rate floor in [0,1]")
	flag.Parse()

	if listPrice <= 0 {
		fmt.Fprint(os.Stderr, strings.TrimSpace(dedent.Dedent(`
			usage: price-check -list <price> [-basis rate|minPrice] [-rate r] [-min-price p] [-commission c] [-floor f]

			Quotes the discounted price, commission and factory income for a
			list price. Omitted values fall back to the platform defaults.
		`))+"\n")
		os.Exit(1)
	}

	rule := &pricing.DiscountRule{DiscountType: basis}
	if rate >= 0 {
		rule.DiscountRate = &rate
	}
	if minPrice >= 0 {
		rule.MinDiscountPrice = &minPrice
	}
	if commission >= 0 {
		rule.CommissionRate = &commission
	}

	var settings *pricing.ProfitSettings
	if floor >= 0 {
		settings = &pricing.ProfitSettings{MinSaleDiscountRate: floor}
	}

	q := pricing.QuoteSku(listPrice, rule, settings)

	fmt.Printf("list price:       %.2f\n", q.ListPrice)
	fmt.Printf("discounted price: %d\n", q.DiscountedPrice)
	fmt.Printf("commission:       %d\n", q.Commission)
	fmt.Printf("factory income:   %d\n", q.FactoryIncome)
	if q.DiscountRate > 0 {
		fmt.Printf("discount rate:    %.2f\n", q.DiscountRate)
	}
}

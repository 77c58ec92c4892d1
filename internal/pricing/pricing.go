// Package pricing computes minimum resale prices and commission splits
// from a manufacturer's tiered discount configuration.
//
// The resolver never returns errors: malformed or partial configuration
// degrades to package defaults so a view can always render a price.
package pricing

import "math"

const (
	// BasisRate derives the discounted price as a fraction of list price.
	BasisRate = "rate"
	// BasisMinPrice uses a configured absolute minimum price directly.
	BasisMinPrice = "minPrice"

	// DefaultDiscountRate applies when a rule carries no usable rate.
	DefaultDiscountRate = 0.6
	// DefaultCommissionRate applies when a rule carries no usable commission rate.
	DefaultCommissionRate = 0.4
	// MaxCommissionRate is a hard business ceiling on commission, regardless
	// of configuration.
	MaxCommissionRate = 0.5
)

// DiscountRule configures how the minimum resale price and commission split
// are derived for a sales channel. Numeric fields are pointers so an absent
// value can be told apart from an explicit zero.
type DiscountRule struct {
	DiscountType     string   `json:"discountType"`
	DiscountRate     *float64 `json:"discountRate"`
	MinDiscountPrice *float64 `json:"minDiscountPrice"`
	CommissionRate   *float64 `json:"commissionRate"`
}

// ProfitSettings carries the contractual floor below which a discounted
// price may not fall, no matter how aggressive the discount rule is.
type ProfitSettings struct {
	MinSaleDiscountRate float64 `json:"minSaleDiscountRate"`
}

// Quote is the result of a pricing computation. FactoryIncome is always
// DiscountedPrice - Commission; the three figures are consistent by
// construction.
type Quote struct {
	ListPrice       float64 `json:"listPrice"`
	DiscountedPrice int64   `json:"discountedPrice"`
	Commission      int64   `json:"commission"`
	FactoryIncome   int64   `json:"factoryIncome"`
	DiscountRate    float64 `json:"discountRate,omitempty"`
}

// QuoteSku computes the discounted price, commission and factory income for
// a single list price. rule and floor may be nil.
func QuoteSku(listPrice float64, rule *DiscountRule, floor *ProfitSettings) Quote {
	lp := coerce(listPrice)

	basis, rate, minPrice := resolveBasis(rule)

	var raw float64
	switch basis {
	case BasisMinPrice:
		raw = math.Max(minPrice, 0)
	default:
		raw = lp * rate
	}

	// The floor always wins over the rule so a configuration error can
	// never produce a price below the contractual minimum.
	if floor != nil {
		raw = math.Max(raw, lp*clamp(coerce(floor.MinSaleDiscountRate), 0, 1))
	}

	discounted := int64(math.Round(raw))

	commissionRate := DefaultCommissionRate
	if rule != nil && isUsable(rule.CommissionRate) {
		commissionRate = *rule.CommissionRate
	}
	commissionRate = clamp(commissionRate, 0, MaxCommissionRate)

	commission := int64(math.Round(float64(discounted) * commissionRate))

	q := Quote{
		ListPrice:       lp,
		DiscountedPrice: discounted,
		Commission:      commission,
		FactoryIncome:   discounted - commission,
	}
	if basis == BasisRate {
		q.DiscountRate = rate
	}
	return q
}

// resolveBasis decides which pricing basis a rule uses. An explicit
// discountType wins; otherwise minPrice is inferred when only
// minDiscountPrice is present.
func resolveBasis(rule *DiscountRule) (basis string, rate, minPrice float64) {
	rate = DefaultDiscountRate
	if rule == nil {
		return BasisRate, rate, 0
	}

	if isUsable(rule.DiscountRate) {
		rate = clamp(*rule.DiscountRate, 0, 1)
	}
	if isUsable(rule.MinDiscountPrice) {
		minPrice = *rule.MinDiscountPrice
	}

	switch rule.DiscountType {
	case BasisMinPrice:
		return BasisMinPrice, rate, minPrice
	case BasisRate:
		return BasisRate, rate, minPrice
	}

	// No explicit type: infer minPrice when it is the only configured basis.
	if isUsable(rule.MinDiscountPrice) && !isUsable(rule.DiscountRate) {
		return BasisMinPrice, rate, minPrice
	}
	return BasisRate, rate, minPrice
}

func isUsable(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// coerce maps NaN, infinities and negative values to 0, mirroring how the
// platform treats malformed numeric input.
func coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

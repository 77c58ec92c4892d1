package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestQuoteSku_RateBasis(t *testing.T) {
	rule := &DiscountRule{
		DiscountType:   BasisRate,
		DiscountRate:   f(0.6),
		CommissionRate: f(0.4),
	}
	floor := &ProfitSettings{MinSaleDiscountRate: 0.6}

	q := QuoteSku(10000, rule, floor)

	assert.Equal(t, int64(6000), q.DiscountedPrice)
	assert.Equal(t, int64(2400), q.Commission)
	assert.Equal(t, int64(3600), q.FactoryIncome)
}

func TestQuoteSku_FloorDominates(t *testing.T) {
	rule := &DiscountRule{
		DiscountType:   BasisRate,
		DiscountRate:   f(0.6),
		CommissionRate: f(0.4),
	}
	floor := &ProfitSettings{MinSaleDiscountRate: 0.8}

	q := QuoteSku(10000, rule, floor)

	assert.Equal(t, int64(8000), q.DiscountedPrice)
	assert.Equal(t, int64(3200), q.Commission)
	assert.Equal(t, int64(4800), q.FactoryIncome)
}

func TestQuoteSku_MinPriceBasis(t *testing.T) {
	rule := &DiscountRule{
		DiscountType:     BasisMinPrice,
		MinDiscountPrice: f(4500),
		CommissionRate:   f(0.3),
	}

	q := QuoteSku(10000, rule, nil)

	assert.Equal(t, int64(4500), q.DiscountedPrice)
	assert.Equal(t, int64(1350), q.Commission)
	assert.Equal(t, int64(3150), q.FactoryIncome)
}

func TestQuoteSku_InfersMinPriceBasis(t *testing.T) {
	// No explicit type and only minDiscountPrice configured
	rule := &DiscountRule{MinDiscountPrice: f(7000)}

	q := QuoteSku(10000, rule, nil)

	assert.Equal(t, int64(7000), q.DiscountedPrice)
}

func TestQuoteSku_NilRuleUsesDefaults(t *testing.T) {
	q := QuoteSku(10000, nil, nil)

	assert.Equal(t, int64(6000), q.DiscountedPrice)
	assert.Equal(t, int64(2400), q.Commission)
	assert.Equal(t, int64(3600), q.FactoryIncome)
}

func TestQuoteSku_CommissionCap(t *testing.T) {
	rule := &DiscountRule{
		DiscountRate:   f(0.6),
		CommissionRate: f(0.9),
	}

	q := QuoteSku(10000, rule, nil)

	// Capped at 50% regardless of configuration
	assert.Equal(t, int64(3000), q.Commission)
}

func TestQuoteSku_MalformedInputsCoerced(t *testing.T) {
	rule := &DiscountRule{
		DiscountRate:   f(math.NaN()),
		CommissionRate: f(math.Inf(1)),
	}

	q := QuoteSku(math.NaN(), rule, &ProfitSettings{MinSaleDiscountRate: math.NaN()})

	assert.Equal(t, float64(0), q.ListPrice)
	assert.Equal(t, int64(0), q.DiscountedPrice)
	assert.Equal(t, int64(0), q.Commission)
	assert.Equal(t, int64(0), q.FactoryIncome)
}

func TestQuoteSku_Invariants(t *testing.T) {
	rules := []*DiscountRule{
		nil,
		{DiscountRate: f(0.1), CommissionRate: f(0.9)},
		{DiscountType: BasisMinPrice, MinDiscountPrice: f(100), CommissionRate: f(0.5)},
		{DiscountRate: f(1.5), CommissionRate: f(-0.2)},
	}
	floor := &ProfitSettings{MinSaleDiscountRate: 0.55}

	for _, rule := range rules {
		for _, listPrice := range []float64{1, 99, 10000, 123456} {
			q := QuoteSku(listPrice, rule, floor)

			// Floor invariant
			assert.GreaterOrEqual(t, float64(q.DiscountedPrice), math.Floor(listPrice*0.55))
			// Commission cap invariant
			assert.LessOrEqual(t, float64(q.Commission), float64(q.DiscountedPrice)*0.5+0.5)
			// Consistency invariant
			assert.Equal(t, q.DiscountedPrice-q.Commission, q.FactoryIncome)
		}
	}
}

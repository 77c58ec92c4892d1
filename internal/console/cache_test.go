package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/perttu/commission-console/internal/pricing"
)

func TestTierCache_GetSet(t *testing.T) {
	cache := NewTierCache(time.Minute)
	sys := &pricing.TierSystem{}

	_, ok := cache.Get("m1")
	assert.False(t, ok)

	cache.Set("m1", sys)

	got, ok := cache.Get("m1")
	assert.True(t, ok)
	assert.Same(t, sys, got)

	_, ok = cache.Get("m2")
	assert.False(t, ok)
}

func TestTierCache_Expiry(t *testing.T) {
	cache := NewTierCache(time.Millisecond)
	cache.Set("m1", &pricing.TierSystem{})

	time.Sleep(5 * time.Millisecond)

	_, ok := cache.Get("m1")
	assert.False(t, ok)
}

func TestTierCache_Clear(t *testing.T) {
	cache := NewTierCache(time.Minute)
	cache.Set("m1", &pricing.TierSystem{})

	cache.Clear()

	_, ok := cache.Get("m1")
	assert.False(t, ok)
}

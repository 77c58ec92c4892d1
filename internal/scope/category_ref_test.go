package scope

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRef_NormalizesAllVariants(t *testing.T) {
	tests := []struct {
		name string
		in   string
		key  string
	}{
		{"bare id string", `"cat-1"`, "cat-1"},
		{"numeric id", `42`, "42"},
		{"embedded with _id", `{"_id": "abc", "id": "def", "name": "Chairs"}`, "abc"},
		{"embedded with id", `{"id": "def", "slug": "chairs"}`, "def"},
		{"embedded with slug only", `{"slug": "chairs", "name": "Chairs"}`, "chairs"},
		{"embedded with name only", `{"name": "Chairs"}`, "Chairs"},
		{"embedded numeric id", `{"id": 42}`, "42"},
		{"empty object", `{}`, ""},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref CategoryRef
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ref))
			assert.Equal(t, tt.key, ref.Key())
		})
	}
}

func TestCategoryRef_MarshalsNormalizedKey(t *testing.T) {
	var product Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","category":{"_id":"c9","name":"Chairs"}}`), &product))

	assert.Equal(t, "c9", product.Category.Key())

	out, err := json.Marshal(product.Category)
	require.NoError(t, err)
	assert.Equal(t, `"c9"`, string(out))
}

func TestCategoryRef_GarbageIsZero(t *testing.T) {
	var ref CategoryRef
	require.NoError(t, json.Unmarshal([]byte(`true`), &ref))
	assert.True(t, ref.IsZero())
}

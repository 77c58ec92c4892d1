package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perttu/commission-console/internal/scope"
)

func testSubmission() scope.Submission {
	sel := scope.NewSelection()
	sel.ToggleProduct("p1")
	sub, err := scope.BuildSubmission("m1", sel, scope.BuildTree(nil), nil, "")
	if err != nil {
		panic(err)
	}
	return sub
}

func TestListProducts(t *testing.T) {
	var req *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req = r
		w.Header().Set("Content-Type", "application/json")
		// Category is polymorphic: id string, name string, or embedded object
		w.Write([]byte(`{"success":true,"data":[
			{"id":"p1","name":"Oak table","code":"OT-1","category":"c1","basePrice":10000,"skus":[{"code":"OT-1-S","spec":"small","price":8000}]},
			{"id":"p2","name":"Pine chair","code":"PC-1","category":{"_id":"c2","name":"Chairs"},"basePrice":4000}
		]}`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, Token: "tok"})
	products, err := client.ListProducts(context.Background(), "m1")
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "c1", products[0].Category.Key())
	assert.Equal(t, "c2", products[1].Category.Key())
	assert.Equal(t, float64(10000), products[0].BasePrice)
	require.Len(t, products[0].Skus, 1)
	assert.Equal(t, float64(8000), products[0].Skus[0].Price)

	assert.Equal(t, "/manufacturers/m1/products", req.URL.Path)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
}

func TestListAuthorizations(t *testing.T) {
	var req *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"scope":"mixed","categories":["c1"],"products":["p1"],"status":"active"}]}`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, Token: "tok"})
	grants, err := client.ListAuthorizations(context.Background(), "m1")
	require.NoError(t, err)

	require.Len(t, grants, 1)
	assert.Equal(t, "mixed", grants[0].Scope)
	assert.Equal(t, "m1", req.URL.Query().Get("manufacturerId"))
}

func TestSubmitAuthorization(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":"auth-9"}}`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, Token: "tok"})
	id, err := client.SubmitAuthorization(context.Background(), testSubmission())
	require.NoError(t, err)

	assert.Equal(t, "auth-9", id)
	assert.Equal(t, "m1", body["manufacturerId"])
	assert.Equal(t, "specific", body["scope"])
}

func TestUnwrap_RejectedEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"manufacturer disabled"}`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, Token: "tok"})
	_, err := client.GetManufacturer(context.Background(), "m1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "manufacturer disabled")
}

func TestHandleError_StatusCode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, Token: "tok"})
	_, err := client.ListManufacturers(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status: 502")
}

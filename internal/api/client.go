// Package api is a typed client for the commission platform's backend REST
// API. All endpoints return JSON envelopes of the shape {success, data,
// message}; an envelope with success=false is surfaced as an error carrying
// the server message.
package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/perttu/commission-console/internal/pricing"
	"github.com/perttu/commission-console/internal/scope"
)

// Manufacturer is a manufacturer account on the platform.
type Manufacturer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type ClientOpts struct {
	BaseURL string
	Token   string
}

type Client struct {
	httpClient *resty.Client
	baseURL    string
	token      string
}

func NewClient(opts ClientOpts) *Client {
	c := Client{baseURL: opts.BaseURL, token: opts.Token}
	c.httpClient = resty.New().
		SetDebug(false).
		SetBaseURL(c.baseURL).
		SetHeader("Accept", "application/json")

	return &c
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) req(ctx context.Context, result any) *resty.Request {
	request := c.httpClient.
		NewRequest().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.token)

	if result != nil {
		request.SetResult(result)
	}

	return request
}

// unwrap checks the envelope and decodes its data into out. out may be nil
// when the caller only cares about success.
func unwrap(env *envelope, out any) error {
	if !env.Success {
		if env.Message != "" {
			return fmt.Errorf("api error: %s", env.Message)
		}
		return fmt.Errorf("api error: request rejected")
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

func (c *Client) ListManufacturers(ctx context.Context) ([]Manufacturer, error) {
	env := &envelope{}

	_, err := handleError(c.req(ctx, env).Get("/manufacturers"))
	if err != nil {
		return nil, err
	}

	var manufacturers []Manufacturer
	return manufacturers, unwrap(env, &manufacturers)
}

func (c *Client) GetManufacturer(ctx context.Context, id string) (Manufacturer, error) {
	env := &envelope{}

	_, err := handleError(c.req(ctx, env).
		SetPathParams(map[string]string{"id": id}).
		Get("/manufacturers/{id}"))
	if err != nil {
		return Manufacturer{}, err
	}

	var m Manufacturer
	return m, unwrap(env, &m)
}

func (c *Client) ListCategories(ctx context.Context, manufacturerID string) ([]scope.Category, error) {
	env := &envelope{}

	_, err := handleError(c.req(ctx, env).
		SetPathParams(map[string]string{"id": manufacturerID}).
		Get("/manufacturers/{id}/categories"))
	if err != nil {
		return nil, err
	}

	var categories []scope.Category
	return categories, unwrap(env, &categories)
}

func (c *Client) ListProducts(ctx context.Context, manufacturerID string) ([]scope.Product, error) {
	env := &envelope{}

	_, err := handleError(c.req(ctx, env).
		SetPathParams(map[string]string{"id": manufacturerID}).
		Get("/manufacturers/{id}/products"))
	if err != nil {
		return nil, err
	}

	var products []scope.Product
	return products, unwrap(env, &products)
}

// GetCommissionSystem returns the manufacturer's tier configuration.
func (c *Client) GetCommissionSystem(ctx context.Context, manufacturerID string) (*pricing.TierSystem, error) {
	env := &envelope{}

	_, err := handleError(c.req(ctx, env).
		SetPathParams(map[string]string{"id": manufacturerID}).
		Get("/commission-system/manufacturer/{id}"))
	if err != nil {
		return nil, err
	}

	sys := &pricing.TierSystem{}
	if err := unwrap(env, sys); err != nil {
		return nil, err
	}
	return sys, nil
}

// GetEffectiveTier returns the requesting user's role module and rule
// assignment.
func (c *Client) GetEffectiveTier(ctx context.Context) (*pricing.Assignment, error) {
	env := &envelope{}

	_, err := handleError(c.req(ctx, env).Get("/tier-system/effective"))
	if err != nil {
		return nil, err
	}

	asg := &pricing.Assignment{}
	if err := unwrap(env, asg); err != nil {
		return nil, err
	}
	return asg, nil
}

func (c *Client) GetProfitSettings(ctx context.Context, manufacturerID string) (*pricing.ProfitSettings, error) {
	env := &envelope{}

	_, err := handleError(c.req(ctx, env).
		SetPathParams(map[string]string{"id": manufacturerID}).
		Get("/profit-settings/manufacturer/{id}"))
	if err != nil {
		return nil, err
	}

	settings := &pricing.ProfitSettings{}
	if err := unwrap(env, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (c *Client) ListAuthorizations(ctx context.Context, manufacturerID string) ([]scope.Grant, error) {
	env := &envelope{}

	_, err := handleError(c.req(ctx, env).
		SetQueryParam("manufacturerId", manufacturerID).
		Get("/authorizations"))
	if err != nil {
		return nil, err
	}

	var grants []scope.Grant
	return grants, unwrap(env, &grants)
}

// SubmitAuthorization posts a new authorization request and returns the id
// assigned by the backend.
func (c *Client) SubmitAuthorization(ctx context.Context, sub scope.Submission) (string, error) {
	env := &envelope{}

	_, err := handleError(c.req(ctx, env).
		SetBody(sub).
		Post("/authorizations"))
	if err != nil {
		return "", err
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := unwrap(env, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// handleError is a generic error handler for failing responses (>399 status
// code). Without this, failing responses would have nil error.
func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, err
	}
	if res.IsError() {
		return res, fmt.Errorf("request failed: %s %s (status: %d)", res.Request.Method, res.Request.URL, res.StatusCode())
	}

	return res, nil
}

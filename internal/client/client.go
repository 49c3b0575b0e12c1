// Package client is the data-fetch adapter layer: per-entity typed wrappers
// around the platform's REST endpoints. Every call follows one contract:
// a 2xx response resolves to parsed records, anything else fails with the raw
// error payload attached. Callers do not distinguish failure classes at this
// boundary.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"resto-platform/internal/domain"
)

// APIError is any non-2xx response, payload included verbatim.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Body)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) FetchRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var out []domain.Restaurant
	if err := c.get(ctx, "/restaurants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FetchFoods(ctx context.Context, filter domain.FoodFilter) ([]domain.Food, error) {
	q := url.Values{}
	if filter.Lang != "" {
		q.Set("lang", filter.Lang)
	}
	if filter.RestaurantID != nil {
		q.Set("restaurant_id", filter.RestaurantID.String())
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	var out []domain.Food
	if err := c.get(ctx, "/foods", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FetchMenus(ctx context.Context, restaurantID uuid.UUID) ([]domain.Menu, error) {
	q := url.Values{"restaurant_id": {restaurantID.String()}}

	var out []domain.Menu
	if err := c.get(ctx, "/menus", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FetchRecommendations(ctx context.Context, restaurantID uuid.UUID, limit int) ([]domain.Food, error) {
	q := url.Values{"restaurant_id": {restaurantID.String()}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out []domain.Food
	if err := c.get(ctx, "/recommendations", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FetchBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	if err := c.get(ctx, "/blog", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Command is the admin list record as served by the back-office API.
type Command struct {
	ID           string `json:"id"`
	Code         int    `json:"code"`
	Type         string `json:"type"`
	Priceless    bool   `json:"priceless"`
	Total        int64  `json:"total"`
	TotalDisplay string `json:"total_display"`
	Validated    bool   `json:"validated"`
	Revoked      bool   `json:"revoked"`
	CreatedAt    string `json:"created_at"`
}

func (c *Client) FetchCommands(ctx context.Context, restaurantID *uuid.UUID) ([]Command, error) {
	q := url.Values{}
	if restaurantID != nil {
		q.Set("restaurant_id", restaurantID.String())
	}

	var out []Command
	if err := c.get(ctx, "/commands", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ValidateCommand(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/commands/"+id.String()+"/validate", nil, nil)
}

func (c *Client) RevokeCommand(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/commands/"+id.String()+"/revoke", nil, nil)
}

func (c *Client) DeleteCommand(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/commands/"+id.String(), nil, nil)
}

func (c *Client) SaveAccompanimentGroups(ctx context.Context, foodID uuid.UUID, groups []domain.AccompanimentGroup) error {
	body := map[string]interface{}{"groups": groups}
	return c.do(ctx, http.MethodPut, "/foods/"+foodID.String()+"/accompaniments", body, nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, target, nil, out)
}

// do issues one request bound to ctx. Cancelling the context aborts the
// request and its result is discarded: nothing is decoded into out once the
// owning session has ended.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return &APIError{Status: resp.StatusCode, Body: raw}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

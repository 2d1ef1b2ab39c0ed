package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"ehpadacademy/internal/types"
)

// ActivityFilter narrows ListActivities server-side.
type ActivityFilter struct {
	PublicOnly bool
	Limit      int
}

// ListActivities fetches activity sheets, optionally restricted to public
// ones and capped at a page size.
func (c *Client) ListActivities(ctx context.Context, filter ActivityFilter) ([]types.Activity, error) {
	q := url.Values{}
	if filter.PublicOnly {
		q.Set("is_public", "true")
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	var activities []types.Activity
	if err := c.do(ctx, http.MethodGet, "/activities/", q, nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetActivity fetches one sheet by id.
func (c *Client) GetActivity(ctx context.Context, id string) (*types.Activity, error) {
	var activity types.Activity
	if err := c.do(ctx, http.MethodGet, "/activities/"+id, nil, nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// CreateActivity stores a new sheet and returns the created record.
func (c *Client) CreateActivity(ctx context.Context, activity types.Activity) (*types.Activity, error) {
	var created types.Activity
	if err := c.do(ctx, http.MethodPost, "/activities/", nil, activity, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateActivity replaces a sheet by id.
func (c *Client) UpdateActivity(ctx context.Context, id string, activity types.Activity) (*types.Activity, error) {
	var updated types.Activity
	if err := c.do(ctx, http.MethodPut, "/activities/"+id, nil, activity, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteActivity removes a sheet by id.
func (c *Client) DeleteActivity(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/activities/"+id, nil, nil, nil)
}

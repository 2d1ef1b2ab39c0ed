package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"ehpadacademy/internal/types"
)

// UpdateUser applies partial profile fields and returns the full rewritten
// user record.
func (c *Client) UpdateUser(ctx context.Context, userID string, update types.UserUpdate) (*types.User, error) {
	var user types.User
	if err := c.do(ctx, http.MethodPut, "/users/"+userID, nil, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AddXP grants experience points. The amount travels in the query string,
// matching the server's signature.
func (c *Client) AddXP(ctx context.Context, userID string, points int) (*types.User, error) {
	q := url.Values{"xp_points": {strconv.Itoa(points)}}
	var user types.User
	if err := c.do(ctx, http.MethodPost, "/users/"+userID+"/xp", q, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AddBadge grants a badge. The server treats an already-held badge as a
// no-op; the session store additionally guards against the extra call.
func (c *Client) AddBadge(ctx context.Context, userID, badgeID string) (*types.User, error) {
	q := url.Values{"badge_id": {badgeID}}
	var user types.User
	if err := c.do(ctx, http.MethodPost, "/users/"+userID+"/badges", q, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CompleteTheme marks a theme as completed for the user.
func (c *Client) CompleteTheme(ctx context.Context, userID, theme string) (*types.User, error) {
	q := url.Values{"theme": {theme}}
	var user types.User
	if err := c.do(ctx, http.MethodPost, "/users/"+userID+"/complete-theme", q, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

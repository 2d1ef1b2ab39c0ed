package api

import (
	"context"
	"net/http"

	"ehpadacademy/internal/types"
)

// GameConfig fetches the game-configuration bundle.
func (c *Client) GameConfig(ctx context.Context) (*types.GameConfig, error) {
	var cfg types.GameConfig
	if err := c.do(ctx, http.MethodGet, "/config/game", nil, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Avatars fetches the avatar catalog.
func (c *Client) Avatars(ctx context.Context) ([]types.Avatar, error) {
	var avatars []types.Avatar
	if err := c.do(ctx, http.MethodGet, "/config/avatars", nil, nil, &avatars); err != nil {
		return nil, err
	}
	return avatars, nil
}

// Badges fetches the badge catalog.
func (c *Client) Badges(ctx context.Context) ([]types.Badge, error) {
	var badges []types.Badge
	if err := c.do(ctx, http.MethodGet, "/config/badges", nil, nil, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// Themes fetches the ordered theme catalog.
func (c *Client) Themes(ctx context.Context) ([]types.Theme, error) {
	var themes []types.Theme
	if err := c.do(ctx, http.MethodGet, "/config/themes", nil, nil, &themes); err != nil {
		return nil, err
	}
	return themes, nil
}

package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ehpadacademy/internal/api"
	"ehpadacademy/internal/types"
)

// FetchProfileCatalogs loads the avatar and badge catalogs concurrently,
// the way the profile view needs both at once. Either list falls back to
// the built-in catalog when its endpoint fails; the profile stays usable
// against a degraded server.
func FetchProfileCatalogs(ctx context.Context, client *api.Client) ([]types.Avatar, []types.Badge) {
	var (
		avatars []types.Avatar
		badges  []types.Badge
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		avatars, err = client.Avatars(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		badges, err = client.Badges(ctx)
		return err
	})
	// A failure on either endpoint just means falling back below.
	_ = g.Wait()

	if len(avatars) == 0 {
		avatars = Avatars()
	}
	if len(badges) == 0 {
		badges = Badges()
	}
	return avatars, badges
}

// FetchThemes loads the ordered theme catalog with the built-in fallback.
func FetchThemes(ctx context.Context, client *api.Client) []types.Theme {
	themes, err := client.Themes(ctx)
	if err != nil || len(themes) == 0 {
		return Themes()
	}
	return themes
}

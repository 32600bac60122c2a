package client

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"lifeupmcp/internal/logging"
	"lifeupmcp/internal/types"
)

// Tasks lists tasks.
func (c *Client) Tasks(ctx context.Context) ([]types.Task, error) {
	var out []types.Task
	if err := c.get(ctx, "/tasks", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AchievementCategories lists achievement categories.
func (c *Client) AchievementCategories(ctx context.Context) ([]types.AchievementCategory, error) {
	var out []types.AchievementCategory
	if err := c.get(ctx, "/achievement_categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Achievements lists the achievements of one category. Records without a
// category take categoryID.
func (c *Client) Achievements(ctx context.Context, categoryID int) ([]types.Achievement, error) {
	var out []types.Achievement
	if err := c.get(ctx, fmt.Sprintf("/achievements/%d", categoryID), &out); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].CategoryID == 0 {
			out[i].CategoryID = categoryID
		}
	}
	return out, nil
}

// AllAchievements fetches every category's achievements with at most
// maxParallelReads requests in flight. The result is ordered by category as
// listed by AchievementCategories, then by position within the category.
func (c *Client) AllAchievements(ctx context.Context) ([]types.Achievement, error) {
	categories, err := c.AchievementCategories(ctx)
	if err != nil {
		return nil, err
	}

	perCategory := make([][]types.Achievement, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxParallelReads)
	for i, cat := range categories {
		g.Go(func() error {
			list, err := c.Achievements(gctx, cat.ID)
			if err != nil {
				return err
			}
			perCategory[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []types.Achievement
	for _, list := range perCategory {
		all = append(all, list...)
	}
	logging.TransportDebug("fetched %d achievement(s) across %d categories", len(all), len(categories))
	return all, nil
}

// ShopItems lists shop items.
func (c *Client) ShopItems(ctx context.Context) ([]types.ShopItem, error) {
	var out []types.ShopItem
	if err := c.get(ctx, "/items", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Skills lists skills.
func (c *Client) Skills(ctx context.Context) ([]types.Skill, error) {
	var out []types.Skill
	if err := c.get(ctx, "/skills", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Info returns app and device information.
func (c *Client) Info(ctx context.Context) (*types.UserInfo, error) {
	var out types.UserInfo
	if err := c.get(ctx, "/info", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

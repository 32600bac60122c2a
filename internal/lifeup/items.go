package lifeup

import (
	"context"

	"lifeupmcp/internal/types"
)

// EditShopItem edits the item identified by id or name. A delete flag in args
// is ignored.
func (s *Service) EditShopItem(ctx context.Context, args map[string]any) (*MutationResult, error) {
	return s.Mutate(ctx, types.OpShopItemEdit, without(args, "delete"))
}

// DeleteShopItem deletes the item identified by id or name. Any other field is
// dropped.
func (s *Service) DeleteShopItem(ctx context.Context, args map[string]any) (*MutationResult, error) {
	target := map[string]any{"delete": true}
	for _, key := range []string{"id", "name"} {
		if v, ok := args[key]; ok {
			target[key] = v
		}
	}
	return s.Mutate(ctx, types.OpShopItemEdit, target)
}

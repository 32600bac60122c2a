package validate

import (
	"fmt"

	"lifeupmcp/internal/types"
)

// Request validates args for op and returns the typed request as a pointer to
// the matching types.*Request struct.
func Request(op types.Operation, args map[string]any) (any, error) {
	switch op {
	case types.OpTaskCreate:
		return TaskCreate(args)
	case types.OpTaskEdit:
		return TaskEdit(args)
	case types.OpTaskDelete:
		return TaskDelete(args)
	case types.OpSubtaskCreate:
		return SubtaskCreate(args)
	case types.OpAchievementCreate:
		return AchievementCreate(args)
	case types.OpAchievementUpdate:
		return AchievementUpdate(args)
	case types.OpAchievementDelete:
		return AchievementDelete(args)
	case types.OpShopItemCreate:
		return ShopItemCreate(args)
	case types.OpShopItemEdit:
		return ShopItemEdit(args)
	case types.OpPenalty:
		return Penalty(args)
	case types.OpSkill:
		return Skill(args)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
}

// TaskCreate validates a task creation request.
func TaskCreate(args map[string]any) (*types.TaskRequest, error) {
	return check[types.TaskRequest](types.OpTaskCreate, args, nil,
		func(r *types.TaskRequest, vs *violations) { requireSkillsForExp(vs, r.Exp, r.SkillIDs, "skillIds") },
		func(r *types.TaskRequest, vs *violations) { requireTargetForCount(vs, r.TaskType, r.TargetTimes) },
		func(r *types.TaskRequest, vs *violations) { requireItemForAmount(vs, r.ItemAmount, r.ItemID, r.ItemName) },
	)
}

// TaskEdit validates a partial task update.
func TaskEdit(args map[string]any) (*types.TaskEditRequest, error) {
	return check(types.OpTaskEdit, args,
		func(r *types.TaskEditRequest, vs *violations) bool {
			return requireIdentifier(vs, "task",
				identifier{"id", r.ID != nil},
				identifier{"gid", r.GID != nil},
				identifier{"name", r.Name != ""})
		},
		func(r *types.TaskEditRequest, vs *violations) { requireSkillsForExp(vs, r.Exp, r.SkillIDs, "skillIds") },
		func(r *types.TaskEditRequest, vs *violations) {
			checkAdjustment(vs, r.Exp, r.ExpSetType, "exp", "exp_set_type", 0)
		},
		func(r *types.TaskEditRequest, vs *violations) {
			checkAdjustment(vs, r.Coin, r.CoinSetType, "coin", "coin_set_type", 0)
		},
	)
}

// TaskDelete validates a task deletion.
func TaskDelete(args map[string]any) (*types.TaskDeleteRequest, error) {
	return check(types.OpTaskDelete, args,
		func(r *types.TaskDeleteRequest, vs *violations) bool {
			return requireIdentifier(vs, "task",
				identifier{"id", r.ID != nil},
				identifier{"gid", r.GID != nil},
				identifier{"name", r.Name != ""})
		},
	)
}

// SubtaskCreate validates adding one subtask to an existing task.
func SubtaskCreate(args map[string]any) (*types.SubtaskRequest, error) {
	return check(types.OpSubtaskCreate, args,
		func(r *types.SubtaskRequest, vs *violations) bool {
			return requireIdentifier(vs, "parent task",
				identifier{"main_id", r.MainID != nil},
				identifier{"main_gid", r.MainGID != nil},
				identifier{"main_name", r.MainName != ""})
		},
		func(r *types.SubtaskRequest, vs *violations) { requireItemForAmount(vs, r.ItemAmount, r.ItemID, "") },
	)
}

// AchievementCreate validates an achievement creation request.
func AchievementCreate(args map[string]any) (*types.AchievementCreateRequest, error) {
	return check[types.AchievementCreateRequest](types.OpAchievementCreate, args, nil,
		func(r *types.AchievementCreateRequest, vs *violations) { requireSkillsForExp(vs, r.Exp, r.Skills, "skills") },
	)
}

// AchievementUpdate validates a partial achievement update.
func AchievementUpdate(args map[string]any) (*types.AchievementUpdateRequest, error) {
	return check(types.OpAchievementUpdate, args,
		func(r *types.AchievementUpdateRequest, vs *violations) bool {
			return requireIdentifier(vs, "achievement", identifier{"edit_id", r.EditID != nil})
		},
		func(r *types.AchievementUpdateRequest, vs *violations) { requireSkillsForExp(vs, r.Exp, r.Skills, "skills") },
		func(r *types.AchievementUpdateRequest, vs *violations) {
			checkAdjustment(vs, r.Exp, r.ExpSetType, "exp", "exp_set_type", 0)
		},
		func(r *types.AchievementUpdateRequest, vs *violations) {
			checkAdjustment(vs, r.Coin, r.CoinSetType, "coin", "coin_set_type", 0)
		},
	)
}

// AchievementDelete validates an achievement deletion.
func AchievementDelete(args map[string]any) (*types.AchievementDeleteRequest, error) {
	return check(types.OpAchievementDelete, args,
		func(r *types.AchievementDeleteRequest, vs *violations) bool {
			return requireIdentifier(vs, "achievement", identifier{"edit_id", r.EditID != nil})
		},
	)
}

// ShopItemCreate validates adding a shop item.
func ShopItemCreate(args map[string]any) (*types.ShopItemCreateRequest, error) {
	return check[types.ShopItemCreateRequest](types.OpShopItemCreate, args, nil)
}

// ShopItemEdit validates a shop item edit or deletion.
func ShopItemEdit(args map[string]any) (*types.ShopItemEditRequest, error) {
	return check(types.OpShopItemEdit, args,
		func(r *types.ShopItemEditRequest, vs *violations) bool {
			return requireIdentifier(vs, "shop item",
				identifier{"id", r.ID != nil},
				identifier{"name", r.Name != ""})
		},
		func(r *types.ShopItemEditRequest, vs *violations) {
			checkAdjustment(vs, r.SetPrice, r.SetPriceType, "set_price", "set_price_type", 0)
		},
		func(r *types.ShopItemEditRequest, vs *violations) {
			checkAdjustment(vs, r.SetStockNumber, r.SetStockNumberType, "set_stock_number", "set_stock_number_type", -1)
		},
		func(r *types.ShopItemEditRequest, vs *violations) {
			checkAdjustment(vs, r.SetOwnNumber, r.SetOwnNumberType, "set_own_number", "set_own_number_type", 0)
		},
	)
}

// Penalty validates a penalty request.
func Penalty(args map[string]any) (*types.PenaltyRequest, error) {
	return check[types.PenaltyRequest](types.OpPenalty, args, nil,
		func(r *types.PenaltyRequest, vs *violations) {
			if len(r.Skills) > 0 && r.Type != types.PenaltyExp {
				vs.add("skills", "skills are only allowed for exp penalties")
			}
		},
		func(r *types.PenaltyRequest, vs *violations) {
			hasID, hasName := r.ItemID != nil, r.ItemName != ""
			if r.Type != types.PenaltyItem {
				if hasID || hasName {
					vs.add("item_id", "item_id and item_name are only allowed for item penalties")
				}
				return
			}
			switch {
			case !hasID && !hasName:
				vs.add("item_id", "one of item_id, item_name is required for item penalties")
			case hasID && hasName:
				vs.add("item_id", "provide only one of item_id, item_name")
			}
		},
	)
}

// Skill validates a skill create, edit or delete request.
func Skill(args map[string]any) (*types.SkillRequest, error) {
	return check(types.OpSkill, args,
		func(r *types.SkillRequest, vs *violations) bool {
			if !r.Delete {
				return true
			}
			return requireIdentifier(vs, "skill", identifier{"id", r.ID != nil})
		},
		func(r *types.SkillRequest, vs *violations) {
			if r.ID == nil && r.Content == "" {
				vs.add("content", "content is required when creating a skill")
			}
		},
	)
}

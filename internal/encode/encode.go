package encode

import (
	"errors"
	"fmt"

	"lifeupmcp/internal/logging"
	"lifeupmcp/internal/types"
)

// Command paths.
const (
	PathAddTask     = Scheme + "add_task"
	PathEditTask    = Scheme + "edit_task"
	PathDeleteTask  = Scheme + "delete_task"
	PathSubtask     = Scheme + "subtask"
	PathAchievement = Scheme + "achievement"
	PathAddItem     = Scheme + "add_item"
	PathItem        = Scheme + "item"
	PathPenalty     = Scheme + "penalty"
	PathSkill       = Scheme + "skill"
)

// ErrUnsupportedRequest is returned by Request for a value it has no builder for.
var ErrUnsupportedRequest = errors.New("no encoder for request type")

// Request encodes any validated request produced by the validate package.
func Request(req any) (Command, error) {
	switch r := req.(type) {
	case *types.TaskRequest:
		return Task(r)
	case *types.TaskEditRequest:
		return TaskEdit(r)
	case *types.TaskDeleteRequest:
		return TaskDelete(r)
	case *types.SubtaskRequest:
		return Subtask(r)
	case *types.AchievementCreateRequest:
		return AchievementCreate(r)
	case *types.AchievementUpdateRequest:
		return AchievementUpdate(r)
	case *types.AchievementDeleteRequest:
		return AchievementDelete(r)
	case *types.ShopItemCreateRequest:
		return ShopItemCreate(r)
	case *types.ShopItemEditRequest:
		return ShopItemEdit(r)
	case *types.PenaltyRequest:
		return Penalty(r)
	case *types.SkillRequest:
		return Skill(r)
	default:
		return Command{}, fmt.Errorf("%w: %T", ErrUnsupportedRequest, req)
	}
}

func finish(path string, q Query) (Command, error) {
	if err := q.Err(); err != nil {
		return Command{}, err
	}
	cmd := Command{Path: path, Query: q}
	logging.EncodeDebug("built %s with %d param(s)", path, len(q.params))
	return cmd, nil
}

// =============================================================================
// TASKS
// =============================================================================

// Task encodes a task creation. Subtasks are not part of the add_task command;
// they are sent afterwards with Subtask.
func Task(r *types.TaskRequest) (Command, error) {
	var q Query
	q.Add("todo", r.Name)
	q.Text("notes", r.Content)
	q.Int("exp", r.Exp)
	q.Ints("skills", r.SkillIDs)
	q.Int("coin", r.Coin)
	q.Int("coin_var", r.CoinVar)
	q.Int("category", r.CategoryID)
	q.Int64("deadline", r.Deadline)
	if r.TaskType != nil {
		t := int(*r.TaskType)
		q.Int("task_type", &t)
	}
	q.Int("target_times", r.TargetTimes)
	q.Bool("is_affect_shop_reward", r.IsAffectShopReward)
	q.Int("frequency", r.Frequency)
	q.Int("importance", r.Importance)
	q.Int("difficulty", r.Difficulty)
	q.Text("color", r.Color)
	q.Int("item_id", r.ItemID)
	q.Text("item_name", r.ItemName)
	q.Int("item_amount", r.ItemAmount)
	q.JSON("items", r.Items, len(r.Items))
	return finish(PathAddTask, q)
}

// TaskEdit encodes a partial task update: identification first, then only the
// supplied fields.
func TaskEdit(r *types.TaskEditRequest) (Command, error) {
	var q Query
	taskIdentity(&q, r.ID, r.GID, r.Name)
	q.TextPtr("todo", r.Todo)
	q.TextPtr("notes", r.Content)
	q.Adjust("exp", r.Exp, r.ExpSetType, "exp_set_type")
	q.Ints("skills", r.SkillIDs)
	q.Adjust("coin", r.Coin, r.CoinSetType, "coin_set_type")
	q.Int("coin_var", r.CoinVar)
	q.Int("category", r.CategoryID)
	q.Int64("deadline", r.Deadline)
	q.Text("color", r.Color)
	q.Bool("frozen", r.Frozen)
	return finish(PathEditTask, q)
}

// TaskDelete encodes a task deletion. The path itself marks the deletion.
func TaskDelete(r *types.TaskDeleteRequest) (Command, error) {
	var q Query
	taskIdentity(&q, r.ID, r.GID, r.Name)
	return finish(PathDeleteTask, q)
}

// Subtask encodes adding one subtask to an existing task.
func Subtask(r *types.SubtaskRequest) (Command, error) {
	var q Query
	q.Int("main_id", r.MainID)
	q.Int("main_gid", r.MainGID)
	q.Text("main_name", r.MainName)
	q.Add("todo", r.Name)
	q.Int("exp", r.Exp)
	q.Int("coin", r.Coin)
	q.Int("coin_var", r.CoinVar)
	q.Int("item_id", r.ItemID)
	q.Int("item_amount", r.ItemAmount)
	q.Int("order", r.Order)
	return finish(PathSubtask, q)
}

func taskIdentity(q *Query, id, gid *int, name string) {
	q.Int("id", id)
	q.Int("gid", gid)
	q.Text("name", name)
}

// =============================================================================
// ACHIEVEMENTS
// =============================================================================

// AchievementCreate encodes a new achievement.
func AchievementCreate(r *types.AchievementCreateRequest) (Command, error) {
	var q Query
	q.Add("name", r.Name)
	q.Int("category_id", r.CategoryID)
	q.Text("desc", r.Desc)
	q.JSON("conditions_json", r.Conditions, len(r.Conditions))
	q.Int("exp", r.Exp)
	q.Ints("skills", r.Skills)
	q.Int("coin", r.Coin)
	q.Int("coin_var", r.CoinVar)
	q.JSON("items", r.Items, len(r.Items))
	q.Bool("secret", r.Secret)
	q.Text("color", r.Color)
	q.Bool("unlocked", r.Unlocked)
	return finish(PathAchievement, q)
}

// AchievementUpdate encodes a partial achievement update keyed by edit_id.
func AchievementUpdate(r *types.AchievementUpdateRequest) (Command, error) {
	var q Query
	q.Int("edit_id", r.EditID)
	q.TextPtr("name", r.Name)
	q.Int("category_id", r.CategoryID)
	q.TextPtr("desc", r.Desc)
	q.JSON("conditions_json", r.Conditions, len(r.Conditions))
	q.Adjust("exp", r.Exp, r.ExpSetType, "exp_set_type")
	q.Ints("skills", r.Skills)
	q.Adjust("coin", r.Coin, r.CoinSetType, "coin_set_type")
	q.Int("coin_var", r.CoinVar)
	q.JSON("items", r.Items, len(r.Items))
	q.Bool("secret", r.Secret)
	q.Text("color", r.Color)
	q.Bool("unlocked", r.Unlocked)
	return finish(PathAchievement, q)
}

// AchievementDelete encodes an achievement deletion.
func AchievementDelete(r *types.AchievementDeleteRequest) (Command, error) {
	var q Query
	q.Int("edit_id", r.EditID)
	q.Flag("delete", true)
	return finish(PathAchievement, q)
}

// =============================================================================
// SHOP ITEMS
// =============================================================================

// ShopItemCreate encodes a new shop item.
func ShopItemCreate(r *types.ShopItemCreateRequest) (Command, error) {
	var q Query
	q.Add("name", r.Name)
	q.Text("desc", r.Desc)
	q.Text("icon", r.Icon)
	q.Int("price", r.Price)
	q.Text("action_text", r.ActionText)
	q.Bool("disable_purchase", r.DisablePurchase)
	q.Int("stock_number", r.StockNumber)
	q.Int("own_number", r.OwnNumber)
	q.Int("category", r.CategoryID)
	q.JSON("effects", r.Effects, len(r.Effects))
	q.JSON("purchase_limit", r.PurchaseLimit, len(r.PurchaseLimit))
	return finish(PathAddItem, q)
}

// ShopItemEdit encodes a shop item edit, or a deletion when Delete is set.
func ShopItemEdit(r *types.ShopItemEditRequest) (Command, error) {
	var q Query
	q.Int("id", r.ID)
	q.Text("name", r.Name)
	if r.Delete {
		q.Flag("delete", true)
		return finish(PathItem, q)
	}
	q.TextPtr("set_name", r.SetName)
	q.TextPtr("set_desc", r.SetDesc)
	q.TextPtr("set_icon", r.SetIcon)
	q.Adjust("set_price", r.SetPrice, r.SetPriceType, "set_price_type")
	q.Adjust("set_stock_number", r.SetStockNumber, r.SetStockNumberType, "set_stock_number_type")
	q.Adjust("set_own_number", r.SetOwnNumber, r.SetOwnNumberType, "set_own_number_type")
	q.TextPtr("set_action_text", r.SetActionText)
	q.Bool("disable_purchase", r.DisablePurchase)
	q.Int("category", r.CategoryID)
	q.JSON("effects", r.Effects, len(r.Effects))
	q.JSON("purchase_limit", r.PurchaseLimit, len(r.PurchaseLimit))
	return finish(PathItem, q)
}

// =============================================================================
// PENALTIES AND SKILLS
// =============================================================================

// Penalty encodes a penalty.
func Penalty(r *types.PenaltyRequest) (Command, error) {
	var q Query
	q.Add("type", r.Type)
	q.Add("content", r.Content)
	q.Add("number", fmt.Sprint(r.Number))
	q.Ints("skills", r.Skills)
	q.Int("item_id", r.ItemID)
	q.Text("item_name", r.ItemName)
	q.Bool("silent", r.Silent)
	return finish(PathPenalty, q)
}

// Skill encodes a skill create, edit or delete.
func Skill(r *types.SkillRequest) (Command, error) {
	var q Query
	q.Int("id", r.ID)
	if r.Delete {
		q.Flag("delete", true)
		return finish(PathSkill, q)
	}
	q.Text("content", r.Content)
	q.Text("desc", r.Desc)
	q.Text("icon", r.Icon)
	q.Text("color", r.Color)
	q.Int("exp", r.Exp)
	return finish(PathSkill, q)
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"lifeupmcp/internal/lifeup"
	"lifeupmcp/internal/types"
)

// Definitions returns every tool bound to svc. Register them through
// Registry.RegisterAll so the mode gate applies.
func Definitions(svc *lifeup.Service) []*Tool {
	return []*Tool{
		// Tasks
		{
			Name:        "create_task",
			Description: "Create a LifeUp task. Subtasks, if given, are added one by one after the task; the result lists which subtasks were created and which failed.",
			Access:      AccessCreate,
			Priority:    90,
			Schema: ToolSchema{
				Required: []string{"name"},
				Properties: merge(taskRewardProps(), map[string]Property{
					"name":                  str("Task name (1-200 characters)"),
					"content":               str("Task notes"),
					"task_type":             intEnum("0 normal, 1 count (needs target_times), 2 negative, 3 external API", 0, 1, 2, 3),
					"target_times":          integer("Completions required for a count task"),
					"is_affect_shop_reward": boolean("Whether completing the task affects shop rewards (count tasks)"),
					"frequency":             integer("Repeat frequency in days: 0 once, 1 daily, -1 unlimited"),
					"importance":            integer("Importance 1-4"),
					"difficulty":            integer("Difficulty 1-4"),
					"deadline":              integer("Deadline as epoch milliseconds"),
					"categoryId":            integer("Task category (list) id"),
					"color":                 str("Color as #RRGGBB"),
					"subtasks":              objects("Subtasks: [{name, exp, coin, coinVar, item_id, item_amount, order}]"),
				}),
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.CreateTask(ctx, args))
			},
		},
		{
			Name:        "add_subtask",
			Description: "Add a subtask to an existing task identified by main_id, main_gid or main_name.",
			Access:      AccessCreate,
			Schema: ToolSchema{
				Required: []string{"name"},
				Properties: map[string]Property{
					"main_id":     integer("Parent task id"),
					"main_gid":    integer("Parent task group id"),
					"main_name":   str("Parent task name"),
					"name":        str("Subtask name (1-200 characters)"),
					"exp":         integer("Experience reward"),
					"coin":        integer("Coin reward"),
					"coinVar":     integer("Random coin bonus range"),
					"item_id":     integer("Reward item id"),
					"item_amount": integer("Reward item amount (1-99, needs item_id)"),
					"order":       integer("Position within the parent"),
				},
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.AddSubtask(ctx, args))
			},
		},
		{
			Name:        "edit_task",
			Description: "Edit a task identified by id, gid or name. Only supplied fields change. exp and coin replace the value unless exp_set_type/coin_set_type is relative.",
			Access:      AccessEdit,
			Schema: ToolSchema{
				Properties: map[string]Property{
					"id":            integer("Task id"),
					"gid":           integer("Task group id"),
					"name":          str("Current task name"),
					"todo":          str("New task name"),
					"content":       str("New notes"),
					"exp":           integer("Experience value or signed adjustment"),
					"exp_set_type":  setType("exp"),
					"coin":          integer("Coin value or signed adjustment"),
					"coin_set_type": setType("coin"),
					"coinVar":       integer("Random coin bonus range"),
					"skillIds":      ints("Skill ids rewarded with exp"),
					"categoryId":    integer("Task category (list) id"),
					"deadline":      integer("Deadline as epoch milliseconds"),
					"color":         str("Color as #RRGGBB"),
					"frozen":        boolean("Freeze or unfreeze the task"),
				},
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.Mutate(ctx, types.OpTaskEdit, args))
			},
		},
		{
			Name:        "delete_task",
			Description: "Delete a task identified by id, gid or name.",
			Access:      AccessDelete,
			Schema: ToolSchema{
				Properties: map[string]Property{
					"id":   integer("Task id"),
					"gid":  integer("Task group id"),
					"name": str("Task name"),
				},
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.Mutate(ctx, types.OpTaskDelete, args))
			},
		},

		// Achievements
		{
			Name:        "create_achievement",
			Description: "Create an achievement in a category. Conditions and item rewards are lists of objects.",
			Access:      AccessCreate,
			Priority:    70,
			Schema: ToolSchema{
				Required:   []string{"name", "category_id"},
				Properties: achievementProps(),
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.Mutate(ctx, types.OpAchievementCreate, args))
			},
		},
		{
			Name:        "update_achievement",
			Description: "Update the achievement edit_id. Only supplied fields change. exp and coin replace the value unless exp_set_type/coin_set_type is relative.",
			Access:      AccessEdit,
			Schema: ToolSchema{
				Required: []string{"edit_id"},
				Properties: merge(achievementProps(), map[string]Property{
					"edit_id":       integer("Achievement id"),
					"exp_set_type":  setType("exp"),
					"coin_set_type": setType("coin"),
				}),
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.Mutate(ctx, types.OpAchievementUpdate, args))
			},
		},
		{
			Name:        "delete_achievement",
			Description: "Delete the achievement edit_id.",
			Access:      AccessDelete,
			Schema: ToolSchema{
				Required:   []string{"edit_id"},
				Properties: map[string]Property{"edit_id": integer("Achievement id")},
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.Mutate(ctx, types.OpAchievementDelete, args))
			},
		},

		// Shop
		{
			Name:        "create_shop_item",
			Description: "Add an item to the LifeUp shop.",
			Access:      AccessCreate,
			Schema: ToolSchema{
				Required: []string{"name"},
				Properties: map[string]Property{
					"name":             str("Item name (1-100 characters)"),
					"desc":             str("Description"),
					"icon":             str("Icon name or URL"),
					"price":            integer("Price in coins"),
					"action_text":      str("Label of the use button"),
					"disable_purchase": boolean("Hide the buy button"),
					"stock_number":     integer("Stock, -1 for unlimited"),
					"own_number":       integer("Amount already owned"),
					"category_id":      integer("Shop category id"),
					"effects":          objects("Use effects: [{type, info}]"),
					"purchase_limit":   objects("Purchase limits: [{type: daily|total, value}]"),
				},
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.Mutate(ctx, types.OpShopItemCreate, args))
			},
		},
		{
			Name:        "edit_shop_item",
			Description: "Edit a shop item identified by id or name. set_price, set_stock_number and set_own_number replace the value unless their *_type is relative.",
			Access:      AccessEdit,
			Schema: ToolSchema{
				Properties: map[string]Property{
					"id":                    integer("Item id"),
					"name":                  str("Current item name"),
					"set_name":              str("New name"),
					"set_desc":              str("New description"),
					"set_icon":              str("New icon"),
					"set_price":             integer("Price or signed adjustment"),
					"set_price_type":        setType("set_price"),
					"set_stock_number":      integer("Stock or signed adjustment"),
					"set_stock_number_type": setType("set_stock_number"),
					"set_own_number":        integer("Owned amount or signed adjustment"),
					"set_own_number_type":   setType("set_own_number"),
					"set_action_text":       str("New use button label"),
					"disable_purchase":      boolean("Hide the buy button"),
					"category_id":           integer("Shop category id"),
					"effects":               objects("Use effects: [{type, info}]"),
					"purchase_limit":        objects("Purchase limits: [{type: daily|total, value}]"),
				},
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.EditShopItem(ctx, args))
			},
		},
		{
			Name:        "delete_shop_item",
			Description: "Delete a shop item identified by id or name.",
			Access:      AccessDelete,
			Schema: ToolSchema{
				Properties: map[string]Property{
					"id":   integer("Item id"),
					"name": str("Item name"),
				},
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.DeleteShopItem(ctx, args))
			},
		},

		// Penalties and skills
		{
			Name:        "apply_penalty",
			Description: "Deduct coins, exp or items. exp penalties need skills; item penalties need item_id or item_name.",
			Access:      AccessCreate,
			Schema: ToolSchema{
				Required: []string{"type", "content", "number"},
				Properties: map[string]Property{
					"type":      strEnum("Penalty kind", types.PenaltyCoin, types.PenaltyExp, types.PenaltyItem),
					"content":   str("Reason shown to the user"),
					"number":    integer("Amount to deduct"),
					"skills":    ints("Skill ids losing exp"),
					"item_id":   integer("Item id to remove"),
					"item_name": str("Item name to remove"),
					"silent":    boolean("Suppress the in-app notification"),
				},
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.Mutate(ctx, types.OpPenalty, args))
			},
		},
		{
			Name:        "create_skill",
			Description: "Create a skill (attribute).",
			Access:      AccessCreate,
			Schema: ToolSchema{
				Required:   []string{"content"},
				Properties: skillProps(),
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.CreateSkill(ctx, args))
			},
		},
		{
			Name:        "edit_skill",
			Description: "Edit the skill id. exp is a signed adjustment.",
			Access:      AccessEdit,
			Schema: ToolSchema{
				Required:   []string{"id"},
				Properties: merge(skillProps(), map[string]Property{"id": integer("Skill id")}),
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.EditSkill(ctx, args))
			},
		},
		{
			Name:        "delete_skill",
			Description: "Delete the skill id.",
			Access:      AccessDelete,
			Schema: ToolSchema{
				Required:   []string{"id"},
				Properties: map[string]Property{"id": integer("Skill id")},
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				return render(svc.DeleteSkill(ctx, args))
			},
		},

		// Reads
		{
			Name:        "list_tasks",
			Description: "List tasks.",
			Access:      AccessRead,
			Priority:    60,
			Execute: func(ctx context.Context, _ map[string]any) (string, error) {
				return render(svc.Reader().Tasks(ctx))
			},
		},
		{
			Name:        "list_achievement_categories",
			Description: "List achievement categories.",
			Access:      AccessRead,
			Execute: func(ctx context.Context, _ map[string]any) (string, error) {
				return render(svc.Reader().AchievementCategories(ctx))
			},
		},
		{
			Name:        "list_achievements",
			Description: "List achievements, optionally only those of category_id.",
			Access:      AccessRead,
			Schema: ToolSchema{
				Properties: map[string]Property{"category_id": integer("Achievement category id")},
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				id, err := intArg(args, "category_id")
				if err != nil {
					return "", err
				}
				if id != nil {
					return render(svc.Reader().Achievements(ctx, *id))
				}
				return render(svc.Reader().AllAchievements(ctx))
			},
		},
		{
			Name:        "list_shop_items",
			Description: "List shop items.",
			Access:      AccessRead,
			Execute: func(ctx context.Context, _ map[string]any) (string, error) {
				return render(svc.Reader().ShopItems(ctx))
			},
		},
		{
			Name:        "list_skills",
			Description: "List skills.",
			Access:      AccessRead,
			Execute: func(ctx context.Context, _ map[string]any) (string, error) {
				return render(svc.Reader().Skills(ctx))
			},
		},
		{
			Name:        "get_user_info",
			Description: "Return LifeUp app and user information.",
			Access:      AccessRead,
			Execute: func(ctx context.Context, _ map[string]any) (string, error) {
				return render(svc.Reader().Info(ctx))
			},
		},
		{
			Name:        "match_task_to_achievements",
			Description: "Rank existing achievements by how well they fit a task name. Returns up to five matches with a 0-100 confidence and the reasons.",
			Access:      AccessRead,
			Priority:    80,
			Schema: ToolSchema{
				Required: []string{"task_name"},
				Properties: map[string]Property{
					"task_name":   str("Task name to match"),
					"category_id": integer("Prefer achievements of this category"),
				},
			},
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				name, _ := args["task_name"].(string)
				category, err := intArg(args, "category_id")
				if err != nil {
					return "", err
				}
				return render(svc.MatchAchievements(ctx, name, category))
			},
		},
	}
}

func taskRewardProps() map[string]Property {
	return map[string]Property{
		"exp":         integer("Experience reward (needs skillIds)"),
		"skillIds":    ints("Skill ids rewarded with exp"),
		"coin":        integer("Coin reward"),
		"coinVar":     integer("Random coin bonus range"),
		"item_id":     integer("Reward item id"),
		"item_name":   str("Reward item name"),
		"item_amount": integer("Reward item amount (1-99, needs item_id or item_name)"),
		"items":       objects("Item rewards: [{item_id, amount}]"),
	}
}

func achievementProps() map[string]Property {
	return map[string]Property{
		"name":        str("Achievement name (1-100 characters)"),
		"category_id": integer("Achievement category id"),
		"desc":        str("Description"),
		"conditions":  objects("Unlock conditions: [{type, target, related_id}]"),
		"exp":         integer("Experience reward"),
		"coin":        integer("Coin reward"),
		"coin_var":    integer("Random coin bonus range"),
		"skills":      ints("Skill ids rewarded with exp"),
		"items":       objects("Item rewards: [{item_id, amount}]"),
		"secret":      boolean("Hide until unlocked"),
		"color":       str("Color as #RRGGBB"),
		"unlocked":    boolean("Mark as unlocked"),
	}
}

func skillProps() map[string]Property {
	return map[string]Property{
		"content": str("Skill name (up to 50 characters)"),
		"desc":    str("Description"),
		"icon":    str("Emoji icon"),
		"color":   str("Color as #RRGGBB"),
		"exp":     integer("Experience adjustment"),
	}
}

func str(desc string) Property     { return Property{Type: "string", Description: desc} }
func integer(desc string) Property { return Property{Type: "integer", Description: desc} }
func boolean(desc string) Property { return Property{Type: "boolean", Description: desc} }

func ints(desc string) Property {
	return Property{Type: "array", Description: desc, Items: &PropertyItems{Type: "integer"}}
}

func objects(desc string) Property {
	return Property{Type: "array", Description: desc, Items: &PropertyItems{Type: "object"}}
}

func strEnum(desc string, values ...string) Property {
	p := str(desc)
	for _, v := range values {
		p.Enum = append(p.Enum, v)
	}
	return p
}

func intEnum(desc string, values ...int) Property {
	p := integer(desc)
	for _, v := range values {
		p.Enum = append(p.Enum, v)
	}
	return p
}

func setType(field string) Property {
	return strEnum(fmt.Sprintf("How %s applies: absolute (default) replaces, relative adds", field),
		string(types.SetAbsolute), string(types.SetRelative))
}

func merge(base, extra map[string]Property) map[string]Property {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// intArg reads an optional integer argument. JSON numbers arrive as float64.
func intArg(args map[string]any, key string) (*int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case int:
		return &n, nil
	case int64:
		i := int(n)
		return &i, nil
	case float64:
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgType, key)
		}
		i := int(n)
		return &i, nil
	}
	return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgType, key)
}

// render marshals a result for the agent.
func render(v any, err error) (string, error) {
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(out), nil
}

// Package types holds the request and record shapes exchanged with LifeUp.
// Optional numeric fields are pointers so an absent value stays distinct from zero;
// partial updates depend on that distinction.
package types

// SetType is the mutation semantics marker sent next to an adjustable numeric field.
type SetType string

const (
	SetAbsolute SetType = "absolute" // replace the remote value
	SetRelative SetType = "relative" // add the (signed) value to the remote value
)

// DefaultSetType applies when a request carries a value but no *_set_type.
const DefaultSetType = SetAbsolute

// OrDefault returns t, or DefaultSetType when t is unset.
func (t SetType) OrDefault() SetType {
	if t == "" {
		return DefaultSetType
	}
	return t
}

// TaskType enumerates LifeUp task kinds.
type TaskType int

const (
	TaskNormal   TaskType = 0
	TaskCount    TaskType = 1
	TaskNegative TaskType = 2
	TaskExternal TaskType = 3
)

// ItemReward is one entry of an item reward list.
type ItemReward struct {
	ItemID int `json:"item_id" validate:"gt=0"`
	Amount int `json:"amount" validate:"gte=1,lte=99"`
}

// =============================================================================
// TASKS
// =============================================================================

// TaskRequest creates a task, optionally followed by a batch of subtasks.
type TaskRequest struct {
	Name               string              `json:"name" validate:"required,min=1,max=200"`
	Content            string              `json:"content,omitempty" validate:"max=1000"`
	Exp                *int                `json:"exp,omitempty" validate:"omitempty,gte=0,lte=99999"`
	Coin               *int                `json:"coin,omitempty" validate:"omitempty,gte=0,lte=999999"`
	CoinVar            *int                `json:"coinVar,omitempty" validate:"omitempty,gte=0,lte=999999"`
	CategoryID         *int                `json:"categoryId,omitempty" validate:"omitempty,gte=0"`
	Deadline           *int64              `json:"deadline,omitempty" validate:"omitempty,gt=0"`
	SkillIDs           []int               `json:"skillIds,omitempty" validate:"omitempty,max=20,dive,gt=0"`
	TaskType           *TaskType           `json:"task_type,omitempty" validate:"omitempty,oneof=0 1 2 3"`
	TargetTimes        *int                `json:"target_times,omitempty" validate:"omitempty,gt=0"`
	IsAffectShopReward *bool               `json:"is_affect_shop_reward,omitempty"`
	Frequency          *int                `json:"frequency,omitempty" validate:"omitempty,gte=-1,lte=365"`
	Importance         *int                `json:"importance,omitempty" validate:"omitempty,gte=1,lte=4"`
	Difficulty         *int                `json:"difficulty,omitempty" validate:"omitempty,gte=1,lte=4"`
	Color              string              `json:"color,omitempty" validate:"omitempty,rrggbb"`
	ItemID             *int                `json:"item_id,omitempty" validate:"omitempty,gt=0"`
	ItemName           string              `json:"item_name,omitempty" validate:"max=100"`
	ItemAmount         *int                `json:"item_amount,omitempty" validate:"omitempty,gte=1,lte=99"`
	Items              []ItemReward        `json:"items,omitempty" validate:"omitempty,max=20,dive"`
	Subtasks           []SubtaskDefinition `json:"subtasks,omitempty" validate:"omitempty,max=50,dive"`
}

// SubtaskDefinition is a subtask to attach to a parent task. Subtask exp is
// credited to the parent task's skills.
type SubtaskDefinition struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Exp        *int   `json:"exp,omitempty" validate:"omitempty,gte=0,lte=99999"`
	Coin       *int   `json:"coin,omitempty" validate:"omitempty,gte=0,lte=999999"`
	CoinVar    *int   `json:"coinVar,omitempty" validate:"omitempty,gte=0,lte=999999"`
	ItemID     *int   `json:"item_id,omitempty" validate:"omitempty,gt=0"`
	ItemAmount *int   `json:"item_amount,omitempty" validate:"omitempty,gte=1,lte=99"`
	Order      *int   `json:"order,omitempty" validate:"omitempty,gte=0"`
}

// SubtaskRequest adds one subtask to an existing task identified by main_id,
// main_gid or a fuzzy main_name.
type SubtaskRequest struct {
	MainID     *int   `json:"main_id,omitempty" validate:"omitempty,gt=0"`
	MainGID    *int   `json:"main_gid,omitempty" validate:"omitempty,gt=0"`
	MainName   string `json:"main_name,omitempty" validate:"max=200"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Exp        *int   `json:"exp,omitempty" validate:"omitempty,gte=0,lte=99999"`
	Coin       *int   `json:"coin,omitempty" validate:"omitempty,gte=0,lte=999999"`
	CoinVar    *int   `json:"coinVar,omitempty" validate:"omitempty,gte=0,lte=999999"`
	ItemID     *int   `json:"item_id,omitempty" validate:"omitempty,gt=0"`
	ItemAmount *int   `json:"item_amount,omitempty" validate:"omitempty,gte=1,lte=99"`
	Order      *int   `json:"order,omitempty" validate:"omitempty,gte=0"`
}

// Definition returns the subtask fields without the parent identification.
func (r *SubtaskRequest) Definition() SubtaskDefinition {
	return SubtaskDefinition{
		Name:       r.Name,
		Exp:        r.Exp,
		Coin:       r.Coin,
		CoinVar:    r.CoinVar,
		ItemID:     r.ItemID,
		ItemAmount: r.ItemAmount,
		Order:      r.Order,
	}
}

// TaskEditRequest edits an existing task. Only supplied fields are sent.
type TaskEditRequest struct {
	ID          *int    `json:"id,omitempty" validate:"omitempty,gt=0"`
	GID         *int    `json:"gid,omitempty" validate:"omitempty,gt=0"`
	Name        string  `json:"name,omitempty" validate:"max=200"`
	Todo        *string `json:"todo,omitempty" validate:"omitempty,min=1,max=200"`
	Content     *string `json:"content,omitempty" validate:"omitempty,max=1000"`
	Exp         *int    `json:"exp,omitempty" validate:"omitempty,gte=-99999,lte=99999"`
	ExpSetType  SetType `json:"exp_set_type,omitempty" validate:"omitempty,oneof=absolute relative"`
	Coin        *int    `json:"coin,omitempty" validate:"omitempty,gte=-999999,lte=999999"`
	CoinSetType SetType `json:"coin_set_type,omitempty" validate:"omitempty,oneof=absolute relative"`
	CoinVar     *int    `json:"coinVar,omitempty" validate:"omitempty,gte=0,lte=999999"`
	SkillIDs    []int   `json:"skillIds,omitempty" validate:"omitempty,max=20,dive,gt=0"`
	CategoryID  *int    `json:"categoryId,omitempty" validate:"omitempty,gte=0"`
	Deadline    *int64  `json:"deadline,omitempty" validate:"omitempty,gt=0"`
	Color       string  `json:"color,omitempty" validate:"omitempty,rrggbb"`
	Frozen      *bool   `json:"frozen,omitempty"`
}

// TaskDeleteRequest deletes a task.
type TaskDeleteRequest struct {
	ID   *int   `json:"id,omitempty" validate:"omitempty,gt=0"`
	GID  *int   `json:"gid,omitempty" validate:"omitempty,gt=0"`
	Name string `json:"name,omitempty" validate:"max=200"`
}

// =============================================================================
// ACHIEVEMENTS
// =============================================================================

// AchievementCondition is one unlock condition of an achievement.
type AchievementCondition struct {
	Type      int  `json:"type" validate:"gte=0,lte=20"`
	Target    int  `json:"target" validate:"gt=0"`
	RelatedID *int `json:"related_id,omitempty" validate:"omitempty,gt=0"`
}

// AchievementCreateRequest creates an achievement inside a category.
type AchievementCreateRequest struct {
	Name       string                 `json:"name" validate:"required,min=1,max=100"`
	CategoryID *int                   `json:"category_id" validate:"required,gt=0"`
	Desc       string                 `json:"desc,omitempty" validate:"max=500"`
	Conditions []AchievementCondition `json:"conditions,omitempty" validate:"omitempty,max=20,dive"`
	Exp        *int                   `json:"exp,omitempty" validate:"omitempty,gte=0,lte=99999"`
	Coin       *int                   `json:"coin,omitempty" validate:"omitempty,gte=0,lte=999999"`
	CoinVar    *int                   `json:"coin_var,omitempty" validate:"omitempty,gte=0,lte=999999"`
	Skills     []int                  `json:"skills,omitempty" validate:"omitempty,max=20,dive,gt=0"`
	Items      []ItemReward           `json:"items,omitempty" validate:"omitempty,max=20,dive"`
	Secret     *bool                  `json:"secret,omitempty"`
	Color      string                 `json:"color,omitempty" validate:"omitempty,rrggbb"`
	Unlocked   *bool                  `json:"unlocked,omitempty"`
}

// AchievementUpdateRequest edits the achievement identified by EditID.
type AchievementUpdateRequest struct {
	EditID      *int                   `json:"edit_id,omitempty" validate:"omitempty,gt=0"`
	Name        *string                `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	CategoryID  *int                   `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	Desc        *string                `json:"desc,omitempty" validate:"omitempty,max=500"`
	Conditions  []AchievementCondition `json:"conditions,omitempty" validate:"omitempty,max=20,dive"`
	Exp         *int                   `json:"exp,omitempty" validate:"omitempty,gte=-99999,lte=99999"`
	ExpSetType  SetType                `json:"exp_set_type,omitempty" validate:"omitempty,oneof=absolute relative"`
	Coin        *int                   `json:"coin,omitempty" validate:"omitempty,gte=-999999,lte=999999"`
	CoinSetType SetType                `json:"coin_set_type,omitempty" validate:"omitempty,oneof=absolute relative"`
	CoinVar     *int                   `json:"coin_var,omitempty" validate:"omitempty,gte=0,lte=999999"`
	Skills      []int                  `json:"skills,omitempty" validate:"omitempty,max=20,dive,gt=0"`
	Items       []ItemReward           `json:"items,omitempty" validate:"omitempty,max=20,dive"`
	Secret      *bool                  `json:"secret,omitempty"`
	Color       string                 `json:"color,omitempty" validate:"omitempty,rrggbb"`
	Unlocked    *bool                  `json:"unlocked,omitempty"`
}

// AchievementDeleteRequest deletes the achievement identified by EditID.
type AchievementDeleteRequest struct {
	EditID *int `json:"edit_id,omitempty" validate:"omitempty,gt=0"`
}

// =============================================================================
// SHOP ITEMS
// =============================================================================

// ItemEffect is a shop item use effect. Info is passed through as-is.
type ItemEffect struct {
	Type int            `json:"type" validate:"gte=0,lte=9"`
	Info map[string]any `json:"info,omitempty"`
}

// PurchaseLimit caps how often an item can be bought.
type PurchaseLimit struct {
	Type  string `json:"type" validate:"required,oneof=daily total"`
	Value int    `json:"value" validate:"gt=0"`
}

// ShopItemCreateRequest adds a shop item.
type ShopItemCreateRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=100"`
	Desc            string          `json:"desc,omitempty" validate:"max=500"`
	Icon            string          `json:"icon,omitempty" validate:"max=200"`
	Price           *int            `json:"price,omitempty" validate:"omitempty,gte=0,lte=999999"`
	ActionText      string          `json:"action_text,omitempty" validate:"max=50"`
	DisablePurchase *bool           `json:"disable_purchase,omitempty"`
	StockNumber     *int            `json:"stock_number,omitempty" validate:"omitempty,gte=-1,lte=999999"`
	OwnNumber       *int            `json:"own_number,omitempty" validate:"omitempty,gte=0,lte=999999"`
	CategoryID      *int            `json:"category_id,omitempty" validate:"omitempty,gte=0"`
	Effects         []ItemEffect    `json:"effects,omitempty" validate:"omitempty,max=20,dive"`
	PurchaseLimit   []PurchaseLimit `json:"purchase_limit,omitempty" validate:"omitempty,max=2,dive"`
}

// ShopItemEditRequest edits (or deletes) the item identified by ID or fuzzy Name.
type ShopItemEditRequest struct {
	ID                 *int            `json:"id,omitempty" validate:"omitempty,gt=0"`
	Name               string          `json:"name,omitempty" validate:"max=100"`
	SetName            *string         `json:"set_name,omitempty" validate:"omitempty,min=1,max=100"`
	SetDesc            *string         `json:"set_desc,omitempty" validate:"omitempty,max=500"`
	SetIcon            *string         `json:"set_icon,omitempty" validate:"omitempty,max=200"`
	SetPrice           *int            `json:"set_price,omitempty" validate:"omitempty,gte=-999999,lte=999999"`
	SetPriceType       SetType         `json:"set_price_type,omitempty" validate:"omitempty,oneof=absolute relative"`
	SetStockNumber     *int            `json:"set_stock_number,omitempty" validate:"omitempty,gte=-999999,lte=999999"`
	SetStockNumberType SetType         `json:"set_stock_number_type,omitempty" validate:"omitempty,oneof=absolute relative"`
	SetOwnNumber       *int            `json:"set_own_number,omitempty" validate:"omitempty,gte=-999999,lte=999999"`
	SetOwnNumberType   SetType         `json:"set_own_number_type,omitempty" validate:"omitempty,oneof=absolute relative"`
	SetActionText      *string         `json:"set_action_text,omitempty" validate:"omitempty,max=50"`
	DisablePurchase    *bool           `json:"disable_purchase,omitempty"`
	CategoryID         *int            `json:"category_id,omitempty" validate:"omitempty,gte=0"`
	Effects            []ItemEffect    `json:"effects,omitempty" validate:"omitempty,max=20,dive"`
	PurchaseLimit      []PurchaseLimit `json:"purchase_limit,omitempty" validate:"omitempty,max=2,dive"`
	Delete             bool            `json:"delete,omitempty"`
}

// =============================================================================
// PENALTIES AND SKILLS
// =============================================================================

// Penalty kinds.
const (
	PenaltyCoin = "coin"
	PenaltyExp  = "exp"
	PenaltyItem = "item"
)

// PenaltyRequest deducts coins, exp or items.
type PenaltyRequest struct {
	Type     string `json:"type" validate:"required,oneof=coin exp item"`
	Content  string `json:"content" validate:"required,min=1,max=200"`
	Number   int    `json:"number" validate:"gt=0,lte=999999"`
	Skills   []int  `json:"skills,omitempty" validate:"omitempty,max=20,dive,gt=0"`
	ItemID   *int   `json:"item_id,omitempty" validate:"omitempty,gt=0"`
	ItemName string `json:"item_name,omitempty" validate:"max=100"`
	Silent   *bool  `json:"silent,omitempty"`
}

// SkillRequest creates a skill (no ID), edits one (ID) or deletes one (ID + Delete).
type SkillRequest struct {
	ID      *int   `json:"id,omitempty" validate:"omitempty,gt=0"`
	Content string `json:"content,omitempty" validate:"max=50"`
	Desc    string `json:"desc,omitempty" validate:"max=500"`
	Icon    string `json:"icon,omitempty" validate:"max=10"`
	Color   string `json:"color,omitempty" validate:"omitempty,rrggbb"`
	Exp     *int   `json:"exp,omitempty" validate:"omitempty,gte=-99999,lte=99999"`
	Delete  bool   `json:"delete,omitempty"`
}

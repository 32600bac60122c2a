package types

// Records returned by the LifeUp Cloud read endpoints. Only the fields this
// server consumes are declared; unknown fields are ignored on decode.

// Task is a task as listed by GET /tasks.
type Task struct {
	ID          int    `json:"id"`
	GID         int    `json:"gid,omitempty"`
	Name        string `json:"name"`
	Notes       string `json:"notes,omitempty"`
	Status      int    `json:"status"`
	CategoryID  int    `json:"category_id"`
	Exp         int    `json:"exp"`
	Coin        int    `json:"coin"`
	Deadline    int64  `json:"deadline,omitempty"`
	SkillIDs    []int  `json:"skill_ids,omitempty"`
	TaskType    int    `json:"task_type"`
	TargetTimes int    `json:"target_times,omitempty"`
}

// AchievementCategory groups achievements.
type AchievementCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc,omitempty"`
}

// Achievement is an achievement as listed by GET /achievements/{category}.
type Achievement struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Desc       string `json:"desc,omitempty"`
	CategoryID int    `json:"category_id"`
	Secret     bool   `json:"secret,omitempty"`
	Unlocked   bool   `json:"unlocked,omitempty"`
	Exp        int    `json:"exp,omitempty"`
	Coin       int    `json:"coin,omitempty"`
}

// ShopItem is a shop item as listed by GET /items.
type ShopItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Desc        string `json:"desc,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Price       int    `json:"price"`
	StockNumber int    `json:"stock_number"`
	OwnNumber   int    `json:"own_number"`
	CategoryID  int    `json:"category_id,omitempty"`
}

// Skill is a skill (attribute) as listed by GET /skills.
type Skill struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Desc    string `json:"desc,omitempty"`
	Icon    string `json:"icon,omitempty"`
	Color   string `json:"color,omitempty"`
	Level   int    `json:"level"`
	Exp     int    `json:"exp"`
	Enabled bool   `json:"enabled,omitempty"`
}

// UserInfo is the GET /info payload; it doubles as the health probe.
type UserInfo struct {
	AppVersion     string `json:"appVersion,omitempty"`
	AppVersionCode int    `json:"appVersionCode,omitempty"`
	APIVersion     int    `json:"apiVersion,omitempty"`
	DeviceName     string `json:"deviceName,omitempty"`
	Coin           int64  `json:"coin,omitempty"`
}

package types

// Operation names one validated, encodable request kind. It is the discriminator
// the validation engine decodes on and the encoder dispatches on.
type Operation string

const (
	OpTaskCreate        Operation = "task.create"
	OpTaskEdit          Operation = "task.edit"
	OpTaskDelete        Operation = "task.delete"
	OpSubtaskCreate     Operation = "subtask.create"
	OpAchievementCreate Operation = "achievement.create"
	OpAchievementUpdate Operation = "achievement.update"
	OpAchievementDelete Operation = "achievement.delete"
	OpShopItemCreate    Operation = "shop_item.create"
	OpShopItemEdit      Operation = "shop_item.edit"
	OpPenalty           Operation = "penalty.apply"
	OpSkill             Operation = "skill.save"
)

// Operations lists every operation in a stable order.
var Operations = []Operation{
	OpTaskCreate,
	OpTaskEdit,
	OpTaskDelete,
	OpSubtaskCreate,
	OpAchievementCreate,
	OpAchievementUpdate,
	OpAchievementDelete,
	OpShopItemCreate,
	OpShopItemEdit,
	OpPenalty,
	OpSkill,
}

// Valid reports whether op is a known operation.
func (op Operation) Valid() bool {
	for _, known := range Operations {
		if op == known {
			return true
		}
	}
	return false
}

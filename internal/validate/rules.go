package validate

import (
	"strings"

	"lifeupmcp/internal/types"
)

// Cross-field rules. Each runs after the per-field checks and appends to vs.

// identifier is one candidate field of an identification disjunction.
type identifier struct {
	field   string
	present bool
}

// requireIdentifier fails unless at least one candidate is present.
func requireIdentifier(vs *violations, entity string, candidates ...identifier) bool {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.present {
			return true
		}
		names = append(names, c.field)
	}
	field := candidates[0].field
	if len(candidates) == 1 {
		vs.add(field, "%s is required to identify the %s", field, entity)
		return false
	}
	vs.add(field, "one of %s is required to identify the %s", strings.Join(names, ", "), entity)
	return false
}

// requireSkillsForExp enforces that an exp reward names the skills receiving it.
// The violation is attached to the skill group, not to exp.
func requireSkillsForExp(vs *violations, exp *int, skills []int, group string) {
	if exp == nil || len(skills) > 0 {
		return
	}
	vs.add(group, "%s must list at least one skill when exp is set", group)
}

// requireTargetForCount couples task_type and target_times. It only fires when
// task_type is present.
func requireTargetForCount(vs *violations, taskType *types.TaskType, target *int) {
	if taskType == nil {
		return
	}
	if *taskType == types.TaskCount {
		if target == nil && !vs.has("target_times") {
			vs.add("target_times", "target_times is required and must be positive when task_type is 1 (count)")
		}
		return
	}
	if target != nil {
		vs.add("target_times", "target_times is only allowed when task_type is 1 (count)")
	}
}

// checkAdjustment validates a numeric field paired with a *_set_type marker.
// An absolute value must not go below floor; a relative one is a signed delta.
func checkAdjustment(vs *violations, value *int, setType types.SetType, valueField, typeField string, floor int) {
	if value == nil {
		if setType != "" {
			vs.add(typeField, "%s requires %s", typeField, valueField)
		}
		return
	}
	if setType.OrDefault() == types.SetAbsolute && *value < floor {
		vs.add(valueField, "%s must be at least %d when %s is absolute", valueField, floor, typeField)
	}
}

// requireItemForAmount rejects an item amount that has no item to apply to.
func requireItemForAmount(vs *violations, amount *int, itemID *int, itemName string) {
	if amount != nil && itemID == nil && itemName == "" {
		vs.add("item_amount", "item_amount requires item_id or item_name")
	}
}

package lifeup

import (
	"context"

	"lifeupmcp/internal/types"
	"lifeupmcp/internal/validate"
)

// Skills share one command path; the presence of id and the delete flag pick
// the action. These helpers pin the action so a create can never edit.

// CreateSkill creates a skill. id must not be supplied.
func (s *Service) CreateSkill(ctx context.Context, args map[string]any) (*MutationResult, error) {
	if _, ok := args["id"]; ok {
		return nil, skillViolation("id", "id must not be set when creating a skill")
	}
	return s.Mutate(ctx, types.OpSkill, without(args, "delete"))
}

// EditSkill edits the skill identified by id.
func (s *Service) EditSkill(ctx context.Context, args map[string]any) (*MutationResult, error) {
	if _, ok := args["id"]; !ok {
		return nil, skillViolation("id", "id is required to identify the skill")
	}
	return s.Mutate(ctx, types.OpSkill, without(args, "delete"))
}

// DeleteSkill deletes the skill identified by id.
func (s *Service) DeleteSkill(ctx context.Context, args map[string]any) (*MutationResult, error) {
	target := map[string]any{"delete": true}
	if id, ok := args["id"]; ok {
		target["id"] = id
	}
	return s.Mutate(ctx, types.OpSkill, target)
}

func skillViolation(field, message string) error {
	return &validate.Error{
		Operation:  types.OpSkill,
		Violations: []validate.Violation{{Field: field, Message: message}},
	}
}

// without returns a copy of args minus key.
func without(args map[string]any, key string) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		if k != key {
			out[k] = v
		}
	}
	return out
}

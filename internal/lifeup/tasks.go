package lifeup

import (
	"context"
	"encoding/json"
	"time"

	"lifeupmcp/internal/apierr"
	"lifeupmcp/internal/logging"
	"lifeupmcp/internal/types"
	"lifeupmcp/internal/validate"
)

// TaskResult is the outcome of creating a task and its subtasks.
type TaskResult struct {
	MutationResult
	TaskID   *int          `json:"task_id,omitempty"`
	Subtasks *SubtaskBatch `json:"subtasks,omitempty"`
}

// SubtaskBatch reports every subtask attempt. A failed subtask never hides the
// ones that were created.
type SubtaskBatch struct {
	Created []SubtaskOutcome `json:"created"`
	Failed  []SubtaskOutcome `json:"failed"`
}

// SubtaskOutcome is one subtask attempt.
type SubtaskOutcome struct {
	Index int         `json:"index"`
	Name  string      `json:"name"`
	Code  apierr.Code `json:"code,omitempty"`
	Error string      `json:"error,omitempty"`
}

// CreateTask creates a task, then its subtasks one at a time, pausing before
// each subtask call. Subtask failures are collected, not returned as an error.
func (s *Service) CreateTask(ctx context.Context, args map[string]any) (*TaskResult, error) {
	req, err := validate.TaskCreate(args)
	if err != nil {
		return nil, err
	}

	parent, err := s.run(ctx, types.OpTaskCreate, req)
	if err != nil {
		return nil, err
	}
	result := &TaskResult{MutationResult: *parent, TaskID: taskID(parent.Data)}
	if len(req.Subtasks) == 0 {
		return result, nil
	}

	batch := &SubtaskBatch{Created: []SubtaskOutcome{}, Failed: []SubtaskOutcome{}}
	for i, def := range req.Subtasks {
		outcome := SubtaskOutcome{Index: i, Name: def.Name}

		if err := s.pause(ctx); err != nil {
			outcome.Code, outcome.Error = apierr.CodeRequestTimeout, "the batch was cancelled before this subtask was sent"
			batch.Failed = append(batch.Failed, outcome)
			continue
		}

		sub := subtaskFor(req, result.TaskID, def)
		if _, err := s.run(ctx, types.OpSubtaskCreate, sub); err != nil {
			outcome.Code, outcome.Error = failure(err)
			batch.Failed = append(batch.Failed, outcome)
			logging.ToolsDebug("subtask %d (%s) failed: %v", i, def.Name, err)
			continue
		}
		batch.Created = append(batch.Created, outcome)
	}
	result.Subtasks = batch
	logging.Tools("task %q created with %d/%d subtask(s)", req.Name, len(batch.Created), len(req.Subtasks))
	return result, nil
}

// AddSubtask adds one subtask to an existing task.
func (s *Service) AddSubtask(ctx context.Context, args map[string]any) (*MutationResult, error) {
	return s.Mutate(ctx, types.OpSubtaskCreate, args)
}

// subtaskFor targets the new task by id when LifeUp returned one, otherwise by
// its name.
func subtaskFor(parent *types.TaskRequest, id *int, def types.SubtaskDefinition) *types.SubtaskRequest {
	sub := &types.SubtaskRequest{
		Name:       def.Name,
		Exp:        def.Exp,
		Coin:       def.Coin,
		CoinVar:    def.CoinVar,
		ItemID:     def.ItemID,
		ItemAmount: def.ItemAmount,
		Order:      def.Order,
	}
	if id != nil {
		sub.MainID = id
	} else {
		sub.MainName = parent.Name
	}
	return sub
}

func (s *Service) pause(ctx context.Context) error {
	if s.subtaskDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.subtaskDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func failure(err error) (apierr.Code, string) {
	msg, _ := apierr.UserFacing(err)
	return apierr.CodeOf(err), msg
}

// taskID extracts the created task id from the add_task response data, which
// is either an object or a one-element list of objects.
func taskID(data json.RawMessage) *int {
	type created struct {
		TaskID *int `json:"task_id"`
		ID     *int `json:"id"`
	}
	pick := func(c created) *int {
		if c.TaskID != nil {
			return c.TaskID
		}
		return c.ID
	}
	var list []created
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) > 0 {
			return pick(list[0])
		}
		return nil
	}
	var one created
	if err := json.Unmarshal(data, &one); err == nil {
		return pick(one)
	}
	return nil
}

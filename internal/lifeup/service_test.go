package lifeup

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeupmcp/internal/apierr"
	"lifeupmcp/internal/types"
	"lifeupmcp/internal/validate"
)

// fakeBackend records commands and answers from a script keyed by command prefix.
type fakeBackend struct {
	mu       sync.Mutex
	commands []string
	times    []time.Time

	respond      func(command string) (json.RawMessage, error)
	achievements []types.Achievement
}

func (f *fakeBackend) Execute(ctx context.Context, command string) (json.RawMessage, error) {
	f.mu.Lock()
	f.commands = append(f.commands, command)
	f.times = append(f.times, time.Now())
	f.mu.Unlock()
	if f.respond != nil {
		return f.respond(command)
	}
	return json.RawMessage(`null`), nil
}

func (f *fakeBackend) Tasks(context.Context) ([]types.Task, error) { return nil, nil }
func (f *fakeBackend) AchievementCategories(context.Context) ([]types.AchievementCategory, error) {
	return nil, nil
}
func (f *fakeBackend) Achievements(_ context.Context, categoryID int) ([]types.Achievement, error) {
	var out []types.Achievement
	for _, a := range f.achievements {
		if a.CategoryID == categoryID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeBackend) AllAchievements(context.Context) ([]types.Achievement, error) {
	return f.achievements, nil
}
func (f *fakeBackend) ShopItems(context.Context) ([]types.ShopItem, error) { return nil, nil }
func (f *fakeBackend) Skills(context.Context) ([]types.Skill, error)       { return nil, nil }
func (f *fakeBackend) Info(context.Context) (*types.UserInfo, error)       { return &types.UserInfo{}, nil }

func TestMutate_ValidationStopsBeforeNetwork(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend)

	_, err := svc.Mutate(context.Background(), types.OpTaskCreate, map[string]any{"name": "Daily Exercise", "task_type": 1})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("target_times"))
	assert.Empty(t, backend.commands)
}

func TestMutate_ExecutesEncodedCommand(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend)

	res, err := svc.Mutate(context.Background(), types.OpAchievementUpdate, map[string]any{"edit_id": 109, "secret": true})
	require.NoError(t, err)
	assert.Equal(t, "lifeup://api/achievement?edit_id=109&secret=true", res.Command)
	assert.Equal(t, []string{res.Command}, backend.commands)
	assert.Equal(t, types.OpAchievementUpdate, res.Operation)
}

func TestMutate_PropagatesClassifiedError(t *testing.T) {
	backend := &fakeBackend{respond: func(string) (json.RawMessage, error) {
		return nil, apierr.ClassifyResponse(200, 10002, "provider null")
	}}
	svc := NewService(backend)

	_, err := svc.Mutate(context.Background(), types.OpPenalty, map[string]any{"type": "coin", "content": "late", "number": 5})
	var aerr *apierr.Error
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, apierr.CodeContentProvider, aerr.Code)
	assert.False(t, aerr.Recoverable)
}

func TestCreateTask_SubtaskBatch(t *testing.T) {
	backend := &fakeBackend{respond: func(command string) (json.RawMessage, error) {
		switch {
		case strings.HasPrefix(command, "lifeup://api/add_task"):
			return json.RawMessage(`[{"task_id":77}]`), nil
		case strings.Contains(command, "todo=Draft"):
			return nil, apierr.ClassifyResponse(200, 10004, "limit reached")
		default:
			return json.RawMessage(`null`), nil
		}
	}}
	const delay = 5 * time.Millisecond
	svc := NewService(backend, WithSubtaskDelay(delay))

	res, err := svc.CreateTask(context.Background(), map[string]any{
		"name": "Write report",
		"subtasks": []any{
			map[string]any{"name": "Outline"},
			map[string]any{"name": "Draft"},
			map[string]any{"name": "Polish", "coin": 2},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res.TaskID)
	assert.Equal(t, 77, *res.TaskID)

	require.NotNil(t, res.Subtasks)
	assert.Equal(t, []SubtaskOutcome{{Index: 0, Name: "Outline"}, {Index: 2, Name: "Polish"}}, res.Subtasks.Created)
	require.Len(t, res.Subtasks.Failed, 1)
	assert.Equal(t, "Draft", res.Subtasks.Failed[0].Name)
	assert.Equal(t, apierr.CodeAPI, res.Subtasks.Failed[0].Code)
	assert.NotContains(t, res.Subtasks.Failed[0].Error, "limit reached")

	require.Len(t, backend.commands, 4)
	assert.Equal(t, "lifeup://api/subtask?main_id=77&todo=Outline", backend.commands[1])
	assert.Equal(t, "lifeup://api/subtask?main_id=77&todo=Polish&coin=2", backend.commands[3])
	for i := 1; i < len(backend.times); i++ {
		assert.GreaterOrEqual(t, backend.times[i].Sub(backend.times[i-1]), delay)
	}
}

func TestCreateTask_FallsBackToParentName(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend, WithSubtaskDelay(0))

	res, err := svc.CreateTask(context.Background(), map[string]any{
		"name":     "Write report",
		"subtasks": []any{map[string]any{"name": "Outline"}},
	})
	require.NoError(t, err)
	assert.Nil(t, res.TaskID)
	require.Len(t, backend.commands, 2)
	assert.Equal(t, "lifeup://api/subtask?main_name=Write%20report&todo=Outline", backend.commands[1])
}

func TestCreateTask_ParentFailureSkipsSubtasks(t *testing.T) {
	backend := &fakeBackend{respond: func(string) (json.RawMessage, error) {
		return nil, apierr.ClassifyResponse(401, 0, "")
	}}
	svc := NewService(backend, WithSubtaskDelay(0))

	_, err := svc.CreateTask(context.Background(), map[string]any{
		"name":     "Write report",
		"subtasks": []any{map[string]any{"name": "Outline"}},
	})
	require.Error(t, err)
	assert.Len(t, backend.commands, 1)
}

func TestCreateTask_CancelledBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	backend := &fakeBackend{respond: func(command string) (json.RawMessage, error) {
		cancel()
		return json.RawMessage(`{"task_id":5}`), nil
	}}
	svc := NewService(backend, WithSubtaskDelay(time.Hour))

	res, err := svc.CreateTask(ctx, map[string]any{
		"name":     "Write report",
		"subtasks": []any{map[string]any{"name": "A1"}, map[string]any{"name": "B2"}},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Subtasks.Created)
	assert.Len(t, res.Subtasks.Failed, 2)
	assert.Len(t, backend.commands, 1)
}

func TestSkills(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend)
	ctx := context.Background()

	_, err := svc.CreateSkill(ctx, map[string]any{"id": 3, "content": "Focus"})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("id"))

	res, err := svc.CreateSkill(ctx, map[string]any{"content": "Focus", "delete": true})
	require.NoError(t, err)
	assert.Equal(t, "lifeup://api/skill?content=Focus", res.Command)

	_, err = svc.EditSkill(ctx, map[string]any{"desc": "no id"})
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("id"))

	res, err = svc.EditSkill(ctx, map[string]any{"id": 3, "exp": -20})
	require.NoError(t, err)
	assert.Equal(t, "lifeup://api/skill?id=3&exp=-20", res.Command)

	res, err = svc.DeleteSkill(ctx, map[string]any{"id": 3, "content": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "lifeup://api/skill?id=3&delete=true", res.Command)

	_, err = svc.DeleteSkill(ctx, map[string]any{})
	require.True(t, errors.As(err, &verr))
}

func TestMatchAchievements(t *testing.T) {
	backend := &fakeBackend{achievements: []types.Achievement{
		{ID: 1, Name: "Reading Master", CategoryID: 1},
		{ID: 2, Name: "Unrelated", CategoryID: 2},
	}}
	svc := NewService(backend)

	matches, err := svc.MatchAchievements(context.Background(), "read a novel", nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Achievement.ID)
}

func TestTaskID(t *testing.T) {
	tests := []struct {
		data string
		want *int
	}{
		{`[{"task_id":7}]`, intp(7)},
		{`{"task_id":8}`, intp(8)},
		{`{"id":9}`, intp(9)},
		{`[]`, nil},
		{`null`, nil},
		{`"ok"`, nil},
		{``, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, taskID(json.RawMessage(tt.data)), "data %q", tt.data)
	}
}

func intp(v int) *int { return &v }

func TestPreflightRunsAfterValidation(t *testing.T) {
	backend := &fakeBackend{}
	var checks int
	unreachable := apierr.Unreachable(3, errors.New("refused"))
	svc := NewService(backend, WithPreflight(func(context.Context) error {
		checks++
		return unreachable
	}))

	_, err := svc.Mutate(context.Background(), types.OpSkill, map[string]any{"content": ""})
	require.Error(t, err)
	assert.Zero(t, checks, "invalid requests never reach the preflight")

	_, err = svc.Mutate(context.Background(), types.OpSkill, map[string]any{"content": "Focus"})
	assert.ErrorIs(t, err, unreachable)
	assert.Equal(t, 1, checks)
	assert.Empty(t, backend.commands)
}

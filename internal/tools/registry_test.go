package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeupmcp/internal/validate"
)

func noop(context.Context, map[string]any) (string, error) { return "ok", nil }

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	require.NotNil(t, reg)
	assert.Zero(t, reg.Count())
	assert.False(t, reg.SafeMode())
	assert.True(t, NewRegistry(WithSafeMode(true)).SafeMode())
}

func TestRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	tool := &Tool{Name: "test_tool", Access: AccessRead, Execute: noop}

	require.NoError(t, reg.Register(tool))

	got := reg.Get("test_tool")
	require.NotNil(t, got)
	assert.Equal(t, "test_tool", got.Name)
	assert.Equal(t, 50, got.Priority, "default priority")
	assert.True(t, reg.Has("test_tool"))
	assert.Nil(t, reg.Get("missing"))
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	tool := &Tool{Name: "dupe", Access: AccessCreate, Execute: noop}

	require.NoError(t, reg.Register(tool))
	assert.ErrorIs(t, reg.Register(tool), ErrToolAlreadyRegistered)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		tool    *Tool
		wantErr error
	}{
		{"empty name", &Tool{Access: AccessRead, Execute: noop}, ErrToolNameEmpty},
		{"nil execute", &Tool{Name: "x", Access: AccessRead}, ErrToolExecuteNil},
		{"no access", &Tool{Name: "x", Execute: noop}, ErrToolAccessInvalid},
		{"unknown access", &Tool{Name: "x", Access: "admin", Execute: noop}, ErrToolAccessInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, NewRegistry().Register(tt.tool), tt.wantErr)
		})
	}
}

func register(t *testing.T, reg *Registry, list ...*Tool) {
	t.Helper()
	for _, tool := range list {
		require.NoError(t, reg.Register(tool))
	}
}

func TestAccessAllowedIn(t *testing.T) {
	for _, a := range []Access{AccessCreate, AccessRead, AccessEdit, AccessDelete} {
		assert.True(t, a.AllowedIn(false), "%s outside safe mode", a)
	}
	assert.True(t, AccessCreate.AllowedIn(true))
	assert.True(t, AccessRead.AllowedIn(true))
	assert.False(t, AccessEdit.AllowedIn(true))
	assert.False(t, AccessDelete.AllowedIn(true))
}

func TestSafeModeGate(t *testing.T) {
	reg := NewRegistry(WithSafeMode(true))

	err := reg.Register(&Tool{Name: "edit_thing", Access: AccessEdit, Execute: noop})
	assert.ErrorIs(t, err, ErrToolGated)
	assert.False(t, reg.Has("edit_thing"))

	gated, err := reg.RegisterAll([]*Tool{
		{Name: "create_thing", Access: AccessCreate, Execute: noop},
		{Name: "list_things", Access: AccessRead, Execute: noop},
		{Name: "edit_thing", Access: AccessEdit, Execute: noop},
		{Name: "delete_thing", Access: AccessDelete, Execute: noop},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"edit_thing", "delete_thing"}, gated)
	assert.Equal(t, []string{"create_thing", "list_things"}, reg.Names())
}

func TestRegisterAllStopsOnInvalidTool(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.RegisterAll([]*Tool{
		{Name: "a", Access: AccessRead, Execute: noop},
		{Name: "", Access: AccessRead, Execute: noop},
	})
	assert.ErrorIs(t, err, ErrToolNameEmpty)
}

func TestByAccessSortedByPriority(t *testing.T) {
	reg := NewRegistry()
	register(t, reg,
		&Tool{Name: "low", Access: AccessRead, Priority: 10, Execute: noop},
		&Tool{Name: "high", Access: AccessRead, Priority: 90, Execute: noop},
		&Tool{Name: "mid", Access: AccessRead, Priority: 50, Execute: noop},
		&Tool{Name: "other", Access: AccessCreate, Execute: noop},
	)

	var names []string
	for _, tool := range reg.ByAccess(AccessRead) {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"high", "mid", "low"}, names)
	assert.Empty(t, reg.ByAccess(AccessDelete))
}

func TestAllSortedByName(t *testing.T) {
	reg := NewRegistry()
	register(t, reg,
		&Tool{Name: "b", Access: AccessRead, Execute: noop},
		&Tool{Name: "a", Access: AccessRead, Execute: noop},
	)

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "b", all[1].Name)
}

func TestExecute(t *testing.T) {
	reg := NewRegistry()
	register(t, reg, &Tool{
		Name:   "echo",
		Access: AccessRead,
		Execute: func(_ context.Context, args map[string]any) (string, error) {
			return args["text"].(string), nil
		},
		Schema: ToolSchema{
			Required:   []string{"text"},
			Properties: map[string]Property{"text": {Type: "string"}, "count": {Type: "integer"}},
		},
	})

	res, err := reg.Execute(context.Background(), "echo", map[string]any{"text": "hello", "count": float64(2)})
	require.NoError(t, err)
	assert.NoError(t, res.Error)
	assert.Equal(t, "hello", res.Result)
	assert.Equal(t, "echo", res.ToolName)

	_, err = reg.Execute(context.Background(), "echo", map[string]any{})
	assert.ErrorIs(t, err, ErrMissingRequiredArg)

	_, err = reg.Execute(context.Background(), "echo", map[string]any{"text": nil})
	assert.ErrorIs(t, err, ErrMissingRequiredArg)

	res, err = reg.Execute(context.Background(), "echo", map[string]any{"text": "x", "count": 1.5})
	assert.ErrorIs(t, err, ErrInvalidArgType)
	assert.Error(t, res.Error)

	_, err = reg.Execute(context.Background(), "echo", map[string]any{"text": 5})
	assert.ErrorIs(t, err, ErrInvalidArgType)

	_, err = reg.Execute(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestExecuteToolError(t *testing.T) {
	boom := errors.New("boom")
	reg := NewRegistry()
	register(t, reg, &Tool{
		Name:    "fail",
		Access:  AccessCreate,
		Execute: func(context.Context, map[string]any) (string, error) { return "", boom },
	})

	res, err := reg.Execute(context.Background(), "fail", nil)
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, res)
	assert.ErrorIs(t, res.Error, boom)
}

func TestExecuteReportsEveryArgumentProblem(t *testing.T) {
	reg := NewRegistry()
	register(t, reg, &Tool{
		Name:    "create_thing",
		Access:  AccessCreate,
		Execute: noop,
		Schema: ToolSchema{
			Required: []string{"name", "content"},
			Properties: map[string]Property{
				"name":    {Type: "string"},
				"content": {Type: "string"},
				"count":   {Type: "integer"},
				"urgent":  {Type: "boolean"},
				"tags":    {Type: "array"},
			},
		},
	})
	args := map[string]any{"urgent": "yes", "count": 2.5, "tags": "a,b"}

	for i := 0; i < 5; i++ {
		_, err := reg.Execute(context.Background(), "create_thing", args)
		require.ErrorIs(t, err, ErrMissingRequiredArg)

		var verr *validate.Error
		require.ErrorAs(t, err, &verr)
		var fields []string
		for _, v := range verr.Violations {
			fields = append(fields, v.Field)
		}
		assert.Equal(t, []string{"content", "count", "name", "tags", "urgent"}, fields)
		assert.Equal(t, "count must be of type integer", verr.Violations[1].Message)
		assert.Equal(t, "name is required", verr.Violations[2].Message)
	}

	_, err := reg.Execute(context.Background(), "create_thing", map[string]any{"name": "x", "content": "y", "urgent": 1})
	assert.ErrorIs(t, err, ErrInvalidArgType)
	assert.NotErrorIs(t, err, ErrMissingRequiredArg)
}

func TestMatchesType(t *testing.T) {
	tests := []struct {
		want  string
		value any
		ok    bool
	}{
		{"string", "x", true},
		{"string", 1, false},
		{"boolean", true, true},
		{"boolean", "true", false},
		{"integer", float64(3), true},
		{"integer", 3, true},
		{"integer", 3.2, false},
		{"number", 3.2, true},
		{"array", []any{1}, true},
		{"array", []int{1}, false},
		{"object", map[string]any{}, true},
		{"unknown", struct{}{}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, matchesType(tt.want, tt.value), "%s %v", tt.want, tt.value)
	}
}

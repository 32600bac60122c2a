package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"lifeupmcp/internal/logging"
	"lifeupmcp/internal/types"
	"lifeupmcp/internal/validate"
)

// Registry holds the tools exposed to the agent and provides lookup.
// It is thread-safe and supports registration at runtime.
type Registry struct {
	mu    sync.RWMutex
	safe  bool
	tools map[string]*Tool

	// byAccess provides fast lookup by access class.
	byAccess map[Access][]*Tool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithSafeMode restricts the registry to create and read tools.
func WithSafeMode(safe bool) RegistryOption {
	return func(r *Registry) { r.safe = safe }
}

// NewRegistry creates a new empty tool registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		tools:    make(map[string]*Tool),
		byAccess: make(map[Access][]*Tool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SafeMode reports whether the registry only accepts create and read tools.
func (r *Registry) SafeMode() bool {
	return r.safe
}

// Register adds a tool to the registry.
// Returns an error if a tool with the same name already exists, or
// ErrToolGated if safe mode forbids the tool's access class.
func (r *Registry) Register(tool *Tool) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}
	if !tool.Access.AllowedIn(r.safe) {
		return fmt.Errorf("%w: %s (%s)", ErrToolGated, tool.Name, tool.Access)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, tool.Name)
	}

	// Set default priority if not specified
	if tool.Priority == 0 {
		tool.Priority = 50
	}

	r.tools[tool.Name] = tool
	r.byAccess[tool.Access] = append(r.byAccess[tool.Access], tool)

	logging.ToolsDebug("Registered tool: %s (access=%s, priority=%d)", tool.Name, tool.Access, tool.Priority)
	return nil
}

// RegisterAll registers every tool the current mode allows and returns the
// names of the gated ones. Any other registration error aborts.
func (r *Registry) RegisterAll(tools []*Tool) (gated []string, err error) {
	for _, tool := range tools {
		err := r.Register(tool)
		switch {
		case err == nil:
		case errors.Is(err, ErrToolGated):
			gated = append(gated, tool.Name)
		default:
			return gated, err
		}
	}
	if len(gated) > 0 {
		logging.Tools("safe mode: %d edit/delete tool(s) withheld", len(gated))
	}
	return gated, nil
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// Has returns true if a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// ByAccess returns all tools of an access class, sorted by priority (descending).
func (r *Registry) ByAccess(access Access) []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*Tool, len(r.byAccess[access]))
	copy(tools, r.byAccess[access])

	sort.SliceStable(tools, func(i, j int) bool {
		return tools[i].Priority > tools[j].Priority
	})

	return tools
}

// All returns all registered tools ordered by name.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Names returns all registered tool names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute runs a tool by name with the given arguments.
// Returns ErrToolNotFound if the tool doesn't exist.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	tool := r.Get(name)
	if tool == nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	return r.ExecuteTool(ctx, tool, args)
}

// ExecuteTool runs a specific tool with the given arguments.
func (r *Registry) ExecuteTool(ctx context.Context, tool *Tool, args map[string]any) (*ToolResult, error) {
	start := time.Now()
	if args == nil {
		args = map[string]any{}
	}

	if err := r.validateArgs(tool, args); err != nil {
		return &ToolResult{
			ToolName:   tool.Name,
			Error:      err,
			DurationMs: time.Since(start).Milliseconds(),
		}, err
	}

	logging.ToolsDebug("Executing tool: %s", tool.Name)
	result, err := tool.Execute(ctx, args)

	duration := time.Since(start)
	logging.ToolsDebug("Tool %s completed in %v (success=%v)", tool.Name, duration, err == nil)

	return &ToolResult{
		ToolName:   tool.Name,
		Result:     result,
		Error:      err,
		DurationMs: duration.Milliseconds(),
	}, err
}

// validateArgs checks that all required arguments are present and that
// declared scalar types match. Range and cross-field rules belong to the
// validation engine. Every problem is reported, ordered by argument name, in a
// *validate.Error wrapped by ErrMissingRequiredArg when anything is missing and
// ErrInvalidArgType otherwise.
func (r *Registry) validateArgs(tool *Tool, args map[string]any) error {
	var vs []validate.Violation
	missing := false
	for _, required := range tool.Schema.Required {
		if v, ok := args[required]; !ok || v == nil {
			missing = true
			vs = append(vs, validate.Violation{Field: required, Message: required + " is required"})
		}
	}
	for name, value := range args {
		prop, ok := tool.Schema.Properties[name]
		if !ok || value == nil {
			continue
		}
		if !matchesType(prop.Type, value) {
			vs = append(vs, validate.Violation{
				Field:   name,
				Message: fmt.Sprintf("%s must be of type %s", name, prop.Type),
			})
		}
	}
	if len(vs) == 0 {
		return nil
	}

	sort.Slice(vs, func(i, j int) bool { return vs[i].Field < vs[j].Field })
	verr := &validate.Error{Operation: types.Operation(tool.Name), Violations: vs}
	if missing {
		return fmt.Errorf("%w: %w", ErrMissingRequiredArg, verr)
	}
	return fmt.Errorf("%w: %w", ErrInvalidArgType, verr)
}

func matchesType(want string, value any) bool {
	switch want {
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "integer":
		switch v := value.(type) {
		case int, int64, int32:
			return true
		case float64:
			return v == math.Trunc(v)
		}
		return false
	case "number":
		switch value.(type) {
		case int, int64, int32, float64, float32:
			return true
		}
		return false
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	}
	return true
}

// Package tools defines the operations exposed to the agent and the registry
// that holds them.
//
// Every tool is statically classified by Access. In safe mode only create and
// read tools can be registered, so edit and delete tools never reach the agent.
//
// Architecture:
//
//	Definitions(service) → Registry.Register (mode gate) → mcpserver → Tool.Execute
package tools

import (
	"context"
)

// Access classifies what a tool does to LifeUp state.
type Access string

const (
	// AccessCreate adds new entities or applies one-shot effects.
	AccessCreate Access = "create"

	// AccessRead only fetches records.
	AccessRead Access = "read"

	// AccessEdit modifies existing entities.
	AccessEdit Access = "edit"

	// AccessDelete removes entities.
	AccessDelete Access = "delete"
)

// Valid reports whether a is a known classification.
func (a Access) Valid() bool {
	switch a {
	case AccessCreate, AccessRead, AccessEdit, AccessDelete:
		return true
	}
	return false
}

// AllowedIn reports whether a tool with this access may run in the given mode.
func (a Access) AllowedIn(safe bool) bool {
	if !safe {
		return true
	}
	return a == AccessCreate || a == AccessRead
}

// Property describes a single parameter property for JSON schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	// Items describes array element schema (required for type="array")
	Items *PropertyItems `json:"items,omitempty"`
}

// PropertyItems describes the schema for array elements.
type PropertyItems struct {
	Type string `json:"type"`
}

// ToolSchema defines the JSON schema for tool arguments.
type ToolSchema struct {
	// Required lists parameters that must be provided.
	Required []string `json:"required"`

	// Properties describes each parameter.
	Properties map[string]Property `json:"properties"`
}

// ExecuteFunc is the signature for tool execution.
// Returns the result as JSON text and any error.
type ExecuteFunc func(ctx context.Context, args map[string]any) (string, error)

// Tool defines one operation the agent can call.
type Tool struct {
	// Name is the unique identifier for the tool.
	Name string

	// Description explains what the tool does.
	Description string

	// Access classifies the tool for the mode gate.
	Access Access

	// Execute runs the tool with the given arguments.
	Execute ExecuteFunc

	// Schema defines the expected arguments.
	Schema ToolSchema

	// Priority orders listings; higher first (default 50).
	Priority int
}

// Validate checks if the tool definition is valid.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return ErrToolNameEmpty
	}
	if t.Execute == nil {
		return ErrToolExecuteNil
	}
	if !t.Access.Valid() {
		return ErrToolAccessInvalid
	}
	return nil
}

// ToolResult wraps the result of tool execution with metadata.
type ToolResult struct {
	// ToolName identifies which tool was executed.
	ToolName string

	// Result is the JSON output from the tool.
	Result string

	// Error is set if the tool failed.
	Error error

	// DurationMs is how long execution took.
	DurationMs int64
}

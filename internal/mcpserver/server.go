// Package mcpserver exposes the tool registry over the Model Context Protocol.
// It only wires; every operation lives behind tools.Registry.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"lifeupmcp/internal/apierr"
	"lifeupmcp/internal/logging"
	"lifeupmcp/internal/tools"
)

// Name is the server name announced during MCP initialization.
const Name = "lifeup-mcp"

// Version is set at build time via ldflags.
var Version = "dev"

// Server is an MCP server backed by a tool registry.
type Server struct {
	mcp      *server.MCPServer
	registry *tools.Registry
}

// New creates the MCP server and registers every tool in registry.
func New(registry *tools.Registry) (*Server, error) {
	s := &Server{
		registry: registry,
		mcp: server.NewMCPServer(
			Name,
			Version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
			server.WithInstructions(instructions(registry.SafeMode())),
		),
	}

	for _, tool := range registry.All() {
		def, err := definition(tool)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", tool.Name, err)
		}
		s.mcp.AddTool(def, s.handler(tool))
	}
	logging.Boot("MCP server ready with %d tool(s) (safe mode: %v)", registry.Count(), registry.SafeMode())
	return s, nil
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve speaks MCP over in/out until ctx is cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(logging.Get(logging.CategoryBoot).Std())
	return stdio.Listen(ctx, in, out)
}

func (s *Server) handler(tool *tools.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := logging.WithRequestID(logging.CategoryTools, uuid.NewString()).With(zap.String("tool", tool.Name))

		res, err := s.registry.ExecuteTool(ctx, tool, request.GetArguments())
		if err != nil {
			payload := failure(err)
			if payload.Code == apierr.CodeInternal {
				log.Error("failed: %v", err)
			} else {
				log.Info("failed (%s): %v", payload.Code, err)
			}
			return errorResult(payload), nil
		}
		log.Debug("ok in %dms", res.DurationMs)
		return mcp.NewToolResultText(res.Result), nil
	}
}

// ErrorPayload is the body of a failed tool call.
type ErrorPayload struct {
	Code        apierr.Code `json:"code"`
	Message     string      `json:"message"`
	Recoverable bool        `json:"recoverable"`
}

// failure maps err to what the agent may see. Technical detail stays in logs.
func failure(err error) ErrorPayload {
	var classified apierr.Classified
	if !errors.As(err, &classified) && errors.Is(err, tools.ErrInvalidArgType) {
		return ErrorPayload{Code: apierr.CodeValidation, Message: err.Error(), Recoverable: true}
	}
	msg, recoverable := apierr.UserFacing(err)
	return ErrorPayload{Code: apierr.CodeOf(err), Message: msg, Recoverable: recoverable}
}

func errorResult(p ErrorPayload) *mcp.CallToolResult {
	body, err := json.Marshal(struct {
		Error ErrorPayload `json:"error"`
	}{p})
	if err != nil {
		return mcp.NewToolResultError(p.Message)
	}
	return mcp.NewToolResultError(string(body))
}

// definition converts a registry tool to its MCP form.
func definition(tool *tools.Tool) (mcp.Tool, error) {
	schema, err := inputSchema(tool.Schema)
	if err != nil {
		return mcp.Tool{}, err
	}
	def := mcp.NewToolWithRawSchema(tool.Name, tool.Description, schema)
	mcp.WithReadOnlyHintAnnotation(tool.Access == tools.AccessRead)(&def)
	mcp.WithDestructiveHintAnnotation(tool.Access == tools.AccessDelete || tool.Access == tools.AccessEdit)(&def)
	return def, nil
}

func inputSchema(s tools.ToolSchema) (json.RawMessage, error) {
	props := s.Properties
	if props == nil {
		props = map[string]tools.Property{}
	}
	return json.Marshal(struct {
		Type       string                    `json:"type"`
		Properties map[string]tools.Property `json:"properties"`
		Required   []string                  `json:"required,omitempty"`
	}{"object", props, s.Required})
}

func instructions(safe bool) string {
	text := `Tools for the LifeUp gamified to-do app, reached through LifeUp Cloud on the user's device.

- Arguments are validated before anything is sent; a VALIDATION_ERROR lists every problem at once.
- Numeric edits (exp, coin, set_price, set_stock_number, set_own_number) replace the value unless the matching *_set_type/*_type is "relative", which adds the signed value.
- Use match_task_to_achievements before creating an achievement for a task to reuse existing ones.
- Errors carry a code and a recoverable flag; retry only recoverable ones after fixing the cause.`
	if safe {
		text += "\n- Safe mode is on: only create and read tools are available."
	}
	return text
}

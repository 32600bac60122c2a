// Package lifeup runs LifeUp operations end to end: validate the arguments,
// encode the command, execute it through the injected backend and return a
// typed result. Validation failures never reach the network.
package lifeup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lifeupmcp/internal/encode"
	"lifeupmcp/internal/logging"
	"lifeupmcp/internal/matcher"
	"lifeupmcp/internal/types"
	"lifeupmcp/internal/validate"
)

// Executor runs one lifeup:// command and returns the response data.
type Executor interface {
	Execute(ctx context.Context, command string) (json.RawMessage, error)
}

// Reader fetches LifeUp records.
type Reader interface {
	Tasks(ctx context.Context) ([]types.Task, error)
	AchievementCategories(ctx context.Context) ([]types.AchievementCategory, error)
	Achievements(ctx context.Context, categoryID int) ([]types.Achievement, error)
	AllAchievements(ctx context.Context) ([]types.Achievement, error)
	ShopItems(ctx context.Context) ([]types.ShopItem, error)
	Skills(ctx context.Context) ([]types.Skill, error)
	Info(ctx context.Context) (*types.UserInfo, error)
}

// Backend is what the service needs from a LifeUp connection. *client.Client
// satisfies it.
type Backend interface {
	Executor
	Reader
}

// Service executes LifeUp operations. It keeps no state between calls.
type Service struct {
	backend      Backend
	subtaskDelay time.Duration
	preflight    func(context.Context) error
}

// Option configures a Service.
type Option func(*Service)

// WithSubtaskDelay sets the pause before each subtask call of a batch.
func WithSubtaskDelay(d time.Duration) Option {
	return func(s *Service) { s.subtaskDelay = d }
}

// WithPreflight installs a check that runs before every command is sent,
// typically a health gate. Its error is returned as is.
func WithPreflight(check func(context.Context) error) Option {
	return func(s *Service) { s.preflight = check }
}

// NewService creates a service over backend.
func NewService(backend Backend, opts ...Option) *Service {
	s := &Service{
		backend:      backend,
		subtaskDelay: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MutationResult is the outcome of one executed command.
type MutationResult struct {
	Operation types.Operation `json:"operation"`
	Command   string          `json:"command"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Mutate validates args for op, encodes and executes the command.
func (s *Service) Mutate(ctx context.Context, op types.Operation, args map[string]any) (*MutationResult, error) {
	req, err := validate.Request(op, args)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, op, req)
}

func (s *Service) run(ctx context.Context, op types.Operation, req any) (*MutationResult, error) {
	cmd, err := encode.Request(req)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", op, err)
	}
	command := cmd.String()
	if s.preflight != nil {
		if err := s.preflight(ctx); err != nil {
			return nil, err
		}
	}
	data, err := s.backend.Execute(ctx, command)
	if err != nil {
		return nil, err
	}
	logging.ToolsDebug("%s executed", op)
	return &MutationResult{Operation: op, Command: command, Data: data}, nil
}

// MatchAchievements ranks every achievement against taskName.
func (s *Service) MatchAchievements(ctx context.Context, taskName string, categoryID *int) ([]matcher.Match, error) {
	achievements, err := s.backend.AllAchievements(ctx)
	if err != nil {
		return nil, err
	}
	return matcher.FindMatches(taskName, achievements, categoryID), nil
}

// Reader exposes the read side of the backend.
func (s *Service) Reader() Reader {
	return s.backend
}

package validate

import (
	"errors"
	"fmt"
	"strings"

	"lifeupmcp/internal/types"
)

// ErrUnknownOperation is returned by Request for an operation it cannot decode.
var ErrUnknownOperation = errors.New("unknown operation")

// Violation is one field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error aggregates every violation found for one request. It is never partial:
// a request either validates completely or is rejected with all its violations.
type Error struct {
	Operation  types.Operation `json:"operation"`
	Violations []Violation     `json:"violations"`
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return fmt.Sprintf("invalid %s request: %s", e.Operation, strings.Join(msgs, "; "))
}

// ErrorCode tags every validation failure with the same stable code.
func (e *Error) ErrorCode() string { return "VALIDATION_ERROR" }

// UserMessage lists every violation.
func (e *Error) UserMessage() string { return e.Error() }

// Recoverable is always true: the caller can fix the arguments and retry.
func (e *Error) Recoverable() bool { return true }

// Has reports whether any violation is attached to field.
func (e *Error) Has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// violations collects failures while a request is checked.
type violations []Violation

func (vs *violations) add(field, format string, args ...interface{}) {
	*vs = append(*vs, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (vs violations) has(field string) bool {
	for _, v := range vs {
		if v.Field == field {
			return true
		}
	}
	return false
}

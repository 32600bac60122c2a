// Package validate is the validation engine: it decodes untyped tool arguments
// into typed requests, checks per-field bounds with struct tags, then applies the
// cross-field rules as plain functions over the typed request. It performs no I/O.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"lifeupmcp/internal/logging"
	"lifeupmcp/internal/types"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// structValidator returns the shared validator. validator.Validate caches struct
// metadata and is safe for concurrent use.
func structValidator() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("rrggbb", func(fl validator.FieldLevel) bool {
			return IsColor(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("failed to register color validation: %v", err))
		}
		engine = v
	})
	return engine
}

// IsColor reports whether s is a #RRGGBB color.
func IsColor(s string) bool {
	return colorPattern.MatchString(s)
}

// check runs the full pipeline for one operation: decode, field checks, the
// identification rule, then the remaining cross-field rules. Every stage runs on
// whatever decoded, so one rejection carries all violations.
//
// identify may be nil for operations that need no target. When it reports
// false no further cross-field rules run, since there is nothing to apply them to.
func check[T any](op types.Operation, args map[string]any, identify func(*T, *violations) bool, rules ...func(*T, *violations)) (*T, error) {
	req := new(T)
	vs := decode(args, req)
	mistyped := make(map[string]bool, len(vs))
	for _, v := range vs {
		mistyped[v.Field] = true
	}

	// A mistyped field is left zero; its tag failures would only repeat the type error.
	for _, v := range fieldViolations(structValidator().Struct(req)) {
		if !mistyped[v.Field] {
			vs = append(vs, v)
		}
	}

	if identify == nil || identify(req, &vs) {
		for _, rule := range rules {
			rule(req, &vs)
		}
	}

	if len(vs) > 0 {
		return nil, reject(op, vs)
	}
	return req, nil
}

func reject(op types.Operation, vs violations) error {
	logging.ValidateDebug("%s rejected with %d violation(s)", op, len(vs))
	return &Error{Operation: op, Violations: vs}
}

// decode converts the JSON-decoded argument map into the typed request one key
// at a time, in key order. Unknown keys are ignored; each mistyped key becomes
// one violation and leaves its field zero.
func decode(args map[string]any, dst any) violations {
	var vs violations
	rv := reflect.ValueOf(dst).Elem()
	fields := jsonFields(rv.Type())

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		idx, ok := fields[key]
		if !ok {
			continue
		}
		raw, err := json.Marshal(args[key])
		if err != nil {
			vs.add(key, "%s could not be read: %v", key, err)
			continue
		}
		target := reflect.New(rv.Field(idx).Type())
		if err := json.Unmarshal(raw, target.Interface()); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				field := key
				if typeErr.Field != "" {
					field = key + "." + typeErr.Field
				}
				vs.add(field, "%s must be %s, got %s", field, kindName(typeErr.Type), typeErr.Value)
				continue
			}
			vs.add(key, "%s could not be read: %v", key, err)
			continue
		}
		rv.Field(idx).Set(target.Elem())
	}
	return vs
}

var fieldCache sync.Map // reflect.Type -> map[string]int

// jsonFields maps the json names of t's exported fields to their index.
func jsonFields(t reflect.Type) map[string]int {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]int)
	}
	fields := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		fields[name] = i
	}
	fieldCache.Store(t, fields)
	return fields
}

func kindName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "a list"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return t.String()
	}
}

// fieldViolations converts validator errors to violations with JSON field paths.
func fieldViolations(err error) violations {
	var vs violations
	if err == nil {
		return vs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		vs.add("", "%v", err)
		return vs
	}
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		vs = append(vs, Violation{Field: field, Message: displayName(field) + " " + describe(fe)})
	}
	return vs
}

// fieldPath strips the struct name from a validator namespace:
// "TaskRequest.subtasks[0].name" -> "subtasks[0].name".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func displayName(field string) string {
	if field == "" {
		return "request"
	}
	return field
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + unit(fe.Kind())
	case "max":
		return "must be at most " + fe.Param() + unit(fe.Kind())
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of [" + strings.ReplaceAll(fe.Param(), " ", ", ") + "]"
	case "rrggbb":
		return "must be a hex color in #RRGGBB format"
	default:
		return "failed the " + fe.Tag() + " check"
	}
}

func unit(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	default:
		return ""
	}
}

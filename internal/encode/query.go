// Package encode turns validated requests into LifeUp URL-scheme commands.
//
// Every builder declares its parameters as an ordered list of key/value pairs.
// Escaping happens once, in Query.Encode, so individual builders never deal with
// percent-encoding.
package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Scheme is the prefix shared by every command path.
const Scheme = "lifeup://api/"

// Command is a fully built LifeUp command.
type Command struct {
	Path  string
	Query Query
}

// String renders the canonical command, e.g. lifeup://api/add_task?todo=Read%20Chapter%205.
func (c Command) String() string {
	if len(c.Query.params) == 0 {
		return c.Path
	}
	return c.Path + "?" + c.Query.Encode()
}

// Param is one key/value pair of a query.
type Param struct {
	Key   string
	Value string
}

// Query is an ordered parameter list. Keys may repeat. The zero value is ready
// to use.
type Query struct {
	params []Param
	err    error
}

// Params returns a copy of the parameters in emission order.
func (q *Query) Params() []Param {
	out := make([]Param, len(q.params))
	copy(out, q.params)
	return out
}

// Err returns the first error recorded while adding parameters.
func (q *Query) Err() error {
	return q.err
}

// Add appends key=value unconditionally.
func (q *Query) Add(key, value string) {
	q.params = append(q.params, Param{Key: key, Value: value})
}

// Text appends key=value when value is non-empty.
func (q *Query) Text(key, value string) {
	if value != "" {
		q.Add(key, value)
	}
}

// TextPtr appends key=*value when value is set. An empty string is sent as-is.
func (q *Query) TextPtr(key string, value *string) {
	if value != nil {
		q.Add(key, *value)
	}
}

// Int appends key=*value when value is set.
func (q *Query) Int(key string, value *int) {
	if value != nil {
		q.Add(key, strconv.Itoa(*value))
	}
}

// Int64 appends key=*value when value is set.
func (q *Query) Int64(key string, value *int64) {
	if value != nil {
		q.Add(key, strconv.FormatInt(*value, 10))
	}
}

// Bool appends key=true|false when value is set.
func (q *Query) Bool(key string, value *bool) {
	if value != nil {
		q.Add(key, strconv.FormatBool(*value))
	}
}

// Flag appends key=true when set is true.
func (q *Query) Flag(key string, set bool) {
	if set {
		q.Add(key, "true")
	}
}

// Ints appends one key=value pair per element, in list order.
func (q *Query) Ints(key string, values []int) {
	for _, v := range values {
		q.Add(key, strconv.Itoa(v))
	}
}

// JSON appends a single parameter holding the JSON encoding of a non-empty slice.
func (q *Query) JSON(key string, value any, n int) {
	if n == 0 {
		return
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		if q.err == nil {
			q.err = fmt.Errorf("encode %s: %w", key, err)
		}
		return
	}
	q.Add(key, strings.TrimSuffix(buf.String(), "\n"))
}

// Get returns the first value for key.
func (q *Query) Get(key string) (string, bool) {
	for _, p := range q.params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Encode renders the query in parameter order.
func (q *Query) Encode() string {
	var b strings.Builder
	for i, p := range q.params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(Escape(p.Key))
		b.WriteByte('=')
		b.WriteString(Escape(p.Value))
	}
	return b.String()
}

// Escape percent-encodes s for use in a LifeUp command. Spaces become %20, not +,
// and # becomes %23 so it cannot start a fragment.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

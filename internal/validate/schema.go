// Package validate checks decoded JSON bodies against declarative field schemas.
//
// A Schema lists fields in the order they are checked. Checking stops at the
// first failing field and reports a single human-readable message.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"lifetracker/internal/model"
)

type Kind int

const (
	String Kind = iota
	Number
	Integer
	Bool
	Date
	Enum
)

type Field struct {
	Name  string // JSON key
	Label string // used in messages, e.g. "Amount"
	Kind  Kind

	Required bool // create only; updates never require fields
	Nullable bool // JSON null accepted and stored as nil
	MinLen   int
	Positive bool
	Min      *float64
	Max      *float64
	Values   []string // Enum members

	Default    any    // applied on create when the field is absent
	DefaultNow bool   // Date fields: absent on create means the current time
	Message    string // replaces every failure message of this field
}

type Schema struct {
	Entity  string
	Missing string // message for absent required fields, overrides per-field defaults
	Fields  []Field
}

// Values holds normalized field values keyed by JSON name.
// Types are string, float64, int, bool, time.Time or nil.
type Values map[string]any

func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

func (v Values) Int(name string) int {
	i, _ := v[name].(int)
	return i
}

func (v Values) Time(name string) (time.Time, bool) {
	t, ok := v[name].(time.Time)
	return t, ok
}

// Error is a failed field check.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Float is a helper for Min/Max literals.
func Float(f float64) *float64 { return &f }

// Create checks body for a new entity: required fields must be present and
// absent optional fields take their defaults.
func (s Schema) Create(body map[string]any, now time.Time) (Values, error) {
	return s.check(body, true, now)
}

// Update checks a partial body: only supplied fields are checked and returned.
func (s Schema) Update(body map[string]any) (Values, error) {
	return s.check(body, false, time.Time{})
}

func (s Schema) check(body map[string]any, create bool, now time.Time) (Values, error) {
	out := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		raw, present := body[f.Name]

		if !present || (raw == nil && !f.Nullable) {
			if present && !create {
				// explicit null on a non-nullable field
				return nil, &Error{Field: f.Name, Message: s.missingMessage(f)}
			}
			if !create {
				continue
			}
			if f.Required {
				return nil, &Error{Field: f.Name, Message: s.missingMessage(f)}
			}
			switch {
			case f.DefaultNow:
				out[f.Name] = now
			case f.Default != nil:
				out[f.Name] = f.Default
			}
			continue
		}

		if raw == nil {
			out[f.Name] = nil
			continue
		}

		v, err := f.coerce(raw)
		if err != nil {
			return nil, err
		}
		if create && f.Required && v == "" {
			return nil, &Error{Field: f.Name, Message: s.missingMessage(f)}
		}
		out[f.Name] = v
	}
	return out, nil
}

func (s Schema) missingMessage(f Field) string {
	if f.Message != "" {
		return f.Message
	}
	if s.Missing != "" {
		return s.Missing
	}
	switch {
	case f.MinLen > 0:
		return f.minLenMessage()
	case f.Positive:
		return f.positiveMessage()
	}
	return fmt.Sprintf("%s is required", f.Label)
}

func (f Field) fail(msg string) error {
	if f.Message != "" {
		msg = f.Message
	}
	return &Error{Field: f.Name, Message: msg}
}

func (f Field) minLenMessage() string {
	return fmt.Sprintf("%s must be at least %d characters", f.Label, f.MinLen)
}

func (f Field) positiveMessage() string {
	return fmt.Sprintf("%s must be greater than 0", f.Label)
}

func (f Field) coerce(raw any) (any, error) {
	switch f.Kind {
	case String:
		s, ok := raw.(string)
		if !ok {
			return nil, f.fail(fmt.Sprintf("%s must be a string", f.Label))
		}
		s = strings.TrimSpace(s)
		if f.MinLen > 0 && utf8.RuneCountInString(s) < f.MinLen {
			return nil, f.fail(f.minLenMessage())
		}
		return s, nil

	case Number, Integer:
		n, ok := toFloat(raw)
		if !ok {
			return nil, f.fail(fmt.Sprintf("%s must be a number", f.Label))
		}
		if f.Positive && n <= 0 {
			return nil, f.fail(f.positiveMessage())
		}
		if err := f.checkRange(n); err != nil {
			return nil, err
		}
		if f.Kind == Integer {
			if n != math.Trunc(n) {
				return nil, f.fail(fmt.Sprintf("%s must be a whole number", f.Label))
			}
			// integer columns are int4
			if n < math.MinInt32 || n > math.MaxInt32 {
				return nil, f.fail(fmt.Sprintf("%s must be a number between %d and %d", f.Label, math.MinInt32, math.MaxInt32))
			}
			return int(n), nil
		}
		return n, nil

	case Bool:
		b, ok := raw.(bool)
		if !ok {
			return nil, f.fail(fmt.Sprintf("%s must be a boolean", f.Label))
		}
		return b, nil

	case Date:
		s, ok := raw.(string)
		if !ok {
			return nil, f.fail(fmt.Sprintf("Invalid %s format", lowerFirst(f.Label)))
		}
		t, err := model.ParseDate(strings.TrimSpace(s))
		if err != nil {
			return nil, f.fail(fmt.Sprintf("Invalid %s format", lowerFirst(f.Label)))
		}
		return t, nil

	case Enum:
		s, ok := raw.(string)
		s = strings.TrimSpace(s)
		if !ok || !slices.Contains(f.Values, s) {
			return nil, f.fail(fmt.Sprintf("Invalid %s", lowerFirst(f.Label)))
		}
		return s, nil
	}
	return nil, fmt.Errorf("validate: unknown kind %d for %s", f.Kind, f.Name)
}

func (f Field) checkRange(n float64) error {
	switch {
	case f.Min != nil && f.Max != nil && (n < *f.Min || n > *f.Max):
		return f.fail(fmt.Sprintf("%s must be a number between %s and %s", f.Label, fmtNum(*f.Min), fmtNum(*f.Max)))
	case f.Min != nil && n < *f.Min:
		return f.fail(fmt.Sprintf("%s must be at least %s", f.Label, fmtNum(*f.Min)))
	case f.Max != nil && n > *f.Max:
		return f.fail(fmt.Sprintf("%s must be at most %s", f.Label, fmtNum(*f.Max)))
	}
	return nil
}

// toFloat accepts JSON numbers and numeric strings.
func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Apply merges values into dst, a pointer to a struct whose JSON tags match
// the field names. Fields missing from values are left untouched. dst is
// rebuilt from scratch so pointer fields never alias the previous value.
func Apply(dst any, values Values) error {
	if len(values) == 0 {
		return nil
	}
	cur, err := json.Marshal(dst)
	if err != nil {
		return fmt.Errorf("validate: encode record: %w", err)
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(cur, &merged); err != nil {
		return fmt.Errorf("validate: decode record: %w", err)
	}
	for k, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("validate: encode %s: %w", k, err)
		}
		merged[k] = b
	}
	b, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("validate: encode values: %w", err)
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("validate: apply target must be a non-nil pointer")
	}
	rv.Elem().SetZero()
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("validate: apply values: %w", err)
	}
	return nil
}

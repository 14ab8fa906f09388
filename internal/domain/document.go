package domain

import (
	"time"
)

// Document is the schemaless body of a stored record. The id of the record is
// never part of its body.
type Document map[string]any

// lookup returns the first present key. Later keys are legacy spellings kept
// readable for documents written by the mobile-parity revision.
func (d Document) lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := d[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String returns the value under the first present key, or "".
func (d Document) String(keys ...string) string {
	v, ok := d.lookup(keys...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Int returns the value under the first present key as an int, or 0.
func (d Document) Int(keys ...string) int {
	v, ok := d.lookup(keys...)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// Float returns the value under the first present key as a float64, or 0.
func (d Document) Float(keys ...string) float64 {
	v, ok := d.lookup(keys...)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// OptionalFloat is Float for nullable numbers: a missing or zero value is nil.
func (d Document) OptionalFloat(keys ...string) *float64 {
	f := d.Float(keys...)
	if f == 0 {
		return nil
	}
	return &f
}

// Bool returns the value under the first present key. def is used when the
// key is missing or not a boolean.
func (d Document) Bool(def bool, keys ...string) bool {
	v, ok := d.lookup(keys...)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Time returns the value under the first present key, or the zero time.
func (d Document) Time(keys ...string) time.Time {
	v, ok := d.lookup(keys...)
	if !ok {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case *time.Time:
		if t != nil {
			return t.UTC()
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// OptionalTime is Time for nullable timestamps.
func (d Document) OptionalTime(keys ...string) *time.Time {
	t := d.Time(keys...)
	if t.IsZero() {
		return nil
	}
	return &t
}

// Strings returns the list under the first present key, or an empty list.
func (d Document) Strings(keys ...string) []string {
	v, ok := d.lookup(keys...)
	if !ok {
		return []string{}
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

// Map returns the nested document under the first present key, or an empty map.
func (d Document) Map(keys ...string) map[string]any {
	v, ok := d.lookup(keys...)
	if !ok {
		return map[string]any{}
	}
	switch m := v.(type) {
	case map[string]any:
		return cloneMap(m)
	case Document:
		return cloneMap(m)
	}
	return map[string]any{}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// createdOrNow is the write-time default for creation timestamps.
func createdOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func optionalTimeValue(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UTC()
}

func optionalFloatValue(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func mapOrEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

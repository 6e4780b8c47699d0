// Package record defines the opaque user record decoded from the directory
// API and the dotted-path accessor used to read nested fields from it.
package record

import (
	"fmt"
	"strings"
)

// Record is one user entity as received from the directory API.
// Records are read-only once decoded.
type Record map[string]any

// Resolve walks a dotted path such as "address.city" through nested objects.
// It reports false when any segment is absent or an intermediate value is not
// an object. A present JSON null resolves to (nil, true).
func Resolve(r Record, path string) (any, bool) {
	if r == nil || strings.TrimSpace(path) == "" {
		return nil, false
	}
	var current any = r
	for _, part := range strings.Split(path, ".") {
		var next any
		var ok bool
		switch v := current.(type) {
		case Record:
			next, ok = v[part]
		case map[string]any:
			next, ok = v[part]
		default:
			return nil, false
		}
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// String returns the string stored at path, or "" when it is missing or not a string.
func (r Record) String(path string) string {
	v, ok := Resolve(r, path)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Key returns the row key derived from the record's id field.
func (r Record) Key() string {
	v, ok := r["id"]
	if !ok || v == nil {
		return ""
	}
	if f, isFloat := v.(float64); isFloat && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(v)
}

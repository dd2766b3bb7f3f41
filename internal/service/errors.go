package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound means no task exists with the requested id.
	ErrNotFound = errors.New("task not found")
	// ErrForbidden means the task exists but belongs to another user.
	ErrForbidden = errors.New("task belongs to another user")
	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationErrors collects field-level validation messages, keyed by the
// JSON field name. It serializes as the body of a 422 response.
type ValidationErrors map[string][]string

func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

func (v ValidationErrors) Any() bool {
	return len(v) > 0
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, field := range fields {
		sb.WriteString(fmt.Sprintf(" %s: %s;", field, strings.Join(v[field], ", ")))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrTaskNotFound      = errors.New("task: not found")
	ErrTaskAlreadyExists = errors.New("task: id already exists")
)

// ValidationErrors maps a field name to a human readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

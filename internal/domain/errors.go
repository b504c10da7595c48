package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTask       = errors.New("invalid task")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// StoreError represents an error from the task store
type StoreError struct {
	Op      string // Operation: "load", "save", "upsert", etc.
	TaskID  string // Optional: specific task ID
	Message string // Human-readable context
	Err     error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.TaskID != "" {
		if e.Message != "" {
			return fmt.Sprintf("store %s [%s]: %s", e.Op, e.TaskID, e.Message)
		}
		if e.Err != nil {
			return fmt.Sprintf("store %s [%s]: %v", e.Op, e.TaskID, e.Err)
		}
	}
	if e.Message != "" {
		return fmt.Sprintf("store %s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s failed", e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// FieldError is a single failed constraint
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (f FieldError) String() string {
	if f.Param != "" {
		return fmt.Sprintf("%s (%s=%s)", f.Field, f.Rule, f.Param)
	}
	return fmt.Sprintf("%s (%s)", f.Field, f.Rule)
}

// ValidationError lists the constraints a task failed on save
type ValidationError struct {
	TaskID string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	if e.TaskID != "" {
		return fmt.Sprintf("invalid task [%s]: %s", e.TaskID, strings.Join(parts, ", "))
	}
	return "invalid task: " + strings.Join(parts, ", ")
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidTask)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidTask
}

// HasField reports whether field (struct namespace suffix) failed
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field || strings.HasSuffix(f.Field, "."+field) {
			return true
		}
	}
	return false
}

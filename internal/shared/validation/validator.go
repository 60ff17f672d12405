package validation

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type ConfigError interface {
	error
	PrependPath(path string) ConfigError
}

type ValidationError struct {
	Path     string
	Problems map[string]string
}

func NewValidationError(problems map[string]string, path ...string) *ValidationError {
	return &ValidationError{strings.Join(path, "."), problems}
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Problems))
	for field := range e.Problems {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	fmt.Fprintf(&b, "validation errors found in '%s':\n", e.Path)
	for _, field := range fields {
		fmt.Fprintf(&b, "  %s: %s\n", field, e.Problems[field])
	}
	return b.String()
}

func (e *ValidationError) Is(other error) bool {
	_, ok := other.(*ValidationError)
	return ok
}

func (e *ValidationError) PrependPath(path string) ConfigError {
	e.Path = fmt.Sprint(path, ".", e.Path)
	return e
}

type Validator interface {
	// Returns a map of field and human readable explanation of what's wrong
	Valid(ctx context.Context) (problems map[string]string)
}

// Check runs v and wraps any problems in a ValidationError
func Check(ctx context.Context, v Validator, path ...string) error {
	problems := v.Valid(ctx)
	if len(problems) == 0 {
		return nil
	}
	return NewValidationError(problems, path...)
}

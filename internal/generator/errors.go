package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetExists is returned when the destination directory already exists.
	ErrTargetExists = errors.New("target directory already exists")

	// ErrTemplate matches every *TemplateError.
	ErrTemplate = errors.New("template error")
)

// TemplateError reports a name or content template that failed to compile or
// render.
type TemplateError struct {
	Name string // Template source, usually a path in the template tree
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Name, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTemplate) true for any TemplateError.
func (e *TemplateError) Is(target error) bool {
	return target == ErrTemplate
}

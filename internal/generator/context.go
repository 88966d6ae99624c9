package generator

import (
	"fmt"

	"github.com/simonhull/anchor-init/internal/naming"
)

// Context keys available to templates.
const (
	KeyProjectName = "projectName"
	KeyProgramID   = "programId"
)

// Context is the immutable set of substitution values for one generation run.
type Context struct {
	projectName naming.ProjectName
	programID   string
}

// NewContext builds a Context. Both values are required so that a renderer
// never sees a partially filled context.
func NewContext(name naming.ProjectName, programID string) (Context, error) {
	if err := naming.Validate(name.String()); err != nil {
		return Context{}, err
	}
	if programID == "" {
		return Context{}, fmt.Errorf("program ID is required")
	}
	return Context{projectName: name, programID: programID}, nil
}

// ProjectName returns the normalized project name.
func (c Context) ProjectName() string {
	return c.projectName.String()
}

// ProgramID returns the generated program identifier.
func (c Context) ProgramID() string {
	return c.programID
}

// Values returns a fresh map of every template key.
func (c Context) Values() map[string]string {
	return map[string]string{
		KeyProjectName: c.projectName.String(),
		KeyProgramID:   c.programID,
	}
}

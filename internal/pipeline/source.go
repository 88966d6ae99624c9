package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/simonhull/anchor-init/internal/input"
)

// StepSource decides which steps a run executes.
type StepSource interface {
	Steps(ctx context.Context) ([]Step, error)
}

// FlagSource selects steps from command-line flags.
type FlagSource struct {
	All   bool     // --yes: every pipeline step
	Names []string // --steps: explicit step names
	Git   bool     // --git: add StepVCSInit
}

// Steps implements StepSource
func (f FlagSource) Steps(_ context.Context) ([]Step, error) {
	var steps []Step
	if f.All {
		steps = AllSteps()
	} else {
		parsed, err := ParseSteps(f.Names)
		if err != nil {
			return nil, err
		}
		steps = parsed
	}
	if f.Git && !slices.Contains(steps, StepVCSInit) {
		steps = append(steps, StepVCSInit)
	}
	return steps, nil
}

// Prompter is the interactive surface InteractiveSource needs.
// input.Terminal implements it.
type Prompter interface {
	MultiSelect(title string, options []input.Option) ([]string, error)
	Confirm(message string, defaultYes bool) (bool, error)
}

// InteractiveSource asks the user which steps to run.
type InteractiveSource struct {
	Prompter Prompter
	Catalog  *Catalog
}

// Steps implements StepSource
func (s InteractiveSource) Steps(_ context.Context) ([]Step, error) {
	prompter := s.Prompter
	if prompter == nil {
		prompter = input.Terminal{}
	}

	catalog := s.Catalog
	if catalog == nil {
		catalog = DefaultCatalog(CatalogConfig{})
	}

	var options []input.Option
	for _, step := range catalog.List() {
		if step == StepVCSInit {
			continue
		}
		cmd, _ := catalog.Get(step)
		options = append(options, input.Option{
			Label:    fmt.Sprintf("%-8s %s", step, cmd.Line),
			Value:    step.String(),
			Selected: true,
		})
	}

	values, err := prompter.MultiSelect("Which steps should run now?", options)
	if err != nil {
		return nil, err
	}
	steps, err := ParseSteps(values)
	if err != nil {
		return nil, err
	}

	git, err := prompter.Confirm("Initialize a git repository?", true)
	if err != nil {
		return nil, err
	}
	if git {
		steps = append(steps, StepVCSInit)
	}
	return steps, nil
}

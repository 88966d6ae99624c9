package pipeline

import (
	"fmt"
	"slices"
	"strings"
)

// Step identifies one toolchain action run against the generated project.
type Step string

const (
	StepKeys    Step = "keys"
	StepBuild   Step = "build"
	StepInstall Step = "install"
	StepDeploy  Step = "deploy"
	StepTest    Step = "test"
	StepVCSInit Step = "vcsInit"
)

// pipelineOrder is the order steps always execute in, whatever order they
// were selected in.
var pipelineOrder = []Step{StepKeys, StepBuild, StepInstall, StepDeploy, StepTest}

// AllSteps returns every pipeline step in execution order. StepVCSInit is
// not included; it runs as its own phase.
func AllSteps() []Step {
	return slices.Clone(pipelineOrder)
}

// String returns the step name
func (s Step) String() string {
	return string(s)
}

// ParseStep converts a user-supplied name into a Step.
func ParseStep(name string) (Step, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "keys", "keys-sync", "sync":
		return StepKeys, nil
	case "build":
		return StepBuild, nil
	case "install", "deps":
		return StepInstall, nil
	case "deploy":
		return StepDeploy, nil
	case "test", "tests":
		return StepTest, nil
	case "vcsinit", "vcs", "git":
		return StepVCSInit, nil
	}
	return "", fmt.Errorf("unknown step %q (valid: keys, build, install, deploy, test, git)", name)
}

// ParseSteps parses a list of step names, dropping duplicates.
func ParseSteps(names []string) ([]Step, error) {
	var steps []Step
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		step, err := ParseStep(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(steps, step) {
			steps = append(steps, step)
		}
	}
	return steps, nil
}

// ordered returns the pipeline steps of selected in execution order.
func ordered(selected []Step) []Step {
	var steps []Step
	for _, step := range pipelineOrder {
		if slices.Contains(selected, step) {
			steps = append(steps, step)
		}
	}
	return steps
}

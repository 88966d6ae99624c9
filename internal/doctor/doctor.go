// Package doctor checks that the toolchain a generated project needs is
// installed and recent enough.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/simonhull/anchor-init/internal/exec"
)

// Capturer runs a command without streaming output. *exec.Executor
// satisfies it.
type Capturer interface {
	Capture(ctx context.Context, command, dir string) (*exec.Result, error)
}

// Tool is one binary to check.
type Tool struct {
	Name       string // Binary name
	Version    string // Command printing the version
	Constraint string // semver constraint the version must satisfy
	Required   bool   // Missing optional tools are warnings
	Install    string // Where to get it
}

// Status is the outcome of checking one tool.
type Status int

const (
	StatusOK Status = iota
	StatusMissing
	StatusOutdated
	StatusUnknown // Found, but the version could not be parsed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusOutdated:
		return "outdated"
	case StatusUnknown:
		return "unknown version"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Check is the result for one tool.
type Check struct {
	Tool    Tool
	Status  Status
	Version string // Parsed version, empty when missing or unknown
	Output  string // Raw version output
}

// Healthy reports whether the check does not block project generation.
func (c Check) Healthy() bool {
	return c.Status == StatusOK || c.Status == StatusUnknown || !c.Tool.Required
}

// DefaultTools lists the Anchor toolchain for the given package manager.
func DefaultTools(packageManager string) []Tool {
	if packageManager == "" {
		packageManager = "yarn"
	}

	pm := Tool{
		Name:       packageManager,
		Version:    packageManager + " --version",
		Constraint: ">= 8.0.0",
		Required:   true,
		Install:    "https://nodejs.org/en/download",
	}
	if packageManager == "yarn" {
		pm.Constraint = ">= 1.22.0"
		pm.Install = "npm install -g yarn"
	}

	return []Tool{
		{
			Name:       "anchor",
			Version:    "anchor --version",
			Constraint: ">= 0.29.0",
			Required:   true,
			Install:    "https://www.anchor-lang.com/docs/installation",
		},
		{
			Name:       "solana",
			Version:    "solana --version",
			Constraint: ">= 1.17.0",
			Required:   true,
			Install:    "https://docs.solanalabs.com/cli/install",
		},
		{
			Name:       "node",
			Version:    "node --version",
			Constraint: ">= 18.0.0",
			Required:   true,
			Install:    "https://nodejs.org/en/download",
		},
		pm,
		{
			Name:       "git",
			Version:    "git --version",
			Constraint: ">= 2.0.0",
			Required:   false,
			Install:    "https://git-scm.com/downloads",
		},
	}
}

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z.-]+)?)`)

// ExtractVersion finds the first version number in tool output, e.g.
// "1.18.26" in "solana-cli 1.18.26 (src:d9f20e95; feat:3241752014)".
func ExtractVersion(output string) (string, bool) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Run checks every tool in order.
func Run(ctx context.Context, c Capturer, tools []Tool) ([]Check, error) {
	checks := make([]Check, 0, len(tools))
	for _, tool := range tools {
		check, err := checkTool(ctx, c, tool)
		if err != nil {
			return checks, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

func checkTool(ctx context.Context, c Capturer, tool Tool) (Check, error) {
	constraint, err := semver.NewConstraint(tool.Constraint)
	if err != nil {
		return Check{}, fmt.Errorf("invalid constraint %q for %s: %w", tool.Constraint, tool.Name, err)
	}

	check := Check{Tool: tool}
	res, err := c.Capture(ctx, tool.Version, "")
	if res != nil {
		check.Output = strings.TrimSpace(res.Stdout + res.Stderr)
	}
	if err != nil {
		if !errors.Is(err, exec.ErrCommandFailed) {
			return check, err
		}
		check.Status = StatusMissing
		return check, nil
	}

	raw, ok := ExtractVersion(check.Output)
	if !ok {
		check.Status = StatusUnknown
		return check, nil
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		check.Status = StatusUnknown
		return check, nil
	}

	check.Version = v.String()
	if constraint.Check(v) {
		check.Status = StatusOK
	} else {
		check.Status = StatusOutdated
	}
	return check, nil
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/simonhull/anchor-init/internal/exec"
	"github.com/simonhull/anchor-init/internal/output"
)

// Runner executes command lines. *exec.Executor satisfies it.
type Runner interface {
	Run(ctx context.Context, command, dir string) (*exec.Result, error)
	RunWithSpinner(ctx context.Context, message, command, dir string) (*exec.Result, error)
}

// Plan describes one pipeline invocation.
type Plan struct {
	Steps   []Step // Selected steps, any order; StepVCSInit implies InitGit
	InitGit bool   // Run the version control phase
	Dir     string // Project directory every command runs in
	Quiet   bool   // Show a spinner instead of streaming output
}

// Failure records a step that did not complete.
type Failure struct {
	Step      Step
	Err       error
	Diagnosis Diagnosis
}

// Report is the outcome of Run.
type Report struct {
	Executed []Step    // Completed successfully, in execution order
	Skipped  []Step    // Not run because an earlier step failed
	Failures []Failure // The aborting step and/or the version control phase
}

// Aborted reports whether a pipeline step failed.
func (r *Report) Aborted() bool {
	for _, f := range r.Failures {
		if f.Step != StepVCSInit {
			return true
		}
	}
	return false
}

// Failure returns the failure recorded for step, if any.
func (r *Report) Failure(step Step) (Failure, bool) {
	for _, f := range r.Failures {
		if f.Step == step {
			return f, true
		}
	}
	return Failure{}, false
}

// OK reports whether every requested step succeeded.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Err joins every failure into one error, or returns nil.
func (r *Report) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.Step, f.Err))
	}
	return errors.Join(errs...)
}

// Orchestrator runs plans against a catalog of step commands.
type Orchestrator struct {
	catalog *Catalog
	runner  Runner
}

// NewOrchestrator creates an orchestrator
func NewOrchestrator(catalog *Catalog, runner Runner) *Orchestrator {
	return &Orchestrator{
		catalog: catalog,
		runner:  runner,
	}
}

// Run executes the plan's steps sequentially. The first failure is diagnosed
// and every later step is skipped. The version control phase runs afterwards
// regardless of the outcome. The returned error is reserved for plans that
// reference steps missing from the catalog; step failures live in the Report.
func (o *Orchestrator) Run(ctx context.Context, plan Plan) (*Report, error) {
	steps := ordered(plan.Steps)
	initGit := plan.InitGit || slices.Contains(plan.Steps, StepVCSInit)

	check := steps
	if initGit {
		check = append(slices.Clone(steps), StepVCSInit)
	}
	for _, step := range check {
		if !o.catalog.Has(step) {
			return nil, fmt.Errorf("no command registered for step '%s'", step)
		}
	}

	report := &Report{}
	for i, step := range steps {
		if err := o.runStep(ctx, step, plan, report); err != nil {
			report.Skipped = append(report.Skipped, steps[i+1:]...)
			if len(report.Skipped) > 0 {
				output.Warn(fmt.Sprintf("Skipping remaining steps: %s", joinSteps(report.Skipped)))
			}
			break
		}
	}

	if initGit {
		_ = o.runStep(ctx, StepVCSInit, plan, report)
	}

	return report, nil
}

func (o *Orchestrator) runStep(ctx context.Context, step Step, plan Plan, report *Report) error {
	cmd, _ := o.catalog.Get(step)

	output.Action(fmt.Sprintf("Running %q...", cmd.Line))

	var (
		res *exec.Result
		err error
	)
	if plan.Quiet {
		res, err = o.runner.RunWithSpinner(ctx, cmd.Description, cmd.Line, plan.Dir)
	} else {
		res, err = o.runner.Run(ctx, cmd.Line, plan.Dir)
	}

	if err == nil {
		output.Success(fmt.Sprintf("%s completed.", cmd.Line))
		report.Executed = append(report.Executed, step)
		return nil
	}

	diag := diagnose(res, err)
	output.Error(fmt.Sprintf("%s failed: %s", cmd.Line, diag.Summary))
	var cmdErr *exec.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Hint != "" {
		output.Step("💡 " + cmdErr.Hint)
	}
	for _, advice := range diag.Advice {
		output.Step("💡 " + advice)
	}

	report.Failures = append(report.Failures, Failure{Step: step, Err: err, Diagnosis: diag})
	return err
}

// diagnose classifies whatever output and exit code are available.
func diagnose(res *exec.Result, err error) Diagnosis {
	out, code := "", -1
	if res != nil {
		out, code = res.Combined, res.ExitCode
	}
	var cmdErr *exec.CommandError
	if errors.As(err, &cmdErr) {
		if out == "" {
			out = cmdErr.Output
		}
		code = cmdErr.ExitCode
	}
	return Classify(out, code)
}

func joinSteps(steps []Step) string {
	s := ""
	for i, step := range steps {
		if i > 0 {
			s += ", "
		}
		s += step.String()
	}
	return s
}

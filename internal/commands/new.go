package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/simonhull/anchor-init/internal/generator"
	"github.com/simonhull/anchor-init/internal/input"
	"github.com/simonhull/anchor-init/internal/keygen"
	"github.com/simonhull/anchor-init/internal/naming"
	"github.com/simonhull/anchor-init/internal/output"
	"github.com/simonhull/anchor-init/internal/pipeline"
)

// newOptions are the flags shared by 'new' and the root command
type newOptions struct {
	yes    bool
	git    bool
	steps  []string
	dryRun bool
}

func bindNewFlags(cmd *cobra.Command, o *newOptions) {
	f := cmd.Flags()
	f.BoolVarP(&o.yes, "yes", "y", false, "Run every toolchain step without prompting")
	f.BoolVar(&o.git, "git", false, "Initialize a git repository with an initial commit")
	f.StringSliceVar(&o.steps, "steps", nil, "Steps to run: keys,build,install,deploy,test")
	f.BoolVar(&o.dryRun, "dry-run", false, "Show what would be created without writing anything")
	f.Bool("quiet", false, "Show a spinner instead of command output")
	f.Bool("strict", false, "Exit non-zero when a toolchain step fails")
	f.String("template-dir", "", "Render this directory instead of the built-in template")
	f.String("package-manager", "", "JavaScript package manager: yarn, npm or pnpm")
}

// newCmd creates the 'new' command for scaffolding projects
func newCmd(e *env) *cobra.Command {
	var opts newOptions

	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new Anchor project",
		Long: `Creates a new Anchor project with:
• Program crate under programs/<name>
• Generated program ID and target/deploy keypair
• TypeScript test scaffold and package.json scripts

The name is converted to snake_case. Afterwards you can run the toolchain
(keys sync, build, install, deploy, test) and initialize git.

Example:
  anchor-init new my-program
  anchor-init new my-program --yes --git --quiet
  anchor-init new my-program --steps build,test`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, e, args, &opts)
		},
	}

	bindNewFlags(cmd, &opts)
	return cmd
}

func runNew(cmd *cobra.Command, e *env, args []string, opts *newOptions) error {
	ctx := cmd.Context()

	cfg, err := e.loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Source != "" {
		output.Verbose(fmt.Sprintf("Using config file: %s", cfg.Source))
	}

	raw, err := projectNameArg(e, args)
	if err != nil {
		return err
	}

	res, err := naming.Normalize(raw)
	if res.Changed && res.Name != "" {
		output.Info(fmt.Sprintf("Converted project name to snake_case: %s", res.Name))
	}
	if err != nil {
		return err
	}
	name := res.Name

	target := filepath.Join(e.workDir, name.String())
	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("%w: directory %q already exists", generator.ErrTargetExists, name)
	}

	kp, err := e.keys.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate program id: %w", err)
	}
	programID := kp.ProgramID()

	gctx, err := generator.NewContext(name, programID)
	if err != nil {
		return err
	}

	output.Info(fmt.Sprintf("Creating project: %s", name))
	output.Info(fmt.Sprintf("Generated Program ID: %s", programID))
	if cfg.TemplateDir != "" {
		output.Verbose(fmt.Sprintf("Using template directory: %s", cfg.TemplateDir))
	}

	m := generator.NewMaterializer(generator.NewRenderer(gctx, generator.DefaultHelpers()))
	ops, err := m.Materialize(ctx, e.templateFS(cfg), target, generator.MaterializeOptions{
		DryRun: opts.dryRun,
		Writer: cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	output.Verbose(fmt.Sprintf("Planned %d operations", len(ops)))

	if opts.dryRun {
		output.Info("Dry run: nothing was written")
		return nil
	}

	if err := kp.WriteFile(keygen.KeypairPath(target, name.String())); err != nil {
		return err
	}
	output.Success("Templates copied successfully.")

	catalog := cfg.Catalog()
	steps, err := selectSteps(cmd, e, opts, catalog)
	if err != nil {
		return err
	}

	report, err := pipeline.NewOrchestrator(catalog, e.runner).Run(ctx, pipeline.Plan{
		Steps: steps,
		Dir:   target,
		Quiet: cfg.Quiet,
	})
	if err != nil {
		return err
	}

	showNextSteps(name, catalog, report)

	// A project that does not build is a failed generation
	if f, failed := report.Failure(pipeline.StepBuild); failed {
		return fmt.Errorf("anchor build failed: %w", f.Err)
	}
	if cfg.Strict && !report.OK() {
		return fmt.Errorf("toolchain steps failed: %w", report.Err())
	}
	return nil
}

func projectNameArg(e *env, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !e.interactive() {
		return "", errors.New("project name is required")
	}
	name, err := e.prompter.Prompt("Project name", "")
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", errors.New("project name is required")
	}
	return name, nil
}

// selectSteps uses flags when any step flag is set or stdin is not a
// terminal, and prompts otherwise.
func selectSteps(cmd *cobra.Command, e *env, opts *newOptions, catalog *pipeline.Catalog) ([]pipeline.Step, error) {
	var source pipeline.StepSource = pipeline.FlagSource{
		All:   opts.yes,
		Names: opts.steps,
		Git:   opts.git,
	}
	flagged := opts.yes || opts.git || len(opts.steps) > 0
	if !flagged && e.interactive() {
		source = pipeline.InteractiveSource{Prompter: e.prompter, Catalog: catalog}
	}

	steps, err := source.Steps(cmd.Context())
	if errors.Is(err, input.ErrAborted) {
		output.Warn("Step selection cancelled; no toolchain steps will run")
		return nil, nil
	}
	return steps, err
}

// showNextSteps prints the commands the user still has to run.
func showNextSteps(name naming.ProjectName, catalog *pipeline.Catalog, report *pipeline.Report) {
	output.Success(fmt.Sprintf("Project created at ./%s", name))

	var pending []string
	for _, step := range pipeline.AllSteps() {
		if slices.Contains(report.Executed, step) {
			continue
		}
		if cmd, ok := catalog.Get(step); ok {
			pending = append(pending, cmd.Line)
		}
	}

	if len(pending) > 0 {
		output.Header("Next steps:")
		output.Step(fmt.Sprintf("$ cd %s", name))
		for _, line := range pending {
			output.Step("$ " + line)
		}
	}

	if report.OK() {
		output.Success("You're all set!")
		return
	}
	if report.Aborted() {
		output.Warn("Some steps failed. Fix the problems above, then run the remaining commands.")
		return
	}
	output.Warn("Git initialization failed. Run it yourself once the problem above is fixed.")
}

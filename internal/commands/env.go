package commands

import (
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/anchor-init/internal/config"
	"github.com/simonhull/anchor-init/internal/doctor"
	"github.com/simonhull/anchor-init/internal/exec"
	"github.com/simonhull/anchor-init/internal/input"
	"github.com/simonhull/anchor-init/internal/keygen"
	"github.com/simonhull/anchor-init/internal/pipeline"
	"github.com/simonhull/anchor-init/internal/templates"
)

// prompter is every interactive prompt the CLI uses.
type prompter interface {
	pipeline.Prompter
	Prompt(message, defaultValue string) (string, error)
}

// env holds the collaborators commands talk to. Tests replace them.
type env struct {
	workDir     string // Parent of new projects; empty means the working directory
	configPaths []string
	templates   fs.FS
	keys        keygen.Generator
	runner      pipeline.Runner
	capturer    doctor.Capturer
	prompter    prompter
	interactive func() bool
}

func defaultEnv() *env {
	executor := exec.NewExecutor(nil)
	return &env{
		templates:   templates.Anchor(),
		keys:        keygen.NewGenerator(nil),
		runner:      executor,
		capturer:    executor,
		prompter:    input.Terminal{},
		interactive: input.IsInteractive,
	}
}

// loadConfig reads settings, honoring --config and the command's flags.
func (e *env) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	opts := config.Options{
		SearchPaths: e.configPaths,
		Flags:       cmd.Flags(),
	}
	if f := cmd.Flags().Lookup("config"); f != nil {
		opts.ConfigFile = f.Value.String()
	}
	return config.Load(opts)
}

func (e *env) templateFS(cfg *config.Config) fs.FS {
	if cfg.TemplateDir != "" {
		return os.DirFS(cfg.TemplateDir)
	}
	return e.templates
}

package pipeline

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
)

// Command is the command line bound to a step.
type Command struct {
	Step        Step
	Line        string // Shell command line, run in the project directory
	Description string // Shown while the step runs
}

// CatalogConfig parameterizes the default command lines.
type CatalogConfig struct {
	PackageManager string // yarn, npm or pnpm (defaults to yarn)
	DeployScript   string // package.json script for deploy (defaults to deploy:local)
	TestScript     string // package.json script for test (defaults to test:local)
	CommitMessage  string // initial commit message (defaults to "Initial commit")
}

// Catalog maps each step to exactly one command line.
type Catalog struct {
	mu       sync.RWMutex
	commands map[Step]Command
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		commands: make(map[Step]Command),
	}
}

// DefaultCatalog returns a catalog with the standard Anchor toolchain commands.
func DefaultCatalog(cfg CatalogConfig) *Catalog {
	pm := cfg.PackageManager
	if pm == "" {
		pm = "yarn"
	}
	deploy := cfg.DeployScript
	if deploy == "" {
		deploy = "deploy:local"
	}
	test := cfg.TestScript
	if test == "" {
		test = "test:local"
	}
	msg := cfg.CommitMessage
	if msg == "" {
		msg = "Initial commit"
	}

	c := NewCatalog()
	for _, cmd := range []Command{
		{Step: StepKeys, Line: "anchor keys sync", Description: "Syncing program keys"},
		{Step: StepBuild, Line: "anchor build", Description: "Building program"},
		{Step: StepInstall, Line: pm + " install", Description: "Installing dependencies"},
		{Step: StepDeploy, Line: pm + " run " + deploy, Description: "Deploying to local validator"},
		{Step: StepTest, Line: pm + " run " + test, Description: "Running tests"},
		{
			Step:        StepVCSInit,
			Line:        "git init && git add . && git commit -m " + quoteArg(msg),
			Description: "Initializing git repository",
		},
	} {
		// Steps are unique above, Register cannot fail
		_ = c.Register(cmd)
	}
	return c
}

// Register adds a command to the catalog
func (c *Catalog) Register(cmd Command) error {
	if cmd.Step == "" {
		return fmt.Errorf("cannot register command with empty step")
	}
	if strings.TrimSpace(cmd.Line) == "" {
		return fmt.Errorf("cannot register step '%s' with empty command line", cmd.Step)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.commands[cmd.Step]; exists {
		return fmt.Errorf("step '%s' is already registered", cmd.Step)
	}

	c.commands[cmd.Step] = cmd
	return nil
}

// Get retrieves the command for a step
func (c *Catalog) Get(step Step) (Command, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cmd, ok := c.commands[step]
	return cmd, ok
}

// Has checks if a step is registered
func (c *Catalog) Has(step Step) bool {
	_, ok := c.Get(step)
	return ok
}

// List returns the registered steps in execution order, StepVCSInit last.
func (c *Catalog) List() []Step {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var steps []Step
	for _, step := range append(AllSteps(), StepVCSInit) {
		if _, ok := c.commands[step]; ok {
			steps = append(steps, step)
		}
	}
	return steps
}

// quoteArg quotes s as a single argument for the platform shell.
func quoteArg(s string) string {
	if runtime.GOOS == "windows" {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

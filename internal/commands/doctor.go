package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/anchor-init/internal/doctor"
	"github.com/simonhull/anchor-init/internal/output"
)

func doctorCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the Anchor toolchain is installed",
		Long: `Checks anchor, solana, node, the configured package manager and git,
and compares their versions against the minimums a generated project needs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := e.loadConfig(cmd)
			if err != nil {
				return err
			}

			checks, err := doctor.Run(cmd.Context(), e.capturer, doctor.DefaultTools(cfg.PackageManager))
			if err != nil {
				return err
			}

			healthy := true
			for _, c := range checks {
				printCheck(c)
				if !c.Healthy() {
					healthy = false
				}
			}

			if !healthy {
				return errors.New("toolchain is incomplete")
			}
			output.Success("Toolchain looks good")
			return nil
		},
	}

	cmd.Flags().String("package-manager", "", "JavaScript package manager: yarn, npm or pnpm")
	return cmd
}

func printCheck(c doctor.Check) {
	name := c.Tool.Name
	switch c.Status {
	case doctor.StatusOK:
		output.Success(fmt.Sprintf("%s %s", name, c.Version))
	case doctor.StatusUnknown:
		output.Warn(fmt.Sprintf("%s found, but its version could not be determined", name))
		output.Verbose(c.Output)
	case doctor.StatusOutdated:
		output.Error(fmt.Sprintf("%s %s is too old (need %s)", name, c.Version, c.Tool.Constraint))
		output.Step("💡 " + c.Tool.Install)
	case doctor.StatusMissing:
		msg := fmt.Sprintf("%s not found", name)
		if c.Tool.Required {
			output.Error(msg)
		} else {
			output.Warn(msg + " (optional)")
		}
		output.Step("💡 " + c.Tool.Install)
	}
}

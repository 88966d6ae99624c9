package commands

import (
	"github.com/spf13/cobra"

	anchorinit "github.com/simonhull/anchor-init"
	"github.com/simonhull/anchor-init/internal/output"
)

// RootCmd creates and returns the root command for the anchor-init CLI.
// Given a project name it behaves exactly like 'anchor-init new'.
func RootCmd() *cobra.Command {
	return rootCmd(defaultEnv())
}

func rootCmd(e *env) *cobra.Command {
	var (
		verbose    bool
		configFile string
		opts       newOptions
	)

	cmd := &cobra.Command{
		Use:   "anchor-init [project-name]",
		Short: "Create a custom Anchor program template",
		Long: `anchor-init scaffolds a ready-to-build Anchor (Solana) program:
• Renders the project template with your program name
• Generates a fresh program ID and deploy keypair
• Optionally runs keys sync, build, install, deploy and test
• Optionally initializes a git repository

Example:
  anchor-init my-program --yes --git`,
		Version:       anchorinit.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runNew(cmd, e, args, &opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./anchor-init.yml)")
	bindNewFlags(cmd, &opts)

	cmd.AddCommand(newCmd(e))
	cmd.AddCommand(configCmd(e))
	cmd.AddCommand(doctorCmd(e))

	return cmd
}

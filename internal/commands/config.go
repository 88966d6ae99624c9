package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func configCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Prints the configuration anchor-init would use, merged from defaults,
anchor-init.yml and ANCHOR_INIT_* environment variables, as YAML.

The output is a valid anchor-init.yml:
  anchor-init config > anchor-init.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := e.loadConfig(cmd)
			if err != nil {
				return err
			}

			data, err := cfg.YAML()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Source != "" {
				fmt.Fprintf(out, "# source: %s\n", cfg.Source)
			}
			_, err = out.Write(data)
			return err
		},
	}
}

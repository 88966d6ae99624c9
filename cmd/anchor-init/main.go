package main

import (
	"os"

	"github.com/simonhull/anchor-init/internal/commands"
	"github.com/simonhull/anchor-init/internal/output"
)

func main() {
	if err := commands.RootCmd().Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}

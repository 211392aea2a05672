package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbruckmaier/redsim/cmd/bench"
	"github.com/tbruckmaier/redsim/cmd/repl"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "redsim",
		Short: "in-process key-value server emulation",
		Long: fmt.Sprintf(`redsim (v%s)

An in-process emulation of a Redis-shaped command surface,
built as a test double: same command names, same argument
shapes, equivalent results, no network and no persistence.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of redsim",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("redsim v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(repl.ReplCmd)
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

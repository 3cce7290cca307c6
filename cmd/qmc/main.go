package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pborges/qmc"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qmc",
		Short: "qmc minimizes Boolean functions and emits Verilog",
		Long: `qmc reduces a Boolean function given as minterms or maxterms plus
optional don't-cares to a minimal sum-of-products expression via the
Quine-McCluskey procedure, and emits an equivalent Verilog module.`,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newRunCmd(), newMinimizeCmd(), newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the qmc version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(qmc.Version())
		},
	}
}

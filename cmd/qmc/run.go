package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pborges/qmc"
	"github.com/pborges/qmc/internal/qm"
	"github.com/pborges/qmc/internal/tcase"
	"github.com/pborges/qmc/internal/verify"
	"github.com/pborges/qmc/internal/verilog"
)

var (
	runCaseDir  string
	runOutDir   string
	runVerify   bool
	runParallel int
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run <selection>",
		Short: "Run numbered test cases and emit Verilog for each",
		Long: `The run command loads test<N>.txt case files for every case in the
selection expression, minimizes each function, prints the prime
implicants and the minimal expression, and writes an equivalent
boolean_function_<N>.v module.

Selections combine numbers and ranges: qmc run 1 3-5 7

A failing case is reported and does not stop the remaining cases.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFunc,
	}
	addEngineFlags(runCmd.Flags())
	runCmd.Flags().StringVarP(&runCaseDir, "dir", "d", "test_cases", "directory containing test<N>.txt case files")
	runCmd.Flags().StringVarP(&runOutDir, "out", "o", ".", "directory to write generated Verilog modules")
	return runCmd
}

func addEngineFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&runVerify, "verify", false, "prove each result equivalent to its input with a SAT check")
	fs.IntVar(&runParallel, "parallelism", 1, "worker count for the combination phase")
}

func runFunc(cmd *cobra.Command, args []string) error {
	cases, err := tcase.ParseSelection(strings.Join(args, " "))
	if err != nil {
		return err
	}
	log.Infof("processing %d case(s)", len(cases))

	var failed []int
	for _, n := range cases {
		if err := runCase(n); err != nil {
			log.WithField("case", n).Error(err)
			failed = append(failed, n)
		}
	}

	log.Infof("%d succeeded, %d failed", len(cases)-len(failed), len(failed))
	if len(failed) > 0 {
		return errors.Errorf("cases failed: %v", failed)
	}
	return nil
}

func runCase(n int) error {
	spec, err := tcase.LoadCase(tcase.CasePath(runCaseDir, n))
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"numvars": spec.NumVars,
		"mode":    spec.Mode.String(),
		"terms":   len(spec.Terms),
	}).Debugf("loaded case %d", n)

	res, err := qm.Minimize(spec, qm.WithParallelism(runParallel))
	if err != nil {
		return errors.Wrapf(err, "minimize case %d", n)
	}
	printReport(n, spec, res)

	if runVerify {
		if err := verify.Cover(spec, res.Cover); err != nil {
			return errors.Wrapf(err, "verify case %d", n)
		}
		log.WithField("case", n).Info("SAT equivalence check passed")
	}

	module := verilog.MakeModule(verilog.Config{
		Name:   fmt.Sprintf("boolean_function_%d", n),
		Header: []string{fmt.Sprintf("generated by qmc %s", qmc.Version())},
	}, res.Cover, spec.NumVars)

	outPath := filepath.Join(runOutDir, fmt.Sprintf("boolean_function_%d.v", n))
	if err := os.WriteFile(outPath, []byte(module), 0644); err != nil {
		return errors.Wrapf(err, "write %s", outPath)
	}
	fmt.Printf("\nVerilog written to %s\n", outPath)
	return nil
}

func printReport(n int, spec qm.Spec, res *qm.Result) {
	fmt.Printf("=== CASE %d ===\n", n)

	fmt.Println("Prime implicants:")
	for i, pi := range res.Primes {
		covers := pi.Covered().ToSlice()
		sort.Ints(covers)
		fmt.Printf("  PI%d: %s covers %v\n", i+1, pi.Pattern(), covers)
	}

	fmt.Printf("Essential prime implicants: %d\n", res.Essentials)
	fmt.Println("Cover:")
	for _, t := range res.Cover {
		fmt.Printf("  %s\n", t.Pattern())
	}
	fmt.Printf("F = %s\n", res.Expression)
}

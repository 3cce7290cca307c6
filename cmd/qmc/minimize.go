package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pborges/qmc/internal/qm"
	"github.com/pborges/qmc/internal/verify"
	"github.com/pborges/qmc/internal/verilog"
)

var (
	minNumVars   int
	minMinterms  []int
	minMaxterms  []int
	minDontCares []int
	minPOS       bool
	minModule    string
)

func newMinimizeCmd() *cobra.Command {
	minimizeCmd := &cobra.Command{
		Use:   "minimize",
		Short: "Minimize a function given directly on the command line",
		Long: `Minimize a single function without a case file:

  qmc minimize -n 4 --minterms 0,1,2,5,6,7,8,9,10,14
  qmc minimize -n 3 --maxterms 0,7 --dont-cares 2
  qmc minimize -n 3 --minterms 1,3,5 --pos`,
		RunE: minimizeFunc,
	}
	addEngineFlags(minimizeCmd.Flags())
	minimizeCmd.Flags().IntVarP(&minNumVars, "numvars", "n", 0, "number of variables (1-20)")
	minimizeCmd.Flags().IntSliceVarP(&minMinterms, "minterms", "m", nil, "minterm indices")
	minimizeCmd.Flags().IntSliceVarP(&minMaxterms, "maxterms", "M", nil, "maxterm indices")
	minimizeCmd.Flags().IntSliceVarP(&minDontCares, "dont-cares", "D", nil, "don't-care indices")
	minimizeCmd.Flags().BoolVar(&minPOS, "pos", false, "render a product-of-sums expression")
	minimizeCmd.Flags().StringVar(&minModule, "module", "", "also print a Verilog module with this name")
	if err := minimizeCmd.MarkFlagRequired("numvars"); err != nil {
		panic(err)
	}
	return minimizeCmd
}

func minimizeFunc(cmd *cobra.Command, args []string) error {
	if len(minMinterms) > 0 && len(minMaxterms) > 0 {
		return errors.New("--minterms and --maxterms are mutually exclusive")
	}
	spec := qm.Spec{
		NumVars:   minNumVars,
		Terms:     minMinterms,
		DontCares: minDontCares,
		Mode:      qm.Minterm,
	}
	if len(minMaxterms) > 0 {
		spec.Terms = minMaxterms
		spec.Mode = qm.Maxterm
	}

	if minPOS {
		return minimizePOS(spec)
	}

	res, err := qm.Minimize(spec, qm.WithParallelism(runParallel))
	if err != nil {
		return err
	}
	for _, t := range res.Cover {
		fmt.Println(t.Pattern())
	}
	fmt.Printf("F = %s\n", res.Expression)

	if runVerify {
		if err := verify.Cover(spec, res.Cover); err != nil {
			return err
		}
		fmt.Println("SAT equivalence check passed")
	}
	if minModule != "" {
		fmt.Print(verilog.MakeModule(verilog.Config{Name: minModule}, res.Cover, spec.NumVars))
	}
	return nil
}

// minimizePOS minimizes the function's zero set and renders its cover
// as a product of sums by De Morgan.
func minimizePOS(spec qm.Spec) error {
	flipped := spec
	if spec.Mode == qm.Minterm {
		flipped.Mode = qm.Maxterm
	} else {
		flipped.Mode = qm.Minterm
	}
	res, err := qm.Minimize(flipped, qm.WithParallelism(runParallel))
	if err != nil {
		return err
	}
	for _, t := range res.Cover {
		fmt.Println(t.Pattern())
	}
	fmt.Printf("F = %s\n", qm.FormatPOS(res.Cover, spec.NumVars))
	return nil
}

package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bilaaaal0/Compiler-Construction-Project/grammar"
	spec "github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar"
	"github.com/bilaaaal0/Compiler-Construction-Project/workbook"
)

func init() {
	cmd := &cobra.Command{
		Use:     "all [grammar file]",
		Short:   "Check a grammar against every parser class",
		Example: "  gramcheck all grammar.txt",
		Args:    cobra.MaximumNArgs(1),
		RunE:    runAll,
	}
	cmd.Flags().Int("state-limit", 0, "abort a class when its automaton exceeds this many states (0 = no limit)")
	rootCmd.AddCommand(cmd)
}

// runAll analyzes the grammar against all five classes concurrently. A
// rejected class is expected content here, not a failure; only fatal errors
// make the command fail.
func runAll(cmd *cobra.Command, args []string) (retErr error) {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}
	defer func() {
		annotateSpecErrors(retErr, grmPath)
	}()

	g, err := readGrammar(grmPath)
	if err != nil {
		return err
	}

	var opts []grammar.Option
	if limit, _ := cmd.Flags().GetInt("state-limit"); limit > 0 {
		opts = append(opts, grammar.WithStateLimit(limit))
	}

	type result struct {
		slug string
		rep  *spec.ClassReport
		err  error
	}

	results := make([]result, len(classCommands))
	var wg sync.WaitGroup
	for i, c := range classCommands {
		i, c := i, c
		wg.Add(1)
		go func() {
			defer wg.Done()
			rep, err := grammar.Analyze(g, c.class, opts...)
			results[i] = result{
				slug: c.use,
				rep:  rep,
				err:  err,
			}
		}()
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			return r.err
		}
	}

	for _, r := range results {
		err = writeReport(os.Stdout, r.rep)
		if err != nil {
			return err
		}
		fmt.Println()
	}

	pterm.Info.Println("Summary")
	for _, r := range results {
		printVerdict(r.rep)
		outPath := defaultWorkbookPath(grmPath, r.slug)
		err = workbook.Save(outPath, r.rep)
		if err != nil {
			return err
		}
		pterm.Info.Printf("workbook written to %v\n", outPath)
	}

	return nil
}

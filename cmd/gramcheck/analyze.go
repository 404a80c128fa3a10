package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	verr "github.com/bilaaaal0/Compiler-Construction-Project/error"
	"github.com/bilaaaal0/Compiler-Construction-Project/grammar"
	spec "github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar"
	"github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar/parser"
	"github.com/bilaaaal0/Compiler-Construction-Project/workbook"
)

var classCommands = []struct {
	use   string
	class grammar.Class
}{
	{"lr0", grammar.ClassLR0},
	{"slr", grammar.ClassSLR1},
	{"lalr", grammar.ClassLALR1},
	{"clr", grammar.ClassCLR1},
	{"ll1", grammar.ClassLL1},
}

func init() {
	for _, c := range classCommands {
		c := c
		cmd := &cobra.Command{
			Use:     fmt.Sprintf("%v [grammar file]", c.use),
			Short:   fmt.Sprintf("Check whether a grammar is %v", c.class),
			Example: fmt.Sprintf("  gramcheck %v grammar.txt -o analysis.xlsx", c.use),
			Args:    cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAnalyze(cmd, args, c.use, c.class)
			},
		}
		cmd.Flags().StringP("output", "o", "", "workbook output path (default <grammar-base>-<class>.xlsx)")
		cmd.Flags().Int("state-limit", 0, "abort when the automaton exceeds this many states (0 = no limit)")
		cmd.Flags().Bool("resolve-shift", false, "resolve shift/reduce conflicts in favor of shift in the emitted table")
		rootCmd.AddCommand(cmd)
	}
}

func runAnalyze(cmd *cobra.Command, args []string, slug string, class grammar.Class) (retErr error) {
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
	if resolve, _ := cmd.Flags().GetBool("resolve-shift"); resolve {
		opts = append(opts, grammar.ResolveShift())
	}

	rep, err := grammar.Analyze(g, class, opts...)
	if err != nil {
		return err
	}

	err = writeReport(os.Stdout, rep)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = defaultWorkbookPath(grmPath, slug)
	}
	err = workbook.Save(outPath, rep)
	if err != nil {
		return err
	}
	pterm.Info.Printf("workbook written to %v\n", outPath)

	printVerdict(rep)
	if !rep.Accepted {
		return fmt.Errorf("%v: %w", class, errGrammarRejected)
	}
	return nil
}

func printVerdict(rep *spec.ClassReport) {
	if rep.Accepted {
		pterm.Success.Printf("the grammar is %v\n", rep.Class)
		return
	}
	var count int
	switch {
	case rep.LR != nil:
		count = len(rep.LR.Conflicts)
	case rep.LL != nil:
		count = len(rep.LL.Conflicts)
	}
	if count == 1 {
		pterm.Error.Printf("the grammar is not %v: 1 conflict\n", rep.Class)
	} else {
		pterm.Error.Printf("the grammar is not %v: %v conflicts\n", rep.Class, count)
	}
}

// readGrammar parses and builds the grammar at path, or stdin when path is
// empty.
func readGrammar(path string) (*grammar.Grammar, error) {
	var src io.Reader
	if path == "" {
		src = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open the grammar %v: %w", path, err)
		}
		defer f.Close()
		src = f
	}

	ast, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}

	b := &grammar.GrammarBuilder{
		AST: ast,
	}
	return b.Build()
}

// annotateSpecErrors fills the source location of grammar errors so the
// printed message names the file the way the parser saw it.
func annotateSpecErrors(err error, grmPath string) {
	specErrs, ok := err.(verr.SpecErrors)
	if !ok {
		return
	}
	for _, e := range specErrs {
		if grmPath != "" {
			e.FilePath = grmPath
			e.SourceName = grmPath
		} else {
			e.SourceName = "stdin"
		}
	}
}

func defaultWorkbookPath(grmPath string, slug string) string {
	if grmPath == "" {
		return fmt.Sprintf("grammar-%v.xlsx", slug)
	}
	base := filepath.Base(grmPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(grmPath), fmt.Sprintf("%v-%v.xlsx", base, slug))
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// errGrammarRejected marks an analysis that completed but found conflicts.
// It maps to exit status 1; fatal errors map to 2.
var errGrammarRejected = errors.New("the grammar was rejected")

var rootFlags = struct {
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "gramcheck",
	Short: "Check a grammar against the LR and LL parser classes",
	Long: `gramcheck analyzes a context-free grammar against the LR(0), SLR(1),
LALR(1), CLR(1), and LL(1) parser classes. For each class it builds the full
automaton or predictive table, reports every conflict, and writes the
analysis as an xlsx workbook.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initDisplay()
		setUpTracing(*rootFlags.trace)
	},
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
}

// Execute runs the root command and maps the outcome to an exit status:
// 0 accepted, 1 rejected, 2 fatal.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	if errors.Is(err, errGrammarRejected) {
		return 1
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
	return 2
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Success.Prefix = pterm.Prefix{
		Text:  "  OK",
		Style: pterm.NewStyle(pterm.BgGreen, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setUpTracing(level string) {
	gtrace.SyntaxTracer = gologadapter.New()
	l := tracing.TraceLevelFromString(level)
	for _, key := range []string{"gramcheck.grammar", "gramcheck.workbook"} {
		tracing.Select(key).SetTraceLevel(l)
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bilaaaal0/Compiler-Construction-Project/grammar"
	spec "github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar"
)

func init() {
	cmd := &cobra.Command{
		Use:     "shell <grammar file>",
		Short:   "Explore a grammar interactively",
		Example: "  gramcheck shell grammar.txt",
		Args:    cobra.ExactArgs(1),
		RunE:    runShell,
	}
	rootCmd.AddCommand(cmd)
}

// shellSession holds one loaded grammar plus lazily computed analyses.
type shellSession struct {
	gram    *grammar.Grammar
	sets    *grammar.Sets
	reports map[grammar.Class]*spec.ClassReport
}

func runShell(cmd *cobra.Command, args []string) (retErr error) {
	grmPath := args[0]
	defer func() {
		annotateSpecErrors(retErr, grmPath)
	}()

	g, err := readGrammar(grmPath)
	if err != nil {
		return err
	}
	sets, err := grammar.ComputeSets(g)
	if err != nil {
		return err
	}
	session := &shellSession{
		gram:    g,
		sets:    sets,
		reports: map[grammar.Class]*spec.ClassReport{},
	}

	rl, err := readline.New("gramcheck> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Printf("loaded grammar %v from %v\n", g.Name(), grmPath)
	pterm.Info.Println("commands: grammar, nullable X, first X, follow X, run CLASS, conflicts CLASS, quit")

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if session.execute(line) {
			break
		}
	}
	fmt.Println("bye")
	return nil
}

// execute runs one shell command line and reports whether the session is
// over.
func (s *shellSession) execute(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "grammar":
		for _, text := range s.gram.ProductionTexts() {
			fmt.Println(text)
		}
	case "nullable":
		if len(args) != 1 {
			pterm.Error.Println("usage: nullable X")
			break
		}
		nullable, ok := s.sets.Nullable(args[0])
		if !ok {
			pterm.Error.Printf("%v is not a non-terminal of the grammar\n", args[0])
			break
		}
		fmt.Printf("NULLABLE(%v) = %v\n", args[0], nullable)
	case "first":
		if len(args) != 1 {
			pterm.Error.Println("usage: first X")
			break
		}
		syms, empty, ok := s.sets.First(args[0])
		if !ok {
			pterm.Error.Printf("%v is not a non-terminal of the grammar\n", args[0])
			break
		}
		if empty {
			syms = append(syms, "ε")
		}
		fmt.Printf("FIRST(%v) = { %v }\n", args[0], strings.Join(syms, ", "))
	case "follow":
		if len(args) != 1 {
			pterm.Error.Println("usage: follow X")
			break
		}
		syms, eof, ok := s.sets.Follow(args[0])
		if !ok {
			pterm.Error.Printf("%v is not a non-terminal of the grammar\n", args[0])
			break
		}
		if eof {
			syms = append(syms, "$")
		}
		fmt.Printf("FOLLOW(%v) = { %v }\n", args[0], strings.Join(syms, ", "))
	case "run":
		rep, ok := s.analyze(args)
		if !ok {
			break
		}
		if err := writeReport(os.Stdout, rep); err != nil {
			pterm.Error.Println(err.Error())
			break
		}
		printVerdict(rep)
	case "conflicts":
		rep, ok := s.analyze(args)
		if !ok {
			break
		}
		s.printConflicts(rep)
	default:
		pterm.Error.Printf("unknown command: %v\n", cmd)
	}
	return false
}

// analyze resolves the class argument and returns the cached or freshly
// computed report.
func (s *shellSession) analyze(args []string) (*spec.ClassReport, bool) {
	if len(args) != 1 {
		pterm.Error.Printf("usage: run|conflicts CLASS, where CLASS is one of %v\n", strings.Join(classSlugs(), ", "))
		return nil, false
	}
	var class grammar.Class
	found := false
	for _, c := range classCommands {
		if c.use == args[0] {
			class = c.class
			found = true
			break
		}
	}
	if !found {
		pterm.Error.Printf("unknown class %v, expected one of %v\n", args[0], strings.Join(classSlugs(), ", "))
		return nil, false
	}

	if rep, ok := s.reports[class]; ok {
		return rep, true
	}
	rep, err := grammar.Analyze(s.gram, class)
	if err != nil {
		pterm.Error.Println(err.Error())
		return nil, false
	}
	s.reports[class] = rep
	return rep, true
}

func (s *shellSession) printConflicts(rep *spec.ClassReport) {
	switch {
	case rep.LR != nil:
		if len(rep.LR.Conflicts) == 0 {
			pterm.Success.Printf("no conflicts, the grammar is %v\n", rep.Class)
			return
		}
		for _, c := range rep.LR.Conflicts {
			actions := make([]string, len(c.Actions))
			for i, a := range c.Actions {
				actions[i] = a.Cell()
			}
			term := rep.LR.Terminals[c.Symbol].Name
			fmt.Printf("state %v on %v: %v (%v)\n", c.State, term, strings.Join(actions, " / "), c.Type)
		}
	case rep.LL != nil:
		if len(rep.LL.Conflicts) == 0 {
			pterm.Success.Printf("no conflicts, the grammar is %v\n", rep.Class)
			return
		}
		for _, c := range rep.LL.Conflicts {
			nonTerm := rep.LL.NonTerminals[c.NonTerminal].Name
			term := rep.LL.Terminals[c.Terminal].Name
			prods := make([]string, len(c.Productions))
			for i, p := range c.Productions {
				prods[i] = fmt.Sprintf("%v", p)
			}
			fmt.Printf("M[%v, %v]: productions %v\n", nonTerm, term, strings.Join(prods, " / "))
		}
	}
}

func classSlugs() []string {
	slugs := make([]string, len(classCommands))
	for i, c := range classCommands {
		slugs[i] = c.use
	}
	return slugs
}

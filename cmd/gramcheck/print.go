package main

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	spec "github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar"
)

func writeReport(w io.Writer, rep *spec.ClassReport) error {
	if rep.LR != nil {
		return writeLRReport(w, rep)
	}
	return writeLLReport(w, rep)
}

const lrReportTemplate = `# {{ .Class }}: {{ .GrammarName }}

{{ printConflictSummary . }}

# Terminals

{{ range slice .LR.Terminals 1 -}}
{{ printTerminal . }}
{{ end }}
# Productions

{{ range slice .LR.Productions 1 -}}
{{ printProduction . }}
{{ end }}
{{- if .LR.Merge }}
# Merge

CLR states: {{ .LR.Merge.CLRStateCount }}
LALR states: {{ .LR.Merge.LALRStateCount }}
{{ end }}
# States
{{ range .LR.States }}
## State {{ .Number }}{{ if .MergedFrom }} (merged from {{ printInts .MergedFrom }}){{ end }}

{{ range .Kernel -}}
{{ printItem . }}
{{ end }}
{{ range .Shift -}}
{{ printShift . }}
{{ end -}}
{{ range .Reduce -}}
{{ printReduce . }}
{{ end -}}
{{ range .GoTo -}}
{{ printGoTo . }}
{{ end }}
{{- range .Conflicts -}}
{{ printConflict . }}
{{ end -}}
{{ end }}`

func writeLRReport(w io.Writer, rep *spec.ClassReport) error {
	lr := rep.LR

	termName := func(sym int) string {
		if lr.Terminals[sym].Name == "<eof>" {
			return "$"
		}
		return lr.Terminals[sym].Name
	}

	nonTermName := func(sym int) string {
		return lr.NonTerminals[sym].Name
	}

	fns := template.FuncMap{
		"printConflictSummary": func(rep *spec.ClassReport) string {
			switch len(rep.LR.Conflicts) {
			case 0:
				return fmt.Sprintf("No conflict. The grammar is %v.", rep.Class)
			case 1:
				return fmt.Sprintf("1 conflict. The grammar is not %v.", rep.Class)
			default:
				return fmt.Sprintf("%v conflicts. The grammar is not %v.", len(rep.LR.Conflicts), rep.Class)
			}
		},
		"printTerminal": func(term spec.Terminal) string {
			return fmt.Sprintf("%4v %v", term.Number, termName(term.Number))
		},
		"printProduction": func(prod spec.Production) string {
			var b strings.Builder
			fmt.Fprintf(&b, "%v →", nonTermName(prod.LHS))
			if len(prod.RHS) > 0 {
				for _, e := range prod.RHS {
					if e > 0 {
						fmt.Fprintf(&b, " %v", termName(e))
					} else {
						fmt.Fprintf(&b, " %v", nonTermName(e*-1))
					}
				}
			} else {
				fmt.Fprintf(&b, " ε")
			}
			return fmt.Sprintf("%4v %v", prod.Number, b.String())
		},
		"printItem": func(item spec.Item) string {
			prod := lr.Productions[item.Production]

			var b strings.Builder
			fmt.Fprintf(&b, "%v →", nonTermName(prod.LHS))
			for i, e := range prod.RHS {
				if i == item.Dot {
					fmt.Fprintf(&b, " ・")
				}
				if e > 0 {
					fmt.Fprintf(&b, " %v", termName(e))
				} else {
					fmt.Fprintf(&b, " %v", nonTermName(e*-1))
				}
			}
			if item.Dot >= len(prod.RHS) {
				fmt.Fprintf(&b, " ・")
			}
			if len(item.LookAhead) > 0 {
				las := make([]string, len(item.LookAhead))
				for i, la := range item.LookAhead {
					las[i] = termName(la)
				}
				fmt.Fprintf(&b, ", %v", strings.Join(las, "/"))
			}
			return fmt.Sprintf("%4v %v", prod.Number, b.String())
		},
		"printShift": func(tran spec.Transition) string {
			return fmt.Sprintf("shift  %4v on %v", tran.State, termName(tran.Symbol))
		},
		"printReduce": func(reduce spec.Reduce) string {
			var b strings.Builder
			fmt.Fprintf(&b, "%v", termName(reduce.LookAhead[0]))
			for _, a := range reduce.LookAhead[1:] {
				fmt.Fprintf(&b, ", %v", termName(a))
			}
			if reduce.Production == 1 {
				return fmt.Sprintf("accept      on %v", b.String())
			}
			return fmt.Sprintf("reduce %4v on %v", reduce.Production, b.String())
		},
		"printGoTo": func(tran spec.Transition) string {
			return fmt.Sprintf("goto   %4v on %v", tran.State, nonTermName(tran.Symbol))
		},
		"printConflict": func(c spec.Conflict) string {
			actions := make([]string, len(c.Actions))
			for i, a := range c.Actions {
				actions[i] = a.Cell()
			}
			text := fmt.Sprintf("%v conflict on %v: %v", c.Type, termName(c.Symbol), strings.Join(actions, " / "))
			if c.Adopted != nil {
				text += fmt.Sprintf(" (adopted %v)", c.Adopted.Cell())
			}
			return text
		},
		"printInts": func(nums []int) string {
			texts := make([]string, len(nums))
			for i, n := range nums {
				texts[i] = fmt.Sprintf("%v", n)
			}
			return strings.Join(texts, ", ")
		},
	}

	tmpl, err := template.New("lr").Funcs(fns).Parse(lrReportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, rep)
}

const llReportTemplate = `# {{ .Class }}: {{ .GrammarName }}

{{ printConflictSummary . }}
{{ if .LL.Rewritten }}
The grammar was rewritten by left-recursion elimination and left factoring.
{{ end }}
# Terminals

{{ range slice .LL.Terminals 1 -}}
{{ printTerminal . }}
{{ end }}
# Productions

{{ range slice .LL.Productions 1 -}}
{{ printProduction . }}
{{ end }}
# NULLABLE

{{ printNullable . }}

# FIRST

{{ range .LL.First -}}
{{ printFirst . }}
{{ end }}
# FOLLOW

{{ range .LL.Follow -}}
{{ printFollow . }}
{{ end }}
# Conflicts
{{ if .LL.Conflicts }}
{{ range .LL.Conflicts -}}
{{ printConflict . }}
{{ end -}}
{{ else }}
No conflict.
{{ end }}`

func writeLLReport(w io.Writer, rep *spec.ClassReport) error {
	ll := rep.LL

	termName := func(sym int) string {
		if ll.Terminals[sym].Name == "<eof>" {
			return "$"
		}
		return ll.Terminals[sym].Name
	}

	nonTermName := func(sym int) string {
		return ll.NonTerminals[sym].Name
	}

	prodText := func(num int) string {
		prod := ll.Productions[num]
		var b strings.Builder
		fmt.Fprintf(&b, "%v →", nonTermName(prod.LHS))
		if len(prod.RHS) > 0 {
			for _, e := range prod.RHS {
				if e > 0 {
					fmt.Fprintf(&b, " %v", termName(e))
				} else {
					fmt.Fprintf(&b, " %v", nonTermName(e*-1))
				}
			}
		} else {
			fmt.Fprintf(&b, " ε")
		}
		return b.String()
	}

	fns := template.FuncMap{
		"printConflictSummary": func(rep *spec.ClassReport) string {
			switch len(rep.LL.Conflicts) {
			case 0:
				return fmt.Sprintf("No conflict. The grammar is %v.", rep.Class)
			case 1:
				return fmt.Sprintf("1 conflict. The grammar is not %v.", rep.Class)
			default:
				return fmt.Sprintf("%v conflicts. The grammar is not %v.", len(rep.LL.Conflicts), rep.Class)
			}
		},
		"printTerminal": func(term spec.Terminal) string {
			return fmt.Sprintf("%4v %v", term.Number, termName(term.Number))
		},
		"printProduction": func(prod spec.Production) string {
			return fmt.Sprintf("%4v %v", prod.Number, prodText(prod.Number))
		},
		"printNullable": func(rep *spec.ClassReport) string {
			if len(rep.LL.Nullable) == 0 {
				return "none"
			}
			texts := make([]string, len(rep.LL.Nullable))
			for i, num := range rep.LL.Nullable {
				texts[i] = nonTermName(num)
			}
			return strings.Join(texts, ", ")
		},
		"printFirst": func(set spec.SymbolSet) string {
			var elems []string
			for _, sym := range set.Symbols {
				elems = append(elems, termName(sym))
			}
			if set.Empty {
				elems = append(elems, "ε")
			}
			return fmt.Sprintf("FIRST(%v) = { %v }", nonTermName(set.Symbol), strings.Join(elems, ", "))
		},
		"printFollow": func(set spec.SymbolSet) string {
			var elems []string
			for _, sym := range set.Symbols {
				elems = append(elems, termName(sym))
			}
			if set.EOF {
				elems = append(elems, "$")
			}
			return fmt.Sprintf("FOLLOW(%v) = { %v }", nonTermName(set.Symbol), strings.Join(elems, ", "))
		},
		"printConflict": func(c spec.LLConflict) string {
			prods := make([]string, len(c.Productions))
			for i, p := range c.Productions {
				prods[i] = prodText(p)
			}
			return fmt.Sprintf("M[%v, %v]: %v", nonTermName(c.NonTerminal), termName(c.Terminal), strings.Join(prods, " / "))
		},
	}

	tmpl, err := template.New("ll").Funcs(fns).Parse(llReportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, rep)
}

package workbook

import (
	"fmt"
	"strings"

	spec "github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar"
)

func (wb *workbook) renderResult() error {
	s := wb.sheet("Result")

	s.set(1, 1, fmt.Sprintf("%v Parser Analysis Result", wb.rep.Class))
	s.style(1, 1, wb.boldStyle)

	s.set(1, 3, fmt.Sprintf("Is %v?", wb.rep.Class))
	s.style(1, 3, wb.boldStyle)
	if wb.rep.Accepted {
		s.set(2, 3, "YES")
	} else {
		s.set(2, 3, "NO")
	}

	row := 5
	s.set(1, row, "Grammar:")
	s.style(1, row, wb.boldStyle)
	s.set(2, row, wb.rep.GrammarName)
	row++
	s.set(1, row, "Fingerprint:")
	s.style(1, row, wb.boldStyle)
	s.set(2, row, wb.rep.Fingerprint)
	row++

	if lr := wb.rep.LR; lr != nil {
		s.set(1, row, "States:")
		s.style(1, row, wb.boldStyle)
		s.set(2, row, len(lr.States))
		row++
		s.set(1, row, "Conflicts:")
		s.style(1, row, wb.boldStyle)
		s.set(2, row, len(lr.Conflicts))
		row += 2
		row = wb.renderLRConflictRows(s, row)
	}
	if ll := wb.rep.LL; ll != nil {
		s.set(1, row, "Conflicts:")
		s.style(1, row, wb.boldStyle)
		s.set(2, row, len(ll.Conflicts))
		row += 2
		row = wb.renderLLConflictRows(s, row)
	}

	s.colWidth(1, 5, 24)
	return s.err
}

func (wb *workbook) renderLRConflictRows(s *sheetWriter, row int) int {
	lr := wb.rep.LR
	if len(lr.Conflicts) == 0 {
		s.set(1, row, fmt.Sprintf("No conflicts. The grammar is %v.", wb.rep.Class))
		return row + 1
	}

	for col, h := range []string{"State", "Symbol", "Type", "Actions", "Adopted"} {
		s.set(col+1, row, h)
		s.style(col+1, row, wb.headerStyle)
	}
	row++
	for _, c := range lr.Conflicts {
		s.set(1, row, c.State)
		s.set(2, row, wb.terminalName(c.Symbol))
		s.set(3, row, c.Type)
		s.set(4, row, joinActions(c.Actions))
		if c.Adopted != nil {
			s.set(5, row, c.Adopted.Cell())
		}
		row++
	}
	return row
}

func (wb *workbook) renderLLConflictRows(s *sheetWriter, row int) int {
	ll := wb.rep.LL
	if len(ll.Conflicts) == 0 {
		s.set(1, row, "No conflicts. The grammar is LL(1).")
		return row + 1
	}

	for col, h := range []string{"Non-Terminal", "Terminal", "Productions"} {
		s.set(col+1, row, h)
		s.style(col+1, row, wb.headerStyle)
	}
	row++
	for _, c := range ll.Conflicts {
		s.set(1, row, wb.nonTerminalName(c.NonTerminal))
		s.set(2, row, wb.terminalName(c.Terminal))
		texts := make([]string, len(c.Productions))
		for i, p := range c.Productions {
			texts[i] = wb.productionText(p)
		}
		s.set(3, row, strings.Join(texts, conflictSeparator))
		row++
	}
	return row
}

func (wb *workbook) renderComparison() error {
	s := wb.sheet("CLR vs LALR")
	merge := wb.rep.LR.Merge

	for col, h := range []string{"Metric", "CLR", "LALR"} {
		s.set(col+1, 1, h)
		s.style(col+1, 1, wb.headerStyle)
	}
	s.set(1, 2, "States")
	s.set(2, 2, merge.CLRStateCount)
	s.set(3, 2, merge.LALRStateCount)
	s.set(1, 3, "States Merged")
	s.set(2, 3, merge.CLRStateCount-merge.LALRStateCount)

	row := 5
	for col, h := range []string{"LALR State", "Merged CLR States"} {
		s.set(col+1, row, h)
		s.style(col+1, row, wb.headerStyle)
	}
	row++
	for num, group := range merge.Groups {
		s.set(1, row, num)
		s.set(2, row, joinInts(group))
		row++
	}

	s.colWidth(1, 3, 20)
	return s.err
}

func (wb *workbook) renderGrammar() error {
	s := wb.sheet("Grammar")

	for col, h := range []string{"Production #", "Non-Terminal", "Production"} {
		s.set(col+1, 1, h)
		s.style(col+1, 1, wb.headerStyle)
	}
	row := 2
	for num, p := range wb.prods {
		if p == nil {
			continue
		}
		s.set(1, row, num)
		s.set(2, row, wb.nonTerminalName(p.LHS))
		s.set(3, row, wb.productionText(num))
		row++
	}
	if wb.rep.LL != nil && wb.rep.LL.Rewritten {
		row++
		s.set(1, row, "The listing above is the grammar after left-recursion elimination and left factoring.")
	}

	s.colWidth(1, 2, 16)
	s.colWidth(3, 3, 48)
	return s.err
}

func (wb *workbook) renderStates() error {
	s := wb.sheet("States")
	lr := wb.rep.LR

	headers := []string{"State", "Kernel Items"}
	if lr.Merge != nil {
		headers = append(headers, "Merged from CLR States")
	}
	for col, h := range headers {
		s.set(col+1, 1, h)
		s.style(col+1, 1, wb.headerStyle)
	}

	row := 2
	for _, state := range lr.States {
		s.set(1, row, state.Number)
		s.style(1, row, wb.boldStyle)
		items := make([]string, len(state.Kernel))
		for i, item := range state.Kernel {
			items[i] = wb.itemText(item)
		}
		s.set(2, row, strings.Join(items, "\n"))
		if lr.Merge != nil {
			s.set(3, row, joinInts(state.MergedFrom))
		}
		row++
	}

	s.colWidth(1, 1, 10)
	s.colWidth(2, 2, 60)
	s.colWidth(3, 3, 24)
	return s.err
}

func (wb *workbook) renderActionTable() error {
	s := wb.sheet("ACTION Table")
	lr := wb.rep.LR
	cols := wb.terminalColumns()

	s.set(1, 1, "State")
	s.style(1, 1, wb.headerStyle)
	for i, num := range cols {
		s.set(i+2, 1, wb.terminalName(num))
		s.style(i+2, 1, wb.headerStyle)
	}

	for _, state := range lr.States {
		row := state.Number + 2
		s.set(1, row, state.Number)
		s.style(1, row, wb.boldStyle)
		for i, num := range cols {
			text, conflicted := wb.actionCell(state, num)
			if text == "" {
				s.set(i+2, row, "-")
				continue
			}
			s.set(i+2, row, text)
			if conflicted {
				s.style(i+2, row, wb.conflictStyle)
			}
		}
	}

	s.colWidth(1, 1, 10)
	s.colWidth(2, len(cols)+1, 12)
	return s.err
}

// actionCell renders one ACTION cell. A conflicted cell joins all competing
// actions in registration order.
func (wb *workbook) actionCell(state *spec.State, term int) (string, bool) {
	for _, c := range state.Conflicts {
		if c.Symbol == term {
			return joinActions(c.Actions), true
		}
	}
	for _, t := range state.Shift {
		if t.Symbol == term {
			return fmt.Sprintf("s%v", t.State), false
		}
	}
	for _, r := range state.Reduce {
		for _, la := range r.LookAhead {
			if la == term {
				return reduceCell(r.Production), false
			}
		}
	}
	return "", false
}

func (wb *workbook) renderGoToTable() error {
	s := wb.sheet("GOTO Table")
	lr := wb.rep.LR
	cols := wb.nonTerminalColumns()

	s.set(1, 1, "State")
	s.style(1, 1, wb.headerStyle)
	for i, num := range cols {
		s.set(i+2, 1, wb.nonTerminalName(num))
		s.style(i+2, 1, wb.headerStyle)
	}

	for _, state := range lr.States {
		row := state.Number + 2
		s.set(1, row, state.Number)
		s.style(1, row, wb.boldStyle)
		for i, num := range cols {
			cell := "-"
			for _, t := range state.GoTo {
				if t.Symbol == num {
					cell = fmt.Sprintf("%v", t.State)
					break
				}
			}
			s.set(i+2, row, cell)
		}
	}

	s.colWidth(1, 1, 10)
	s.colWidth(2, len(cols)+1, 12)
	return s.err
}

func (wb *workbook) renderTransitions() error {
	s := wb.sheet("Transitions")
	lr := wb.rep.LR

	for col, h := range []string{"From State", "Symbol", "To State"} {
		s.set(col+1, 1, h)
		s.style(col+1, 1, wb.headerStyle)
	}
	row := 2
	for _, state := range lr.States {
		for _, t := range state.Shift {
			s.set(1, row, state.Number)
			s.set(2, row, wb.terminalName(t.Symbol))
			s.set(3, row, t.State)
			row++
		}
		for _, t := range state.GoTo {
			s.set(1, row, state.Number)
			s.set(2, row, wb.nonTerminalName(t.Symbol))
			s.set(3, row, t.State)
			row++
		}
	}

	s.colWidth(1, 3, 14)
	return s.err
}

func (wb *workbook) renderSymbolSets(name string, sets []*spec.SymbolSet, follow bool) error {
	if len(sets) == 0 {
		return nil
	}
	s := wb.sheet(name)

	for col, h := range []string{"Non-Terminal", "Set"} {
		s.set(col+1, 1, h)
		s.style(col+1, 1, wb.headerStyle)
	}
	row := 2
	for _, set := range sets {
		s.set(1, row, wb.nonTerminalName(set.Symbol))
		var elems []string
		for _, sym := range set.Symbols {
			elems = append(elems, wb.terminalName(sym))
		}
		if !follow && set.Empty {
			elems = append(elems, "ε")
		}
		if follow && set.EOF {
			elems = append(elems, "$")
		}
		s.set(2, row, fmt.Sprintf("{ %v }", strings.Join(elems, ", ")))
		row++
	}

	s.colWidth(1, 1, 18)
	s.colWidth(2, 2, 40)
	return s.err
}

func (wb *workbook) renderNullable() error {
	s := wb.sheet("NULLABLE")
	ll := wb.rep.LL

	nullable := map[int]struct{}{}
	for _, num := range ll.Nullable {
		nullable[num] = struct{}{}
	}

	for col, h := range []string{"Non-Terminal", "Nullable"} {
		s.set(col+1, 1, h)
		s.style(col+1, 1, wb.headerStyle)
	}
	row := 2
	for _, num := range wb.nonTerminalColumns() {
		s.set(1, row, wb.nonTerminalName(num))
		if _, ok := nullable[num]; ok {
			s.set(2, row, "YES")
		} else {
			s.set(2, row, "NO")
		}
		row++
	}

	s.colWidth(1, 2, 18)
	return s.err
}

func (wb *workbook) renderPredictiveTable() error {
	s := wb.sheet("Parsing Table")
	ll := wb.rep.LL
	cols := wb.terminalColumns()

	cells := map[[2]int]*spec.PredictiveCell{}
	for _, c := range ll.Table {
		cells[[2]int{c.NonTerminal, c.Terminal}] = c
	}

	s.set(1, 1, "Non-Terminal")
	s.style(1, 1, wb.headerStyle)
	for i, num := range cols {
		s.set(i+2, 1, wb.terminalName(num))
		s.style(i+2, 1, wb.headerStyle)
	}

	row := 2
	for _, nt := range wb.nonTerminalColumns() {
		s.set(1, row, wb.nonTerminalName(nt))
		s.style(1, row, wb.boldStyle)
		for i, term := range cols {
			c, ok := cells[[2]int{nt, term}]
			if !ok {
				s.set(i+2, row, "-")
				continue
			}
			texts := make([]string, len(c.Productions))
			for j, p := range c.Productions {
				texts[j] = wb.productionText(p)
			}
			s.set(i+2, row, strings.Join(texts, conflictSeparator))
			if len(c.Productions) > 1 {
				s.style(i+2, row, wb.conflictStyle)
			}
		}
		row++
	}

	s.colWidth(1, 1, 18)
	s.colWidth(2, len(cols)+1, 28)
	return s.err
}

func joinActions(actions []*spec.Action) string {
	texts := make([]string, len(actions))
	for i, a := range actions {
		texts[i] = a.Cell()
	}
	return strings.Join(texts, conflictSeparator)
}

func reduceCell(prod int) string {
	if prod == 1 {
		return "acc"
	}
	return fmt.Sprintf("r%v", prod)
}

func joinInts(nums []int) string {
	texts := make([]string, len(nums))
	for i, n := range nums {
		texts[i] = fmt.Sprintf("%v", n)
	}
	return strings.Join(texts, ", ")
}

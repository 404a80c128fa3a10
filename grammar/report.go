package grammar

import (
	"fmt"
	"sort"

	spec "github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar"
)

func (b *lrTableBuilder) genReport(tab *parsingTable, gram *Grammar, itemLookAhead bool) (*spec.LRReport, error) {
	terms, nonTerms, err := genSymbolReport(gram)
	if err != nil {
		return nil, err
	}
	prods := genProductionReport(gram)

	conflicts := make([]*spec.Conflict, len(b.conflictList))
	conflictsByState := map[stateNum][]*spec.Conflict{}
	for i, c := range b.conflictList {
		rc := &spec.Conflict{
			State:  c.state.Int(),
			Symbol: c.sym.Num().Int(),
			Type:   c.classify(),
		}
		for _, act := range c.actions {
			rc.Actions = append(rc.Actions, genActionReport(act))
		}
		if b.resolveShift && rc.Type == spec.ConflictShiftReduce {
			ty, s, p := tab.getAction(c.state, c.sym.Num())
			rc.Adopted = genActionReport(&tableAction{
				ty:        ty,
				nextState: s,
				prod:      p,
			})
		}
		conflicts[i] = rc
		conflictsByState[c.state] = append(conflictsByState[c.state], rc)
	}

	states := make([]*spec.State, len(b.automaton.stateList))
	for _, s := range b.automaton.stateList {
		kernel := make([]*spec.Item, len(s.items))
		for i, item := range s.items {
			p, ok := b.prods.findByID(item.prod)
			if !ok {
				return nil, fmt.Errorf("production of kernel item not found: %v", item.prod)
			}

			kItem := &spec.Item{
				Production: p.num.Int(),
				Dot:        item.dot,
			}
			if itemLookAhead {
				for _, a := range item.sortedLookAhead() {
					kItem.LookAhead = append(kItem.LookAhead, a.Num().Int())
				}
			}
			kernel[i] = kItem
		}

		sort.Slice(kernel, func(i, j int) bool {
			if kernel[i].Production != kernel[j].Production {
				return kernel[i].Production < kernel[j].Production
			}
			return kernel[i].Dot < kernel[j].Dot
		})

		var shift []*spec.Transition
		var reduce []*spec.Reduce
		var goTo []*spec.Transition
	TERMINALS_LOOP:
		for _, t := range b.symTab.TerminalSymbols() {
			act, next, prod := tab.getAction(s.num, t.Num())
			switch act {
			case ActionTypeShift:
				shift = append(shift, &spec.Transition{
					Symbol: t.Num().Int(),
					State:  next.Int(),
				})
			case ActionTypeReduce:
				for _, r := range reduce {
					if r.Production == prod.Int() {
						r.LookAhead = append(r.LookAhead, t.Num().Int())
						continue TERMINALS_LOOP
					}
				}
				reduce = append(reduce, &spec.Reduce{
					LookAhead:  []int{t.Num().Int()},
					Production: prod.Int(),
				})
			}
		}

		for _, n := range b.symTab.NonTerminalSymbols() {
			ty, next := tab.getGoTo(s.num, n.Num())
			if ty == GoToTypeRegistered {
				goTo = append(goTo, &spec.Transition{
					Symbol: n.Num().Int(),
					State:  next.Int(),
				})
			}
		}

		sort.Slice(shift, func(i, j int) bool {
			return shift[i].Symbol < shift[j].Symbol
		})
		sort.Slice(reduce, func(i, j int) bool {
			return reduce[i].Production < reduce[j].Production
		})
		sort.Slice(goTo, func(i, j int) bool {
			return goTo[i].Symbol < goTo[j].Symbol
		})

		var mergedFrom []int
		for _, num := range s.mergedFrom {
			mergedFrom = append(mergedFrom, num.Int())
		}

		states[s.num.Int()] = &spec.State{
			Number:     s.num.Int(),
			Kernel:     kernel,
			Shift:      shift,
			Reduce:     reduce,
			GoTo:       goTo,
			Conflicts:  conflictsByState[s.num],
			MergedFrom: mergedFrom,
		}
	}

	return &spec.LRReport{
		Terminals:    terms,
		NonTerminals: nonTerms,
		Productions:  prods,
		States:       states,
		Conflicts:    conflicts,
	}, nil
}

func genActionReport(act *tableAction) *spec.Action {
	switch {
	case act.ty == ActionTypeShift:
		return &spec.Action{
			Type:  spec.ActionShift,
			State: act.nextState.Int(),
		}
	case act.prod == productionNumStart:
		return &spec.Action{
			Type:       spec.ActionAccept,
			Production: act.prod.Int(),
		}
	default:
		return &spec.Action{
			Type:       spec.ActionReduce,
			Production: act.prod.Int(),
		}
	}
}

func genSymbolReport(gram *Grammar) ([]*spec.Terminal, []*spec.NonTerminal, error) {
	symTab := gram.symbolTable

	termSyms := symTab.TerminalSymbols()
	terms := make([]*spec.Terminal, len(termSyms)+1)
	for _, sym := range termSyms {
		name, ok := symTab.ToText(sym)
		if !ok {
			return nil, nil, fmt.Errorf("terminal symbol not found: %v", sym)
		}
		terms[sym.Num()] = &spec.Terminal{
			Number: sym.Num().Int(),
			Name:   name,
		}
	}

	nonTermSyms := symTab.NonTerminalSymbols()
	nonTerms := make([]*spec.NonTerminal, len(nonTermSyms)+1)
	for _, sym := range nonTermSyms {
		name, ok := symTab.ToText(sym)
		if !ok {
			return nil, nil, fmt.Errorf("non-terminal symbol not found: %v", sym)
		}
		nonTerms[sym.Num()] = &spec.NonTerminal{
			Number: sym.Num().Int(),
			Name:   name,
		}
	}

	return terms, nonTerms, nil
}

// genProductionReport renders the production list in number order. RHS
// elements are terminal numbers when positive and negated non-terminal
// numbers when negative.
func genProductionReport(gram *Grammar) []*spec.Production {
	ps := gram.productionSet.getAllProductions()
	prods := make([]*spec.Production, len(ps)+1)
	for _, p := range ps {
		rhs := make([]int, len(p.rhs))
		for i, e := range p.rhs {
			if e.IsTerminal() {
				rhs[i] = e.Num().Int()
			} else {
				rhs[i] = e.Num().Int() * -1
			}
		}
		prods[p.num.Int()] = &spec.Production{
			Number: p.num.Int(),
			LHS:    p.lhs.Num().Int(),
			RHS:    rhs,
		}
	}
	return prods
}

func genFirstReport(gram *Grammar, first *firstSet) []*spec.SymbolSet {
	var rows []*spec.SymbolSet
	for _, sym := range gram.symbolTable.NonTerminalSymbols() {
		e := first.findBySymbol(sym)
		if e == nil {
			continue
		}
		row := &spec.SymbolSet{
			Symbol:  sym.Num().Int(),
			Symbols: []int{},
			Empty:   e.empty,
		}
		for _, s := range e.sortedSymbols() {
			row.Symbols = append(row.Symbols, s.Num().Int())
		}
		rows = append(rows, row)
	}
	return rows
}

func genFollowReport(gram *Grammar, follow *followSet) []*spec.SymbolSet {
	var rows []*spec.SymbolSet
	for _, sym := range gram.symbolTable.NonTerminalSymbols() {
		e, err := follow.find(sym)
		if err != nil {
			continue
		}
		row := &spec.SymbolSet{
			Symbol:  sym.Num().Int(),
			Symbols: []int{},
			EOF:     e.eof,
		}
		for _, s := range e.sortedSymbols() {
			row.Symbols = append(row.Symbols, s.Num().Int())
		}
		rows = append(rows, row)
	}
	return rows
}

package grammar

import (
	"sort"

	"github.com/bilaaaal0/Compiler-Construction-Project/grammar/symbol"
	spec "github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar"
)

type llCellKey struct {
	nonTerm symbol.Symbol
	term    symbol.Symbol
}

// llTable is an LL(1) predictive table. A cell keeps every production
// registered to it, so a conflicted cell retains all competitors.
type llTable struct {
	cells     map[llCellKey][]productionNum
	conflicts []*llConflict
}

type llConflict struct {
	nonTerm symbol.Symbol
	term    symbol.Symbol
	prods   []productionNum
}

func (t *llTable) register(nonTerm symbol.Symbol, term symbol.Symbol, prod productionNum) {
	k := llCellKey{
		nonTerm: nonTerm,
		term:    term,
	}
	for _, p := range t.cells[k] {
		if p == prod {
			return
		}
	}
	t.cells[k] = append(t.cells[k], prod)
}

func genLLTable(gram *Grammar, first *firstSet, follow *followSet) (*llTable, error) {
	table := &llTable{
		cells: map[llCellKey][]productionNum{},
	}

	for _, prod := range gram.productionSet.getAllProductions() {
		e, err := first.find(prod, 0)
		if err != nil {
			return nil, err
		}
		for _, sym := range e.sortedSymbols() {
			table.register(prod.lhs, sym, prod.num)
		}
		if e.empty {
			flw, err := follow.find(prod.lhs)
			if err != nil {
				return nil, err
			}
			for _, sym := range flw.sortedSymbols() {
				table.register(prod.lhs, sym, prod.num)
			}
			if flw.eof {
				table.register(prod.lhs, symbol.SymbolEOF, prod.num)
			}
		}
	}

	for k, prods := range table.cells {
		if len(prods) < 2 {
			continue
		}
		sorted := make([]productionNum, len(prods))
		copy(sorted, prods)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i] < sorted[j]
		})
		table.conflicts = append(table.conflicts, &llConflict{
			nonTerm: k.nonTerm,
			term:    k.term,
			prods:   sorted,
		})
	}
	sort.Slice(table.conflicts, func(i, j int) bool {
		ci, cj := table.conflicts[i], table.conflicts[j]
		if ci.nonTerm != cj.nonTerm {
			return ci.nonTerm.Num() < cj.nonTerm.Num()
		}
		return ci.term.Num() < cj.term.Num()
	})

	tracer().Infof("LL(1) table: %d cells, %d conflicts", len(table.cells), len(table.conflicts))

	return table, nil
}

func genLLReport(gram *Grammar, first *firstSet, follow *followSet, table *llTable, rewritten bool) (*spec.LLReport, error) {
	terms, nonTerms, err := genSymbolReport(gram)
	if err != nil {
		return nil, err
	}

	var nullable []int
	for _, sym := range gram.symbolTable.NonTerminalSymbols() {
		e := first.findBySymbol(sym)
		if e != nil && e.empty {
			nullable = append(nullable, sym.Num().Int())
		}
	}

	var cells []*spec.PredictiveCell
	for k, prods := range table.cells {
		sorted := make([]productionNum, len(prods))
		copy(sorted, prods)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i] < sorted[j]
		})
		cell := &spec.PredictiveCell{
			NonTerminal: k.nonTerm.Num().Int(),
			Terminal:    k.term.Num().Int(),
		}
		for _, p := range sorted {
			cell.Productions = append(cell.Productions, p.Int())
		}
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].NonTerminal != cells[j].NonTerminal {
			return cells[i].NonTerminal < cells[j].NonTerminal
		}
		return cells[i].Terminal < cells[j].Terminal
	})

	conflicts := make([]*spec.LLConflict, len(table.conflicts))
	for i, c := range table.conflicts {
		rc := &spec.LLConflict{
			NonTerminal: c.nonTerm.Num().Int(),
			Terminal:    c.term.Num().Int(),
		}
		for _, p := range c.prods {
			rc.Productions = append(rc.Productions, p.Int())
		}
		conflicts[i] = rc
	}

	return &spec.LLReport{
		Terminals:    terms,
		NonTerminals: nonTerms,
		Productions:  genProductionReport(gram),
		Nullable:     nullable,
		First:        genFirstReport(gram, first),
		Follow:       genFollowReport(gram, follow),
		Table:        cells,
		Conflicts:    conflicts,
		Rewritten:    rewritten,
	}, nil
}

package grammar

import (
	"fmt"

	"github.com/bilaaaal0/Compiler-Construction-Project/grammar/symbol"
)

// followEntry is the FOLLOW set of one non-terminal. The end-of-input marker
// is tracked as a separate flag because it is not a symbol-table symbol.
type followEntry struct {
	symbols map[symbol.Symbol]struct{}
	eof     bool
}

func newFollowEntry() *followEntry {
	return &followEntry{
		symbols: map[symbol.Symbol]struct{}{},
		eof:     false,
	}
}

func (e *followEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *followEntry) addEOF() bool {
	if !e.eof {
		e.eof = true
		return true
	}
	return false
}

func (e *followEntry) merge(fst *firstEntry, flw *followEntry) bool {
	changed := false

	if fst != nil {
		for sym := range fst.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
	}

	if flw != nil {
		for sym := range flw.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
		if flw.eof {
			added := e.addEOF()
			if added {
				changed = true
			}
		}
	}

	return changed
}

func (e *followEntry) sortedSymbols() []symbol.Symbol {
	return sortSymbols(e.symbols)
}

type followSet struct {
	set map[symbol.Symbol]*followEntry
}

func newFollowSet(prods *productionSet) *followSet {
	flw := &followSet{
		set: map[symbol.Symbol]*followEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := flw.set[prod.lhs]; ok {
			continue
		}
		flw.set[prod.lhs] = newFollowEntry()
	}
	return flw
}

func (flw *followSet) find(sym symbol.Symbol) (*followEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %s", sym)
	}
	return e, nil
}

// genFollowSet computes FOLLOW for every non-terminal by fixed-point
// iteration over the production scans: FOLLOW(start) gains EOF, every
// occurrence `A → α B β` adds FIRST(β) to FOLLOW(B), and FOLLOW(A) as well
// when β is nullable or empty.
func genFollowSet(prods *productionSet, first *firstSet) (*followSet, error) {
	flw := newFollowSet(prods)
	for {
		more := false
		for _, prod := range prods.getAllProductions() {
			changed, err := genProdFollowEntries(flw, first, prods, prod)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		if !more {
			break
		}
	}

	return flw, nil
}

func genProdFollowEntries(flw *followSet, first *firstSet, prods *productionSet, prod *production) (bool, error) {
	changed := false

	if prod.lhs.IsStart() {
		e, err := flw.find(prod.lhs)
		if err != nil {
			return false, err
		}
		if e.addEOF() {
			changed = true
		}
	}

	for i, sym := range prod.rhs {
		if !sym.IsNonTerminal() {
			continue
		}

		e, err := flw.find(sym)
		if err != nil {
			return false, err
		}

		fst, err := first.find(prod, i+1)
		if err != nil {
			return false, err
		}
		if e.merge(fst, nil) {
			changed = true
		}

		if fst.empty {
			lhsEntry, err := flw.find(prod.lhs)
			if err != nil {
				return false, err
			}
			if e.merge(nil, lhsEntry) {
				changed = true
			}
		}
	}

	return changed, nil
}

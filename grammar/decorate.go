package grammar

import (
	"fmt"

	"github.com/bilaaaal0/Compiler-Construction-Project/grammar/symbol"
)

// The LR(0)/SLR(1) analyses run over a lookaheadNone automaton whose
// reducible items carry no lookahead sets. Decoration materializes the
// class's reduce-column policy onto those items so that the shared table
// builder can treat every class uniformly: LR(0) reduces on every terminal
// plus end-of-input, SLR(1) on FOLLOW of the production's LHS. The
// augmented item `S' → S・` always reduces (accepts) on end-of-input only.

func decorateLR0Reduce(automaton *lrAutomaton, prods *productionSet, symTab *symbol.SymbolTableReader) error {
	allTerms := symTab.TerminalSymbols()
	for _, state := range automaton.stateList {
		for prodID := range state.reducible {
			prod, ok := prods.findByID(prodID)
			if !ok {
				return fmt.Errorf("reducible production not found: %v", prodID)
			}

			item, err := findReducibleItem(state, prodID)
			if err != nil {
				return err
			}

			if prod.lhs.IsStart() {
				item.addLookAhead(symbol.SymbolEOF)
				continue
			}
			item.addLookAhead(allTerms...)
		}
	}
	return nil
}

func decorateSLRReduce(automaton *lrAutomaton, prods *productionSet, follow *followSet) error {
	for _, state := range automaton.stateList {
		for prodID := range state.reducible {
			prod, ok := prods.findByID(prodID)
			if !ok {
				return fmt.Errorf("reducible production not found: %v", prodID)
			}

			item, err := findReducibleItem(state, prodID)
			if err != nil {
				return err
			}

			flw, err := follow.find(prod.lhs)
			if err != nil {
				return err
			}
			item.addLookAhead(flw.sortedSymbols()...)
			if flw.eof {
				item.addLookAhead(symbol.SymbolEOF)
			}
		}
	}
	return nil
}

func findReducibleItem(state *lrState, prodID productionID) (*lrItem, error) {
	for _, item := range state.items {
		if item.prod == prodID && item.reducible {
			return item, nil
		}
	}
	for _, item := range state.emptyProdItems {
		if item.prod == prodID {
			return item, nil
		}
	}
	return nil, fmt.Errorf("reducible item not found; state: %v, production: %v", state.num, prodID)
}

package grammar

import (
	"fmt"

	"github.com/bilaaaal0/Compiler-Construction-Project/grammar/symbol"
)

// genLALRAutomaton derives the LALR(1) automaton from the canonical LR(1)
// automaton by merging states with set-equal cores. Core equality is the
// whole compatibility criterion. A merged state's items carry the union of
// the lookaheads of every merged source item, and the state remembers the
// originating CLR state numbers for diagnostics. The CLR automaton is left
// untouched.
//
// Merged state numbers are assigned in order of the smallest originating CLR
// state number, so the numbering is reproducible for a fixed grammar.
func genLALRAutomaton(clr *lrAutomaton) (*lrAutomaton, error) {
	groups := map[kernelID][]*lrState{}
	groupOrder := []kernelID{}
	for _, state := range clr.stateList {
		if _, ok := groups[state.coreID]; !ok {
			groupOrder = append(groupOrder, state.coreID)
		}
		groups[state.coreID] = append(groups[state.coreID], state)
	}

	automaton := &lrAutomaton{
		states: map[kernelID]*lrState{},
	}

	currentState := stateNumInitial
	for _, coreID := range groupOrder {
		group := groups[coreID]
		merged, err := mergeStateGroup(clr, group)
		if err != nil {
			return nil, err
		}
		merged.num = currentState
		currentState = currentState.next()

		automaton.states[merged.id] = merged
		automaton.stateList = append(automaton.stateList, merged)
	}

	automaton.initialState = clr.states[clr.initialState].coreID

	tracer().Debugf("LALR merge complete: %d CLR states -> %d LALR states", len(clr.stateList), len(automaton.stateList))

	return automaton, nil
}

func mergeStateGroup(clr *lrAutomaton, group []*lrState) (*lrState, error) {
	base := group[0]

	items := make([]*lrItem, len(base.items))
	for i, item := range base.items {
		items[i] = item.clone()
	}
	emptyProdItems := make([]*lrItem, len(base.emptyProdItems))
	for i, item := range base.emptyProdItems {
		emptyProdItems[i] = item.clone()
	}

	for _, src := range group[1:] {
		if err := unionLookAheads(items, src.items); err != nil {
			return nil, fmt.Errorf("states %v and %v share a core but not an item set: %w", base.num, src.num, err)
		}
		if err := unionLookAheads(emptyProdItems, src.emptyProdItems); err != nil {
			return nil, fmt.Errorf("states %v and %v share a core but not an item set: %w", base.num, src.num, err)
		}
	}

	k, err := newKernel(items, lookaheadNone)
	if err != nil {
		return nil, err
	}
	if k.id != base.coreID {
		return nil, fmt.Errorf("merged kernel identity diverged from the group core: %v vs %v", k.id, base.coreID)
	}

	// Transitions are recomputed against merged-state identities. All group
	// members must agree on the target cores; a divergence here is an
	// implementation bug, never a legitimate conflict.
	next := map[symbol.Symbol]kernelID{}
	for sym, targetKID := range base.next {
		target, ok := clr.states[targetKID]
		if !ok {
			return nil, fmt.Errorf("transition target not found: %v", targetKID)
		}
		next[sym] = target.coreID
	}
	for _, src := range group[1:] {
		if len(src.next) != len(base.next) {
			return nil, fmt.Errorf("states %v and %v share a core but disagree on transitions", base.num, src.num)
		}
		for sym, targetKID := range src.next {
			target, ok := clr.states[targetKID]
			if !ok {
				return nil, fmt.Errorf("transition target not found: %v", targetKID)
			}
			mergedTarget, ok := next[sym]
			if !ok || mergedTarget != target.coreID {
				return nil, fmt.Errorf("states %v and %v share a core but disagree on the transition over %v", base.num, src.num, sym)
			}
		}
	}

	reducible := make(map[productionID]struct{}, len(base.reducible))
	for prodID := range base.reducible {
		reducible[prodID] = struct{}{}
	}

	mergedFrom := make([]stateNum, len(group))
	for i, src := range group {
		mergedFrom[i] = src.num
	}

	return &lrState{
		kernel:         k,
		next:           next,
		reducible:      reducible,
		emptyProdItems: emptyProdItems,
		mergedFrom:     mergedFrom,
	}, nil
}

// unionLookAheads adds the lookaheads of src items onto the matching dst
// items. Items match by core identity; both sides must contain exactly the
// same cores.
func unionLookAheads(dst []*lrItem, src []*lrItem) error {
	if len(dst) != len(src) {
		return fmt.Errorf("item counts differ: %v vs %v", len(dst), len(src))
	}
	byID := make(map[lrItemID]*lrItem, len(dst))
	for _, item := range dst {
		byID[item.id] = item
	}
	for _, item := range src {
		target, ok := byID[item.id]
		if !ok {
			return fmt.Errorf("item %v has no counterpart", item.id)
		}
		target.addLookAhead(item.sortedLookAhead()...)
	}
	return nil
}

package grammar

import (
	"fmt"
	"sort"

	"github.com/bilaaaal0/Compiler-Construction-Project/grammar/symbol"
)

// lrAutomaton is the item-set automaton shared by every LR-family analysis.
// States are keyed by kernel identity; stateList keeps them in creation
// order, which is what makes state numbering and conflict ordering
// reproducible for a fixed grammar.
type lrAutomaton struct {
	initialState kernelID
	states       map[kernelID]*lrState
	stateList    []*lrState
}

// genLRAutomaton explores the item-set collection breadth first. Under
// lookaheadNone it is the LR(0) collection; under lookaheadFull items carry
// lookahead sets seeded with EOF on the initial item and the result is the
// canonical LR(1) collection, which can be substantially larger because
// states with equal cores but different lookaheads stay distinct.
//
// stateLimit is a caller-imposed ceiling on the number of states; zero means
// no ceiling. Exceeding it aborts with a ResourceLimitError.
func genLRAutomaton(prods *productionSet, startSym symbol.Symbol, first *firstSet, policy lookaheadPolicy, stateLimit int) (*lrAutomaton, error) {
	if !startSym.IsStart() {
		return nil, fmt.Errorf("passed symbol is not a start symbol")
	}

	automaton := &lrAutomaton{
		states: map[kernelID]*lrState{},
	}

	currentState := stateNumInitial
	knownKernels := map[kernelID]struct{}{}
	uncheckedKernels := []*kernel{}

	// Generate the initial kernel from the augmented start production:
	// [S' →・S] for LR(0), [S' →・S, $] for canonical LR(1).
	{
		startProds, _ := prods.findByLHS(startSym)
		initialItem, err := newLR0Item(startProds[0], 0)
		if err != nil {
			return nil, err
		}
		if policy == lookaheadFull {
			initialItem.addLookAhead(symbol.SymbolEOF)
		}

		k, err := newKernel([]*lrItem{initialItem}, policy)
		if err != nil {
			return nil, err
		}

		automaton.initialState = k.id
		knownKernels[k.id] = struct{}{}
		uncheckedKernels = append(uncheckedKernels, k)
	}

	for len(uncheckedKernels) > 0 {
		nextUncheckedKernels := []*kernel{}
		for _, k := range uncheckedKernels {
			state, neighbours, err := genStateAndNeighbourKernels(k, prods, first, policy)
			if err != nil {
				return nil, err
			}
			state.num = currentState
			currentState = currentState.next()

			automaton.states[state.id] = state
			automaton.stateList = append(automaton.stateList, state)

			for _, k := range neighbours {
				if _, known := knownKernels[k.id]; known {
					continue
				}
				knownKernels[k.id] = struct{}{}
				if stateLimit > 0 && len(knownKernels) > stateLimit {
					return nil, &ResourceLimitError{
						States: len(knownKernels),
						Limit:  stateLimit,
					}
				}
				nextUncheckedKernels = append(nextUncheckedKernels, k)
			}
		}
		uncheckedKernels = nextUncheckedKernels
	}

	tracer().Debugf("LR automaton complete: %d states", len(automaton.stateList))

	return automaton, nil
}

func genStateAndNeighbourKernels(k *kernel, prods *productionSet, first *firstSet, policy lookaheadPolicy) (*lrState, []*kernel, error) {
	items, err := genClosure(k, prods, first, policy)
	if err != nil {
		return nil, nil, err
	}
	neighbours, err := genNeighbourKernels(items, prods, policy)
	if err != nil {
		return nil, nil, err
	}

	next := map[symbol.Symbol]kernelID{}
	kernels := []*kernel{}
	for _, n := range neighbours {
		next[n.symbol] = n.kernel.id
		kernels = append(kernels, n.kernel)
	}

	reducible := map[productionID]struct{}{}
	var emptyProdItems []*lrItem
	for _, item := range items {
		if !item.reducible {
			continue
		}
		reducible[item.prod] = struct{}{}

		prod, ok := prods.findByID(item.prod)
		if !ok {
			return nil, nil, fmt.Errorf("reducible production not found: %v", item.prod)
		}
		if prod.isEmpty() {
			emptyProdItems = append(emptyProdItems, item)
		}
	}

	return &lrState{
		kernel:         k,
		next:           next,
		reducible:      reducible,
		emptyProdItems: emptyProdItems,
	}, kernels, nil
}

// genClosure expands a kernel to the closed item set: for every item
// [A → α・B β, L] and production B → γ it adds [B →・γ, L'] where L' is
// FIRST(β ℓ) for every ℓ in L. Items merge by core, accumulating lookaheads;
// an item whose lookahead set grew is processed again so the growth
// propagates. Fixed-pointed until no item appears or grows.
func genClosure(k *kernel, prods *productionSet, first *firstSet, policy lookaheadPolicy) ([]*lrItem, error) {
	items := []*lrItem{}
	knownItems := map[lrItemID]*lrItem{}
	uncheckedItems := []*lrItem{}
	for _, item := range k.items {
		items = append(items, item)
		knownItems[item.id] = item
		uncheckedItems = append(uncheckedItems, item)
	}
	for len(uncheckedItems) > 0 {
		nextUncheckedItems := []*lrItem{}
		for _, item := range uncheckedItems {
			if !item.dottedSymbol.IsNonTerminal() {
				continue
			}

			var lookAhead []symbol.Symbol
			if policy == lookaheadFull {
				prod, ok := prods.findByID(item.prod)
				if !ok {
					return nil, fmt.Errorf("production not found: %v", item.prod)
				}
				fst, err := first.find(prod, item.dot+1)
				if err != nil {
					return nil, err
				}
				lookAhead = fst.sortedSymbols()
				if fst.empty {
					lookAhead = append(lookAhead, item.sortedLookAhead()...)
				}
			}

			ps, _ := prods.findByLHS(item.dottedSymbol)
			for _, prod := range ps {
				newItem, err := newLR0Item(prod, 0)
				if err != nil {
					return nil, err
				}
				if existing, ok := knownItems[newItem.id]; ok {
					if policy == lookaheadFull && existing.addLookAhead(lookAhead...) {
						nextUncheckedItems = append(nextUncheckedItems, existing)
					}
					continue
				}
				if policy == lookaheadFull {
					newItem.addLookAhead(lookAhead...)
				}
				items = append(items, newItem)
				knownItems[newItem.id] = newItem
				nextUncheckedItems = append(nextUncheckedItems, newItem)
			}
		}
		uncheckedItems = nextUncheckedItems
	}

	return items, nil
}

type neighbourKernel struct {
	symbol symbol.Symbol
	kernel *kernel
}

// genNeighbourKernels computes goto targets: items are grouped by dotted
// symbol and the dot advances past it. Lookahead sets travel with the items
// unchanged. The symbols are sorted so that neighbour exploration order, and
// therefore state numbering, is deterministic.
func genNeighbourKernels(items []*lrItem, prods *productionSet, policy lookaheadPolicy) ([]*neighbourKernel, error) {
	kItemMap := map[symbol.Symbol][]*lrItem{}
	for _, item := range items {
		if item.dottedSymbol.IsNil() {
			continue
		}
		prod, ok := prods.findByID(item.prod)
		if !ok {
			return nil, fmt.Errorf("a production was not found: %v", item.prod)
		}
		kItem, err := newLR0Item(prod, item.dot+1)
		if err != nil {
			return nil, err
		}
		if policy == lookaheadFull {
			kItem.addLookAhead(item.sortedLookAhead()...)
		}
		kItemMap[item.dottedSymbol] = append(kItemMap[item.dottedSymbol], kItem)
	}

	nextSyms := []symbol.Symbol{}
	for sym := range kItemMap {
		nextSyms = append(nextSyms, sym)
	}
	sort.Slice(nextSyms, func(i, j int) bool {
		return nextSyms[i] < nextSyms[j]
	})

	kernels := []*neighbourKernel{}
	for _, sym := range nextSyms {
		k, err := newKernel(kItemMap[sym], policy)
		if err != nil {
			return nil, err
		}
		kernels = append(kernels, &neighbourKernel{
			symbol: sym,
			kernel: k,
		})
	}

	return kernels, nil
}

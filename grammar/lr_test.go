package grammar

import (
	"testing"

	"github.com/bilaaaal0/Compiler-Construction-Project/grammar/symbol"
)

type expectedLRState struct {
	kernelItems    []*lrItem
	nextStates     map[symbol.Symbol][]*lrItem
	reducibleProds []*production
	emptyProdItems []*lrItem
}

func TestGenLRAutomaton(t *testing.T) {
	gram := buildTestGrammar(t, testGrammarLR)

	automaton, err := genLRAutomaton(gram.productionSet, gram.augmentedStartSymbol, nil, lookaheadNone, 0)
	if err != nil {
		t.Fatalf("failed to create an LR automaton: %v", err)
	}
	if automaton == nil {
		t.Fatalf("genLRAutomaton returned nil without any error")
	}

	initialState := automaton.states[automaton.initialState]
	if initialState == nil {
		t.Errorf("failed to get an initial state: %v", automaton.initialState)
	}

	genSym := newTestSymbolGenerator(t, gram.symbolTable)
	genProd := newTestProductionGenerator(t, genSym)
	genLR0Item := newTestLR0ItemGenerator(t, genProd)

	expectedKernels := map[int][]*lrItem{
		0: {
			genLR0Item("Program'", 0, "Program"),
		},
		1: {
			genLR0Item("Program'", 1, "Program"),
		},
		2: {
			genLR0Item("Program", 1, "Stmt"),
		},
		3: {
			genLR0Item("Stmt", 1, "Expr", ";"),
			genLR0Item("Cond", 1, "Expr", "==", "Expr"),
		},
		4: {
			genLR0Item("Stmt", 1, "Cond", ";"),
			genLR0Item("Cond", 1, "Cond", "&&", "Cond"),
		},
		5: {
			genLR0Item("Expr", 1, "Factor"),
		},
		6: {
			genLR0Item("Factor", 1, "FunctionCall"),
		},
		7: {
			genLR0Item("Factor", 1, "IDENTIFIER"),
			genLR0Item("FunctionCall", 1, "IDENTIFIER", "(", ")"),
		},
		8: {
			genLR0Item("Factor", 1, "(", "Expr", ")"),
		},
		9: {
			genLR0Item("Stmt", 2, "Expr", ";"),
		},
		10: {
			genLR0Item("Cond", 2, "Expr", "==", "Expr"),
		},
		11: {
			genLR0Item("Stmt", 2, "Cond", ";"),
		},
		12: {
			genLR0Item("Cond", 2, "Cond", "&&", "Cond"),
		},
		13: {
			genLR0Item("FunctionCall", 2, "IDENTIFIER", "(", ")"),
		},
		14: {
			genLR0Item("Factor", 2, "(", "Expr", ")"),
		},
		15: {
			genLR0Item("Cond", 3, "Expr", "==", "Expr"),
		},
		16: {
			genLR0Item("Cond", 3, "Cond", "&&", "Cond"),
			genLR0Item("Cond", 1, "Cond", "&&", "Cond"),
		},
		17: {
			genLR0Item("Cond", 1, "Expr", "==", "Expr"),
		},
		18: {
			genLR0Item("FunctionCall", 3, "IDENTIFIER", "(", ")"),
		},
		19: {
			genLR0Item("Factor", 3, "(", "Expr", ")"),
		},
	}

	expectedStates := []*expectedLRState{
		{
			kernelItems: expectedKernels[0],
			nextStates: map[symbol.Symbol][]*lrItem{
				genSym("Program"):      expectedKernels[1],
				genSym("Stmt"):         expectedKernels[2],
				genSym("Expr"):         expectedKernels[3],
				genSym("Cond"):         expectedKernels[4],
				genSym("Factor"):       expectedKernels[5],
				genSym("FunctionCall"): expectedKernels[6],
				genSym("IDENTIFIER"):   expectedKernels[7],
				genSym("("):            expectedKernels[8],
			},
			reducibleProds: []*production{},
		},
		{
			kernelItems: expectedKernels[1],
			nextStates:  map[symbol.Symbol][]*lrItem{},
			reducibleProds: []*production{
				genProd("Program'", "Program"),
			},
		},
		{
			kernelItems: expectedKernels[2],
			nextStates:  map[symbol.Symbol][]*lrItem{},
			reducibleProds: []*production{
				genProd("Program", "Stmt"),
			},
		},
		{
			kernelItems: expectedKernels[3],
			nextStates: map[symbol.Symbol][]*lrItem{
				genSym(";"):  expectedKernels[9],
				genSym("=="): expectedKernels[10],
			},
			reducibleProds: []*production{},
		},
		{
			kernelItems: expectedKernels[4],
			nextStates: map[symbol.Symbol][]*lrItem{
				genSym(";"):  expectedKernels[11],
				genSym("&&"): expectedKernels[12],
			},
			reducibleProds: []*production{},
		},
		{
			kernelItems: expectedKernels[5],
			nextStates:  map[symbol.Symbol][]*lrItem{},
			reducibleProds: []*production{
				genProd("Expr", "Factor"),
			},
		},
		{
			kernelItems: expectedKernels[6],
			nextStates:  map[symbol.Symbol][]*lrItem{},
			reducibleProds: []*production{
				genProd("Factor", "FunctionCall"),
			},
		},
		{
			kernelItems: expectedKernels[7],
			nextStates: map[symbol.Symbol][]*lrItem{
				genSym("("): expectedKernels[13],
			},
			reducibleProds: []*production{
				genProd("Factor", "IDENTIFIER"),
			},
		},
		{
			kernelItems: expectedKernels[8],
			nextStates: map[symbol.Symbol][]*lrItem{
				genSym("Expr"):         expectedKernels[14],
				genSym("Factor"):       expectedKernels[5],
				genSym("FunctionCall"): expectedKernels[6],
				genSym("IDENTIFIER"):   expectedKernels[7],
				genSym("("):            expectedKernels[8],
			},
			reducibleProds: []*production{},
		},
		{
			kernelItems: expectedKernels[9],
			nextStates:  map[symbol.Symbol][]*lrItem{},
			reducibleProds: []*production{
				genProd("Stmt", "Expr", ";"),
			},
		},
		{
			kernelItems: expectedKernels[10],
			nextStates: map[symbol.Symbol][]*lrItem{
				genSym("Expr"):         expectedKernels[15],
				genSym("Factor"):       expectedKernels[5],
				genSym("FunctionCall"): expectedKernels[6],
				genSym("IDENTIFIER"):   expectedKernels[7],
				genSym("("):            expectedKernels[8],
			},
			reducibleProds: []*production{},
		},
		{
			kernelItems: expectedKernels[11],
			nextStates:  map[symbol.Symbol][]*lrItem{},
			reducibleProds: []*production{
				genProd("Stmt", "Cond", ";"),
			},
		},
		{
			kernelItems: expectedKernels[12],
			nextStates: map[symbol.Symbol][]*lrItem{
				genSym("Cond"):         expectedKernels[16],
				genSym("Expr"):         expectedKernels[17],
				genSym("Factor"):       expectedKernels[5],
				genSym("FunctionCall"): expectedKernels[6],
				genSym("IDENTIFIER"):   expectedKernels[7],
				genSym("("):            expectedKernels[8],
			},
			reducibleProds: []*production{},
		},
		{
			kernelItems: expectedKernels[13],
			nextStates: map[symbol.Symbol][]*lrItem{
				genSym(")"): expectedKernels[18],
			},
			reducibleProds: []*production{},
		},
		{
			kernelItems: expectedKernels[14],
			nextStates: map[symbol.Symbol][]*lrItem{
				genSym(")"): expectedKernels[19],
			},
			reducibleProds: []*production{},
		},
		{
			kernelItems: expectedKernels[15],
			nextStates:  map[symbol.Symbol][]*lrItem{},
			reducibleProds: []*production{
				genProd("Cond", "Expr", "==", "Expr"),
			},
		},
		{
			kernelItems: expectedKernels[16],
			nextStates: map[symbol.Symbol][]*lrItem{
				genSym("&&"): expectedKernels[12],
			},
			reducibleProds: []*production{
				genProd("Cond", "Cond", "&&", "Cond"),
			},
		},
		{
			kernelItems: expectedKernels[17],
			nextStates: map[symbol.Symbol][]*lrItem{
				genSym("=="): expectedKernels[10],
			},
			reducibleProds: []*production{},
		},
		{
			kernelItems: expectedKernels[18],
			nextStates:  map[symbol.Symbol][]*lrItem{},
			reducibleProds: []*production{
				genProd("FunctionCall", "IDENTIFIER", "(", ")"),
			},
		},
		{
			kernelItems: expectedKernels[19],
			nextStates:  map[symbol.Symbol][]*lrItem{},
			reducibleProds: []*production{
				genProd("Factor", "(", "Expr", ")"),
			},
		},
	}

	if len(automaton.states) != len(expectedStates) {
		t.Errorf("state count is mismatched\nwant: %v\ngot: %v", len(expectedStates), len(automaton.states))
	}

	testLRAutomaton(t, automaton, expectedStates, lookaheadNone)
}

func TestGenLRAutomatonWithFullLookahead(t *testing.T) {
	gram := buildTestGrammar(t, testGrammarLR)

	fst, err := genFirstSet(gram.productionSet)
	if err != nil {
		t.Fatal(err)
	}

	automaton, err := genLRAutomaton(gram.productionSet, gram.augmentedStartSymbol, fst, lookaheadFull, 0)
	if err != nil {
		t.Fatalf("failed to create an LR automaton: %v", err)
	}

	// States whose cores coincide but whose lookaheads differ stay
	// distinct, so the collection grows from 20 to 44 states.
	if len(automaton.states) != 44 {
		t.Errorf("state count is mismatched\nwant: %v\ngot: %v", 44, len(automaton.states))
	}

	genSym := newTestSymbolGenerator(t, gram.symbolTable)
	genProd := newTestProductionGenerator(t, genSym)
	genLR0Item := newTestLR0ItemGenerator(t, genProd)

	initialState := automaton.states[automaton.initialState]
	if initialState == nil {
		t.Fatalf("failed to get an initial state: %v", automaton.initialState)
	}
	{
		expected := withLookAhead(genLR0Item("Program'", 0, "Program"), symbol.SymbolEOF)
		if len(initialState.items) != 1 {
			t.Fatalf("initial state must contain exactly 1 kernel item\ngot: %v", len(initialState.items))
		}
		testLRItems(t, initialState.items, []*lrItem{expected})
	}

	// The grammar uses `Factor` in four lookahead contexts, so the kernel
	// [Factor → IDENTIFIER・, FunctionCall → IDENTIFIER・'(' ')'] occurs
	// in four variants.
	idLookAheads := [][]string{
		{";", "=="},
		{")"},
		{";", "&&"},
		{"=="},
	}
	for _, las := range idLookAheads {
		laSyms := make([]symbol.Symbol, 0, len(las))
		for _, la := range las {
			laSyms = append(laSyms, genSym(la))
		}

		kItems := []*lrItem{
			withLookAhead(genLR0Item("Factor", 1, "IDENTIFIER"), laSyms...),
			withLookAhead(genLR0Item("FunctionCall", 1, "IDENTIFIER", "(", ")"), laSyms...),
		}
		k, err := newKernel(kItems, lookaheadFull)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := automaton.states[k.id]; !ok {
			t.Errorf("state was not found; lookahead: %v", las)
		}
	}
}

func testLRAutomaton(t *testing.T, automaton *lrAutomaton, expectedStates []*expectedLRState, policy lookaheadPolicy) {
	t.Helper()

	for _, eState := range expectedStates {
		k, err := newKernel(eState.kernelItems, policy)
		if err != nil {
			t.Fatalf("failed to create a kernel: %v", err)
		}

		state, ok := automaton.states[k.id]
		if !ok {
			t.Fatalf("a state was not found: %v", k.id)
		}

		testLRItems(t, state.items, eState.kernelItems)

		if len(state.next) != len(eState.nextStates) {
			t.Errorf("next state count is mismatched; state: %v\nwant: %v\ngot: %v", state.num, len(eState.nextStates), len(state.next))
		}
		for eSym, eKItems := range eState.nextStates {
			eKernel, err := newKernel(eKItems, policy)
			if err != nil {
				t.Fatalf("failed to create a kernel: %v", err)
			}
			nextKernelID, ok := state.next[eSym]
			if !ok {
				t.Fatalf("next state was not found; state: %v, symbol: %v", state.num, eSym)
			}
			if nextKernelID != eKernel.id {
				t.Fatalf("next state is mismatched; state: %v, symbol: %v\nwant: %v\ngot: %v", state.num, eSym, eKernel.id, nextKernelID)
			}
		}

		if len(state.reducible) != len(eState.reducibleProds) {
			t.Errorf("reducible production count is mismatched; state: %v\nwant: %v\ngot: %v", state.num, len(eState.reducibleProds), len(state.reducible))
		}
		for _, eProd := range eState.reducibleProds {
			if _, ok := state.reducible[eProd.id]; !ok {
				t.Errorf("reducible production was not found; state: %v, production: %v", state.num, eProd.id)
			}
		}

		if len(state.emptyProdItems) != len(eState.emptyProdItems) {
			t.Errorf("empty production item count is mismatched; state: %v\nwant: %v\ngot: %v", state.num, len(eState.emptyProdItems), len(state.emptyProdItems))
		}
	}
}

func testLRItems(t *testing.T, actual, expected []*lrItem) {
	t.Helper()

	if len(actual) != len(expected) {
		t.Fatalf("item count is mismatched\nwant: %v\ngot: %v", len(expected), len(actual))
	}

	for _, eItem := range expected {
		var aItem *lrItem
		for _, item := range actual {
			if item.id == eItem.id {
				aItem = item
				break
			}
		}
		if aItem == nil {
			t.Fatalf("an item was not found: %v", eItem.id)
		}

		if len(aItem.lookAhead) != len(eItem.lookAhead) {
			t.Fatalf("lookahead count is mismatched; item: %v\nwant: %v\ngot: %v", eItem.id, len(eItem.lookAhead), len(aItem.lookAhead))
		}
		for eSym := range eItem.lookAhead {
			if _, ok := aItem.lookAhead[eSym]; !ok {
				t.Fatalf("lookahead symbol was not found; item: %v, symbol: %v", eItem.id, eSym)
			}
		}
	}
}

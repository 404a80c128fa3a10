package grammar

import (
	"testing"

	"github.com/bilaaaal0/Compiler-Construction-Project/grammar/symbol"
)

type first struct {
	lhs     string
	num     int
	dot     int
	symbols []string
	empty   bool
}

func TestGenFirstSet(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		first   []first
	}{
		{
			caption: "productions contain only non-empty productions",
			src: `
%terminals id
Expr → Expr '+' Term | Term
Term → Term '*' Factor | Factor
Factor → '(' Expr ')' | id
`,
			first: []first{
				{lhs: "Expr'", num: 0, dot: 0, symbols: []string{"(", "id"}},
				{lhs: "Expr", num: 0, dot: 0, symbols: []string{"(", "id"}},
				{lhs: "Expr", num: 0, dot: 1, symbols: []string{"+"}},
				{lhs: "Expr", num: 0, dot: 2, symbols: []string{"(", "id"}},
				{lhs: "Expr", num: 1, dot: 0, symbols: []string{"(", "id"}},
				{lhs: "Term", num: 0, dot: 0, symbols: []string{"(", "id"}},
				{lhs: "Term", num: 0, dot: 1, symbols: []string{"*"}},
				{lhs: "Term", num: 0, dot: 2, symbols: []string{"(", "id"}},
				{lhs: "Term", num: 1, dot: 0, symbols: []string{"(", "id"}},
				{lhs: "Factor", num: 0, dot: 0, symbols: []string{"("}},
				{lhs: "Factor", num: 0, dot: 1, symbols: []string{"(", "id"}},
				{lhs: "Factor", num: 0, dot: 2, symbols: []string{")"}},
				{lhs: "Factor", num: 1, dot: 0, symbols: []string{"id"}},
			},
		},
		{
			caption: "the start production is empty",
			src: `
S → ε
`,
			first: []first{
				{lhs: "S'", num: 0, dot: 0, symbols: []string{}, empty: true},
				{lhs: "S", num: 0, dot: 0, symbols: []string{}, empty: true},
			},
		},
		{
			caption: "a nullable non-terminal drops out of a sequence",
			src: `
S → Foo 'bar'
Foo → ε
`,
			first: []first{
				{lhs: "S'", num: 0, dot: 0, symbols: []string{"bar"}},
				{lhs: "S", num: 0, dot: 0, symbols: []string{"bar"}},
				{lhs: "Foo", num: 0, dot: 0, symbols: []string{}, empty: true},
			},
		},
		{
			caption: "nullability propagates only through all-nullable sequences",
			src: `
E → F E'
E' → ε | '+' F E'
F → 'f'
`,
			first: []first{
				{lhs: "E", num: 0, dot: 0, symbols: []string{"f"}},
				{lhs: "E'", num: 0, dot: 0, symbols: []string{}, empty: true},
				{lhs: "E'", num: 1, dot: 0, symbols: []string{"+"}},
				{lhs: "F", num: 0, dot: 0, symbols: []string{"f"}},
			},
		},
		{
			caption: "a production mixing a non-empty and an empty alternative",
			src: `
S → 'foo' | ε
`,
			first: []first{
				{lhs: "S'", num: 0, dot: 0, symbols: []string{"foo"}, empty: true},
				{lhs: "S", num: 0, dot: 0, symbols: []string{"foo"}},
				{lhs: "S", num: 1, dot: 0, symbols: []string{}, empty: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			gram := buildTestGrammar(t, tt.src)
			fst, err := genFirstSet(gram.productionSet)
			if err != nil {
				t.Fatal(err)
			}

			for _, ttFirst := range tt.first {
				lhsSym, ok := gram.symbolTable.ToSymbol(ttFirst.lhs)
				if !ok {
					t.Fatalf("symbol was not found: %v", ttFirst.lhs)
				}

				prods, ok := gram.productionSet.findByLHS(lhsSym)
				if !ok {
					t.Fatalf("production was not found; LHS: %v (%v)", ttFirst.lhs, lhsSym)
				}

				actualFirst, err := fst.find(prods[ttFirst.num], ttFirst.dot)
				if err != nil {
					t.Fatalf("failed to get a FIRST set; LHS: %v, num: %v, dot: %v, error: %v", ttFirst.lhs, ttFirst.num, ttFirst.dot, err)
				}

				expectedFirst := genExpectedFirstEntry(t, ttFirst.symbols, ttFirst.empty, gram.symbolTable)

				testFirst(t, actualFirst, expectedFirst)
			}
		})
	}
}

func TestGenFirstSetIsIdempotent(t *testing.T) {
	gram := buildTestGrammar(t, testGrammarLR)

	fst1, err := genFirstSet(gram.productionSet)
	if err != nil {
		t.Fatal(err)
	}
	fst2, err := genFirstSet(gram.productionSet)
	if err != nil {
		t.Fatal(err)
	}

	for _, sym := range gram.symbolTable.NonTerminalSymbols() {
		e1 := fst1.findBySymbol(sym)
		e2 := fst2.findBySymbol(sym)
		if e1 == nil || e2 == nil {
			t.Fatalf("FIRST entry was not found: %v", sym)
		}
		testFirst(t, e2, e1)
	}
}

func genExpectedFirstEntry(t *testing.T, symbols []string, empty bool, symTab *symbol.SymbolTableReader) *firstEntry {
	t.Helper()

	entry := newFirstEntry()
	if empty {
		entry.addEmpty()
	}
	for _, sym := range symbols {
		symSym, ok := symTab.ToSymbol(sym)
		if !ok {
			t.Fatalf("symbol was not found: %v", sym)
		}
		entry.add(symSym)
	}

	return entry
}

func testFirst(t *testing.T, actual, expected *firstEntry) {
	t.Helper()

	if actual.empty != expected.empty {
		t.Errorf("empty is mismatched\nwant: %v\ngot: %v", expected.empty, actual.empty)
	}

	if len(actual.symbols) != len(expected.symbols) {
		t.Fatalf("invalid FIRST set\nwant: %+v\ngot: %+v", expected.symbols, actual.symbols)
	}

	for eSym := range expected.symbols {
		if _, ok := actual.symbols[eSym]; !ok {
			t.Fatalf("invalid FIRST set\nwant: %+v\ngot: %+v", expected.symbols, actual.symbols)
		}
	}
}

package grammar

import (
	"strings"
	"testing"

	"github.com/bilaaaal0/Compiler-Construction-Project/grammar/symbol"
	"github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar/parser"
)

// testGrammarLR is the reference grammar for the LR-family tests. Its LR(0)
// automaton has 20 states with 2 shift/reduce conflicts, SLR(1) keeps only
// the one on '&&', canonical LR(1) grows to 44 states, and the LALR merge
// collapses them back to 20.
const testGrammarLR = `
%name reference

%start Program

%terminals IDENTIFIER

Program → Stmt
Stmt → Expr ';' | Cond ';'
Expr → Factor
Factor → IDENTIFIER | FunctionCall | '(' Expr ')'
FunctionCall → IDENTIFIER '(' ')'
Cond → Expr '==' Expr | Cond '&&' Cond
`

// testGrammarLL is the reference grammar for the LL(1) tests. It needs no
// rewriting and its predictive table has exactly 4 conflicted cells.
const testGrammarLL = `
%name predictive

%start Program

%terminals id

Program → Stmt
Stmt → Expr ';' | Cond ';'
Expr → Factor Expr'
Expr' → '+' Factor Expr' | ε
Factor → id | call | '(' Expr ')'
call → id '(' ')'
Cond → Expr '==' Expr | '(' Cond ')'
`

func buildTestGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := parser.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b := &GrammarBuilder{
		AST: ast,
	}
	gram, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return gram
}

type testSymbolGenerator func(text string) symbol.Symbol

func newTestSymbolGenerator(t *testing.T, symTab *symbol.SymbolTableReader) testSymbolGenerator {
	return func(text string) symbol.Symbol {
		t.Helper()

		sym, ok := symTab.ToSymbol(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

type testProductionGenerator func(lhs string, rhs ...string) *production

func newTestProductionGenerator(t *testing.T, genSym testSymbolGenerator) testProductionGenerator {
	return func(lhs string, rhs ...string) *production {
		t.Helper()

		rhsSym := []symbol.Symbol{}
		for _, text := range rhs {
			rhsSym = append(rhsSym, genSym(text))
		}
		prod, err := newProduction(genSym(lhs), rhsSym)
		if err != nil {
			t.Fatalf("failed to create a production: %v", err)
		}

		return prod
	}
}

type testLR0ItemGenerator func(lhs string, dot int, rhs ...string) *lrItem

func newTestLR0ItemGenerator(t *testing.T, genProd testProductionGenerator) testLR0ItemGenerator {
	return func(lhs string, dot int, rhs ...string) *lrItem {
		t.Helper()

		prod := genProd(lhs, rhs...)
		item, err := newLR0Item(prod, dot)
		if err != nil {
			t.Fatalf("failed to create a LR0 item: %v", err)
		}

		return item
	}
}

func withLookAhead(item *lrItem, lookAhead ...symbol.Symbol) *lrItem {
	item.addLookAhead(lookAhead...)
	return item
}

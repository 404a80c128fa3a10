package grammar

import (
	"github.com/bilaaaal0/Compiler-Construction-Project/grammar/symbol"
)

// Sets is a read-only view over the NULLABLE/FIRST/FOLLOW sets of a grammar.
// All three are computed once, to a fixed point, and never change
// afterwards.
type Sets struct {
	grammar *Grammar
	first   *firstSet
	follow  *followSet
}

// ComputeSets runs the fixed-point computation for a grammar. The grammar is
// not mutated, so concurrent calls over the same grammar are safe.
func ComputeSets(g *Grammar) (*Sets, error) {
	first, err := genFirstSet(g.productionSet)
	if err != nil {
		return nil, err
	}
	follow, err := genFollowSet(g.productionSet, first)
	if err != nil {
		return nil, err
	}
	return &Sets{
		grammar: g,
		first:   first,
		follow:  follow,
	}, nil
}

// Nullable reports whether the named non-terminal can derive the empty
// string. The second result is false when the name is not a non-terminal of
// the grammar.
func (s *Sets) Nullable(nonTermName string) (bool, bool) {
	sym, ok := s.grammar.symbolTable.ToSymbol(nonTermName)
	if !ok || !sym.IsNonTerminal() {
		return false, false
	}
	e := s.first.findBySymbol(sym)
	if e == nil {
		return false, false
	}
	return e.empty, true
}

// First returns the FIRST set of the named non-terminal as terminal names,
// plus whether the set contains ε.
func (s *Sets) First(nonTermName string) ([]string, bool, bool) {
	sym, ok := s.grammar.symbolTable.ToSymbol(nonTermName)
	if !ok || !sym.IsNonTerminal() {
		return nil, false, false
	}
	e := s.first.findBySymbol(sym)
	if e == nil {
		return nil, false, false
	}
	return s.texts(e.sortedSymbols()), e.empty, true
}

// Follow returns the FOLLOW set of the named non-terminal as terminal names,
// plus whether the set contains the end-of-input marker.
func (s *Sets) Follow(nonTermName string) ([]string, bool, bool) {
	sym, ok := s.grammar.symbolTable.ToSymbol(nonTermName)
	if !ok || !sym.IsNonTerminal() {
		return nil, false, false
	}
	e, err := s.follow.find(sym)
	if err != nil {
		return nil, false, false
	}
	return s.texts(e.sortedSymbols()), e.eof, true
}

// NonTerminals lists the non-terminal names, the augmented start symbol
// first.
func (s *Sets) NonTerminals() []string {
	syms := s.grammar.symbolTable.NonTerminalSymbols()
	return s.texts(syms)
}

func (s *Sets) texts(syms []symbol.Symbol) []string {
	texts := make([]string, 0, len(syms))
	for _, sym := range syms {
		text, ok := s.grammar.symbolTable.ToText(sym)
		if !ok {
			continue
		}
		texts = append(texts, text)
	}
	return texts
}

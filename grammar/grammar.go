package grammar

import (
	"fmt"
	"sort"
	"strings"

	verr "github.com/bilaaaal0/Compiler-Construction-Project/error"
	"github.com/bilaaaal0/Compiler-Construction-Project/grammar/symbol"
	"github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar/parser"
)

// Grammar is the immutable in-memory representation of a grammar
// description: a symbol table, a numbered production set, and the designated
// start symbol together with the augmented start production `S' → S`.
//
// A Grammar is never mutated after Build, so any number of analyses may
// share one instance concurrently.
type Grammar struct {
	name                 string
	symbolTable          *symbol.SymbolTableReader
	productionSet        *productionSet
	startSymbol          symbol.Symbol
	augmentedStartSymbol symbol.Symbol
}

func (g *Grammar) Name() string {
	return g.name
}

// ProductionTexts lists all productions in number order, rendered like
// `2: Stmt → Expr ; `.
func (g *Grammar) ProductionTexts() []string {
	prods := make([]*production, 0, len(g.productionSet.getAllProductions()))
	for _, prod := range g.productionSet.getAllProductions() {
		prods = append(prods, prod)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].num < prods[j].num
	})
	texts := make([]string, len(prods))
	for i, prod := range prods {
		texts[i] = fmt.Sprintf("%v: %v", prod.num.Int(), g.productionText(prod))
	}
	return texts
}

func (g *Grammar) productionText(prod *production) string {
	var b strings.Builder
	lhs, _ := g.symbolTable.ToText(prod.lhs)
	fmt.Fprintf(&b, "%v →", lhs)
	if prod.isEmpty() {
		fmt.Fprintf(&b, " ε")
		return b.String()
	}
	for _, sym := range prod.rhs {
		text, _ := g.symbolTable.ToText(sym)
		fmt.Fprintf(&b, " %v", text)
	}
	return b.String()
}

type GrammarBuilder struct {
	AST *parser.RootNode

	errs verr.SpecErrors
}

// Build validates the AST and constructs the Grammar. All structural defects
// are collected and returned together as verr.SpecErrors wrapping
// GrammarError values.
func (b *GrammarBuilder) Build() (*Grammar, error) {
	if b.AST == nil || len(b.AST.Productions) == 0 {
		return nil, verr.SpecErrors{
			&verr.SpecError{
				Cause: gramErrNoProduction,
			},
		}
	}

	name, startName, declaredTerms := b.scanDirectives()

	// Every LHS is a non-terminal. A name declared as a terminal cannot
	// also appear as an LHS.
	lhsNames := []string{}
	lhsSet := map[string]struct{}{}
	for _, prod := range b.AST.Productions {
		if _, ok := declaredTerms[prod.LHS]; ok {
			b.addError(gramErrTerminalAsLHS, prod.LHS, prod.Pos)
			continue
		}
		if _, ok := lhsSet[prod.LHS]; !ok {
			lhsSet[prod.LHS] = struct{}{}
			lhsNames = append(lhsNames, prod.LHS)
		}
	}
	if len(lhsNames) == 0 {
		b.addError(gramErrNoProduction, "", parser.Position{})
		return nil, b.errs
	}

	if startName == "" {
		startName = lhsNames[0]
	} else if _, ok := lhsSet[startName]; !ok {
		b.addError(gramErrUndefinedStart, startName, parser.Position{})
		return nil, b.errs
	}

	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()

	augName := startName + "'"
	for {
		_, usedAsLHS := lhsSet[augName]
		_, usedAsTerm := declaredTerms[augName]
		if !usedAsLHS && !usedAsTerm {
			break
		}
		augName += "'"
	}
	augSym, err := w.RegisterStartSymbol(augName)
	if err != nil {
		return nil, err
	}
	for _, lhs := range lhsNames {
		if _, err := w.RegisterNonTerminalSymbol(lhs); err != nil {
			return nil, err
		}
	}
	for _, term := range b.terminalDeclarationOrder() {
		if _, err := w.RegisterTerminalSymbol(term); err != nil {
			return nil, err
		}
	}

	r := symTab.Reader()
	startSym, _ := r.ToSymbol(startName)

	prodSet := newProductionSet()
	augProd, err := newProduction(augSym, []symbol.Symbol{startSym})
	if err != nil {
		return nil, err
	}
	prodSet.append(augProd)

	for _, prodNode := range b.AST.Productions {
		lhsSym, ok := r.ToSymbol(prodNode.LHS)
		if !ok || !lhsSym.IsNonTerminal() {
			continue
		}
		for _, alt := range prodNode.RHS {
			rhs := make([]symbol.Symbol, 0, len(alt.Elements))
			ok := true
			for _, elem := range alt.Elements {
				var sym symbol.Symbol
				if elem.Literal != "" {
					sym, err = w.RegisterTerminalSymbol(elem.Literal)
					if err != nil {
						return nil, err
					}
				} else {
					var found bool
					sym, found = r.ToSymbol(elem.ID)
					if !found {
						b.addError(gramErrUndefinedSym, elem.ID, elem.Pos)
						ok = false
						continue
					}
				}
				rhs = append(rhs, sym)
			}
			if !ok {
				continue
			}
			prod, err := newProduction(lhsSym, rhs)
			if err != nil {
				return nil, err
			}
			if !prodSet.append(prod) {
				b.addError(gramErrDuplicateProd, altText(prodNode.LHS, alt), alt.Pos)
			}
		}
	}

	if len(b.errs) > 0 {
		return nil, b.errs
	}

	return &Grammar{
		name:                 name,
		symbolTable:          r,
		productionSet:        prodSet,
		startSymbol:          startSym,
		augmentedStartSymbol: augSym,
	}, nil
}

// scanDirectives reads %name, %start, and %terminals. Unknown directives and
// malformed parameter lists are collected as errors.
func (b *GrammarBuilder) scanDirectives() (string, string, map[string]struct{}) {
	var name string
	var startName string
	declaredTerms := map[string]struct{}{}
	for _, dir := range b.AST.Directives {
		switch dir.Name {
		case "name":
			if name != "" {
				b.addError(gramErrDuplicateDirective, "%name", dir.Pos)
				continue
			}
			if len(dir.Parameters) != 1 {
				b.addError(gramErrDirInvalidParam, "%name needs exactly one parameter", dir.Pos)
				continue
			}
			name = dir.Parameters[0]
		case "start":
			if startName != "" {
				b.addError(gramErrDuplicateDirective, "%start", dir.Pos)
				continue
			}
			if len(dir.Parameters) != 1 {
				b.addError(gramErrDirInvalidParam, "%start needs exactly one parameter", dir.Pos)
				continue
			}
			startName = dir.Parameters[0]
		case "terminals":
			for _, param := range dir.Parameters {
				if _, ok := declaredTerms[param]; ok {
					b.addError(gramErrDuplicateTerminal, param, dir.Pos)
					continue
				}
				declaredTerms[param] = struct{}{}
			}
		default:
			b.addError(gramErrDirInvalidName, "%"+dir.Name, dir.Pos)
		}
	}
	return name, startName, declaredTerms
}

// terminalDeclarationOrder returns the %terminals parameters in declaration
// order, first occurrence wins.
func (b *GrammarBuilder) terminalDeclarationOrder() []string {
	var terms []string
	seen := map[string]struct{}{}
	for _, dir := range b.AST.Directives {
		if dir.Name != "terminals" {
			continue
		}
		for _, param := range dir.Parameters {
			if _, ok := seen[param]; ok {
				continue
			}
			seen[param] = struct{}{}
			terms = append(terms, param)
		}
	}
	return terms
}

func (b *GrammarBuilder) addError(cause error, detail string, pos parser.Position) {
	b.errs = append(b.errs, &verr.SpecError{
		Cause:  cause,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}

func altText(lhs string, alt *parser.AlternativeNode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", lhs)
	if len(alt.Elements) == 0 {
		fmt.Fprintf(&b, " ε")
		return b.String()
	}
	for _, elem := range alt.Elements {
		fmt.Fprintf(&b, " %v", elem.Text())
	}
	return b.String()
}

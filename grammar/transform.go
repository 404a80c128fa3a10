package grammar

import (
	"fmt"
	"strings"

	"github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar/parser"
)

// The LL(1) path rewrites grammars before building the predictive table:
// left recursion is eliminated with Paull's algorithm and common prefixes
// are factored out. Both rewrites work on a symbolic view of the grammar and
// the result is rebuilt through GrammarBuilder, so the rewritten grammar
// gets a fresh symbol table and production numbering of its own.

type transformElement struct {
	text     string
	terminal bool
}

type transformRule struct {
	lhs  string
	alts [][]transformElement
}

type transformer struct {
	rules   []*transformRule
	ruleIdx map[string]int
	used    map[string]struct{}
	changed bool
}

// TransformForLL returns a grammar suitable for LL(1) table construction.
// When the input grammar has no left recursion and no common prefixes it is
// returned unchanged and the second result is false.
func TransformForLL(gram *Grammar) (*Grammar, bool, error) {
	t, err := newTransformer(gram)
	if err != nil {
		return nil, false, err
	}

	t.eliminateLeftRecursion()
	t.factorCommonPrefixes()

	if !t.changed {
		return gram, false, nil
	}

	tracer().Infof("grammar %v rewritten for LL(1): %d rules", gram.name, len(t.rules))

	rewritten, err := t.build(gram)
	if err != nil {
		return nil, false, err
	}
	return rewritten, true, nil
}

func newTransformer(gram *Grammar) (*transformer, error) {
	t := &transformer{
		ruleIdx: map[string]int{},
		used:    map[string]struct{}{},
	}

	for _, sym := range gram.symbolTable.TerminalSymbols() {
		if sym.IsEOF() {
			continue
		}
		text, ok := gram.symbolTable.ToText(sym)
		if !ok {
			return nil, fmt.Errorf("terminal symbol not found: %v", sym)
		}
		t.used[text] = struct{}{}
	}

	for _, sym := range gram.symbolTable.NonTerminalSymbols() {
		text, ok := gram.symbolTable.ToText(sym)
		if !ok {
			return nil, fmt.Errorf("non-terminal symbol not found: %v", sym)
		}
		if sym.IsStart() {
			// The augmented start is internal to the old grammar. Its
			// name is re-derived on rebuild, so it must not block a
			// primed name here.
			continue
		}
		t.used[text] = struct{}{}

		rule := &transformRule{
			lhs: text,
		}
		prods, ok := gram.productionSet.findByLHS(sym)
		if !ok {
			return nil, fmt.Errorf("non-terminal %v has no production", text)
		}
		for _, prod := range prods {
			alt := make([]transformElement, len(prod.rhs))
			for i, rhsSym := range prod.rhs {
				rhsText, ok := gram.symbolTable.ToText(rhsSym)
				if !ok {
					return nil, fmt.Errorf("symbol not found: %v", rhsSym)
				}
				alt[i] = transformElement{
					text:     rhsText,
					terminal: rhsSym.IsTerminal(),
				}
			}
			rule.alts = append(rule.alts, alt)
		}
		t.ruleIdx[text] = len(t.rules)
		t.rules = append(t.rules, rule)
	}

	return t, nil
}

func (t *transformer) freshName(base string) string {
	name := base + "'"
	for {
		if _, ok := t.used[name]; !ok {
			break
		}
		name += "'"
	}
	t.used[name] = struct{}{}
	return name
}

// eliminateLeftRecursion runs Paull's algorithm over the rules in their
// original order: indirect recursion through an earlier non-terminal is
// substituted away first, then immediate recursion is unrolled into the
// `A → βA'`, `A' → αA' | ε` shape.
func (t *transformer) eliminateLeftRecursion() {
	// Only the original rules take part in the ordering. Primed rules
	// introduced on the way are never left-recursive.
	orig := make([]*transformRule, len(t.rules))
	copy(orig, t.rules)
	for i, rule := range orig {
		for j := 0; j < i; j++ {
			// Substituting an earlier non-terminal is only needed when
			// it can lead back to this rule's LHS. Anything else must
			// pass through untouched.
			if t.leadsTo(orig[j].lhs, rule.lhs) {
				t.substituteLeading(rule, orig[j])
			}
		}
		t.eliminateImmediateRecursion(rule)
	}
}

// leadsTo reports whether a leftmost derivation from the non-terminal from
// can reach an alternative whose leading symbol is target.
func (t *transformer) leadsTo(from, target string) bool {
	visited := map[string]struct{}{}
	var walk func(name string) bool
	walk = func(name string) bool {
		if _, ok := visited[name]; ok {
			return false
		}
		visited[name] = struct{}{}
		idx, ok := t.ruleIdx[name]
		if !ok {
			return false
		}
		for _, alt := range t.rules[idx].alts {
			if len(alt) == 0 || alt[0].terminal {
				continue
			}
			if alt[0].text == target {
				return true
			}
			if walk(alt[0].text) {
				return true
			}
		}
		return false
	}
	return walk(from)
}

// substituteLeading replaces every alternative of rule starting with
// earlier's LHS by the expansions of earlier's alternatives.
func (t *transformer) substituteLeading(rule *transformRule, earlier *transformRule) {
	var alts [][]transformElement
	for _, alt := range rule.alts {
		if len(alt) == 0 || alt[0].terminal || alt[0].text != earlier.lhs {
			alts = append(alts, alt)
			continue
		}
		t.changed = true
		rest := alt[1:]
		for _, sub := range earlier.alts {
			expanded := make([]transformElement, 0, len(sub)+len(rest))
			expanded = append(expanded, sub...)
			expanded = append(expanded, rest...)
			alts = append(alts, expanded)
		}
	}
	rule.alts = alts
}

func (t *transformer) eliminateImmediateRecursion(rule *transformRule) {
	var recursive [][]transformElement
	var rest [][]transformElement
	for _, alt := range rule.alts {
		if len(alt) > 0 && !alt[0].terminal && alt[0].text == rule.lhs {
			recursive = append(recursive, alt[1:])
		} else {
			rest = append(rest, alt)
		}
	}
	if len(recursive) == 0 {
		return
	}
	t.changed = true

	primed := t.freshName(rule.lhs)
	primedElem := transformElement{text: primed}

	var alts [][]transformElement
	if len(rest) == 0 {
		alts = append(alts, []transformElement{primedElem})
	}
	for _, beta := range rest {
		alt := make([]transformElement, 0, len(beta)+1)
		alt = append(alt, beta...)
		alt = append(alt, primedElem)
		alts = append(alts, alt)
	}
	rule.alts = alts

	primedRule := &transformRule{
		lhs: primed,
	}
	for _, alpha := range recursive {
		alt := make([]transformElement, 0, len(alpha)+1)
		alt = append(alt, alpha...)
		alt = append(alt, primedElem)
		primedRule.alts = append(primedRule.alts, alt)
	}
	primedRule.alts = append(primedRule.alts, []transformElement{})

	t.insertAfter(rule, primedRule)
}

// factorCommonPrefixes repeatedly extracts the longest common prefix shared
// by two or more alternatives of a rule until no rule has one. Fresh primed
// rules may themselves carry common prefixes, so the pass loops to a fixed
// point.
func (t *transformer) factorCommonPrefixes() {
	for {
		factored := false
		for i := 0; i < len(t.rules); i++ {
			if t.factorRule(t.rules[i]) {
				factored = true
			}
		}
		if !factored {
			break
		}
		t.changed = true
	}
}

func (t *transformer) factorRule(rule *transformRule) bool {
	// Group alternatives by their first element in first-appearance order.
	type group struct {
		head transformElement
		alts [][]transformElement
	}
	var groups []*group
	byHead := map[transformElement]*group{}
	var empties [][]transformElement
	for _, alt := range rule.alts {
		if len(alt) == 0 {
			empties = append(empties, alt)
			continue
		}
		g, ok := byHead[alt[0]]
		if !ok {
			g = &group{head: alt[0]}
			byHead[alt[0]] = g
			groups = append(groups, g)
		}
		g.alts = append(g.alts, alt)
	}

	factored := false
	var alts [][]transformElement
	for _, g := range groups {
		if len(g.alts) < 2 {
			alts = append(alts, g.alts...)
			continue
		}
		factored = true

		prefix := commonPrefix(g.alts)
		primed := t.freshName(rule.lhs)
		primedRule := &transformRule{
			lhs: primed,
		}
		for _, alt := range g.alts {
			primedRule.alts = append(primedRule.alts, alt[len(prefix):])
		}

		alt := make([]transformElement, 0, len(prefix)+1)
		alt = append(alt, prefix...)
		alt = append(alt, transformElement{text: primed})
		alts = append(alts, alt)

		t.insertAfter(rule, primedRule)
	}
	if !factored {
		// Leave the alternative order alone.
		return false
	}
	alts = append(alts, empties...)
	rule.alts = alts

	return true
}

func commonPrefix(alts [][]transformElement) []transformElement {
	prefix := alts[0]
	for _, alt := range alts[1:] {
		n := 0
		for n < len(prefix) && n < len(alt) && alt[n] == prefix[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}

func (t *transformer) insertAfter(rule *transformRule, fresh *transformRule) {
	idx := t.ruleIdx[rule.lhs]
	t.rules = append(t.rules, nil)
	copy(t.rules[idx+2:], t.rules[idx+1:])
	t.rules[idx+1] = fresh
	t.ruleIdx = map[string]int{}
	for i, r := range t.rules {
		t.ruleIdx[r.lhs] = i
	}
}

// build synthesizes an AST for the rewritten rules and constructs a Grammar
// from it. The original terminal ordering and the original start symbol are
// carried over through directives.
func (t *transformer) build(gram *Grammar) (*Grammar, error) {
	root := &parser.RootNode{}

	if gram.name != "" {
		root.Directives = append(root.Directives, &parser.DirectiveNode{
			Name:       "name",
			Parameters: []string{gram.name},
		})
	}
	startName, ok := gram.symbolTable.ToText(gram.startSymbol)
	if !ok {
		return nil, fmt.Errorf("start symbol not found: %v", gram.startSymbol)
	}
	root.Directives = append(root.Directives, &parser.DirectiveNode{
		Name:       "start",
		Parameters: []string{startName},
	})
	var termTexts []string
	for _, sym := range gram.symbolTable.TerminalSymbols() {
		if sym.IsEOF() {
			continue
		}
		text, _ := gram.symbolTable.ToText(sym)
		termTexts = append(termTexts, text)
	}
	if len(termTexts) > 0 {
		root.Directives = append(root.Directives, &parser.DirectiveNode{
			Name:       "terminals",
			Parameters: termTexts,
		})
	}

	for _, rule := range t.rules {
		prodNode := &parser.ProductionNode{
			LHS: rule.lhs,
		}
		// Substitution can synthesize an alternative the rule already has.
		seen := map[string]struct{}{}
		for _, alt := range rule.alts {
			key := altKey(alt)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			altNode := &parser.AlternativeNode{}
			for _, elem := range alt {
				if elem.terminal {
					altNode.Elements = append(altNode.Elements, &parser.ElementNode{
						Literal: elem.text,
					})
				} else {
					altNode.Elements = append(altNode.Elements, &parser.ElementNode{
						ID: elem.text,
					})
				}
			}
			prodNode.RHS = append(prodNode.RHS, altNode)
		}
		root.Productions = append(root.Productions, prodNode)
	}

	b := &GrammarBuilder{
		AST: root,
	}
	return b.Build()
}

func altKey(alt []transformElement) string {
	var b strings.Builder
	for _, elem := range alt {
		if elem.terminal {
			fmt.Fprintf(&b, "'%v' ", elem.text)
		} else {
			fmt.Fprintf(&b, "%v ", elem.text)
		}
	}
	return b.String()
}

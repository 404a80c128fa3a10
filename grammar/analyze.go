package grammar

import (
	"fmt"

	"github.com/cnf/structhash"

	spec "github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar"
)

// Class selects the parser class a grammar is analyzed against.
type Class string

const (
	ClassLR0   Class = "LR(0)"
	ClassSLR1  Class = "SLR(1)"
	ClassLALR1 Class = "LALR(1)"
	ClassCLR1  Class = "CLR(1)"
	ClassLL1   Class = "LL(1)"
)

var allClasses = []Class{
	ClassLR0,
	ClassSLR1,
	ClassLALR1,
	ClassCLR1,
	ClassLL1,
}

// Classes lists every supported parser class in presentation order.
func Classes() []Class {
	cs := make([]Class, len(allClasses))
	copy(cs, allClasses)
	return cs
}

type analysisConfig struct {
	stateLimit   int
	resolveShift bool
}

// Option configures a single Analyze call.
type Option func(*analysisConfig)

// WithStateLimit puts a ceiling on the number of automaton states. An
// analysis whose automaton grows past the ceiling fails with a
// ResourceLimitError and produces no report.
func WithStateLimit(n int) Option {
	return func(c *analysisConfig) {
		c.stateLimit = n
	}
}

// ResolveShift makes the emitted ACTION table adopt the shift action of a
// shift/reduce conflict. The conflict is still reported in full; only the
// table cell and the report's adopted action change.
func ResolveShift() Option {
	return func(c *analysisConfig) {
		c.resolveShift = true
	}
}

// Analyze checks gram against one parser class and reports the verdict
// together with the complete construction: automaton states and tables for
// the LR family, the predictive table for LL(1), and every conflict found.
//
// gram is never mutated, so one Grammar may be analyzed against several
// classes concurrently.
func Analyze(gram *Grammar, class Class, opts ...Option) (*spec.ClassReport, error) {
	config := &analysisConfig{}
	for _, opt := range opts {
		opt(config)
	}

	rep := &spec.ClassReport{
		Class:       string(class),
		GrammarName: gram.name,
		Fingerprint: gram.Fingerprint(),
	}

	switch class {
	case ClassLR0, ClassSLR1, ClassLALR1, ClassCLR1:
		lr, err := analyzeLR(gram, class, config)
		if err != nil {
			return nil, err
		}
		rep.LR = lr
		rep.Accepted = len(lr.Conflicts) == 0
	case ClassLL1:
		ll, err := analyzeLL(gram)
		if err != nil {
			return nil, err
		}
		rep.LL = ll
		rep.Accepted = len(ll.Conflicts) == 0
	default:
		return nil, fmt.Errorf("unsupported parser class: %v", class)
	}

	return rep, nil
}

func analyzeLR(gram *Grammar, class Class, config *analysisConfig) (*spec.LRReport, error) {
	first, err := genFirstSet(gram.productionSet)
	if err != nil {
		return nil, err
	}

	policy := lookaheadNone
	if class == ClassCLR1 || class == ClassLALR1 {
		policy = lookaheadFull
	}

	automaton, err := genLRAutomaton(gram.productionSet, gram.augmentedStartSymbol, first, policy, config.stateLimit)
	if err != nil {
		return nil, err
	}

	var merge *spec.MergeSummary
	if class == ClassLALR1 {
		clr := automaton
		automaton, err = genLALRAutomaton(clr)
		if err != nil {
			return nil, err
		}
		merge = &spec.MergeSummary{
			CLRStateCount:  len(clr.stateList),
			LALRStateCount: len(automaton.stateList),
		}
		for _, state := range automaton.stateList {
			group := make([]int, len(state.mergedFrom))
			for i, num := range state.mergedFrom {
				group[i] = num.Int()
			}
			merge.Groups = append(merge.Groups, group)
		}
	}

	var follow *followSet
	switch class {
	case ClassLR0:
		err = decorateLR0Reduce(automaton, gram.productionSet, gram.symbolTable)
	case ClassSLR1:
		follow, err = genFollowSet(gram.productionSet, first)
		if err != nil {
			break
		}
		err = decorateSLRReduce(automaton, gram.productionSet, follow)
	default:
		// Canonical LR(1) items, and the LALR merge over them, already
		// carry the reduce lookaheads.
	}
	if err != nil {
		return nil, err
	}

	builder := &lrTableBuilder{
		automaton:    automaton,
		prods:        gram.productionSet,
		termCount:    len(gram.symbolTable.TerminalSymbols()) + 1,
		nonTermCount: len(gram.symbolTable.NonTerminalSymbols()) + 1,
		symTab:       gram.symbolTable,
		resolveShift: config.resolveShift,
	}
	tab, err := builder.build()
	if err != nil {
		return nil, err
	}

	itemLookAhead := class == ClassCLR1 || class == ClassLALR1
	rep, err := builder.genReport(tab, gram, itemLookAhead)
	if err != nil {
		return nil, err
	}

	// The FIRST and FOLLOW tables go with the classes whose construction
	// consumes lookahead information.
	if class != ClassLR0 {
		if follow == nil {
			follow, err = genFollowSet(gram.productionSet, first)
			if err != nil {
				return nil, err
			}
		}
		rep.First = genFirstReport(gram, first)
		rep.Follow = genFollowReport(gram, follow)
	}
	rep.Merge = merge

	return rep, nil
}

func analyzeLL(gram *Grammar) (*spec.LLReport, error) {
	target, rewritten, err := TransformForLL(gram)
	if err != nil {
		return nil, err
	}

	first, err := genFirstSet(target.productionSet)
	if err != nil {
		return nil, err
	}
	follow, err := genFollowSet(target.productionSet, first)
	if err != nil {
		return nil, err
	}

	table, err := genLLTable(target, first, follow)
	if err != nil {
		return nil, err
	}

	return genLLReport(target, first, follow, table, rewritten)
}

type grammarDigest struct {
	Name        string
	Productions []string
}

// Fingerprint is a stable hash of the grammar's name and numbered
// production listing. Two Build results with the same productions in the
// same order share a fingerprint.
func (g *Grammar) Fingerprint() string {
	return fmt.Sprintf("%x", structhash.Sha1(grammarDigest{
		Name:        g.name,
		Productions: g.ProductionTexts(),
	}, 1))
}

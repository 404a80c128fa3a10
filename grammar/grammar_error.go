package grammar

import "fmt"

// GrammarError is a structural defect of a grammar description. It aborts an
// analysis before any automaton or table is produced.
type GrammarError struct {
	message string
}

func newGrammarError(message string) *GrammarError {
	return &GrammarError{
		message: message,
	}
}

func (e *GrammarError) Error() string {
	return e.message
}

var (
	gramErrNoProduction       = newGrammarError("a grammar needs at least one production")
	gramErrUndefinedSym       = newGrammarError("undefined symbol")
	gramErrDuplicateProd      = newGrammarError("duplicate production")
	gramErrDuplicateTerminal  = newGrammarError("duplicate terminal")
	gramErrTerminalAsLHS      = newGrammarError("a declared terminal cannot be a production LHS")
	gramErrUndefinedStart     = newGrammarError("the start symbol has no production")
	gramErrDirInvalidName     = newGrammarError("invalid directive name")
	gramErrDirInvalidParam    = newGrammarError("invalid directive parameter")
	gramErrDuplicateDirective = newGrammarError("duplicate directive")
)

// ResourceLimitError reports that an automaton construction exceeded a
// caller-imposed state ceiling. It is distinct from GrammarError: the
// grammar is well-formed, the construction just grew past the limit.
type ResourceLimitError struct {
	States int
	Limit  int
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("state count exceeded the limit; limit: %v, states: %v", e.Limit, e.States)
}

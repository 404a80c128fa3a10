package grammar

import "fmt"

// Action kinds appearing in ACTION tables and conflict listings.
const (
	ActionShift  = "shift"
	ActionReduce = "reduce"
	ActionAccept = "accept"
)

// Conflict classifications. A conflict is a shift/reduce conflict when at
// least one of the competing actions is a shift, and a reduce/reduce
// conflict otherwise. The accept action counts as a reduce.
const (
	ConflictShiftReduce  = "shift/reduce"
	ConflictReduceReduce = "reduce/reduce"
)

type Terminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type NonTerminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Production is a numbered production rule. Elements of RHS are terminal
// symbol numbers when positive and negated non-terminal symbol numbers when
// negative.
type Production struct {
	Number int   `json:"number"`
	LHS    int   `json:"lhs"`
	RHS    []int `json:"rhs"`
}

type Item struct {
	Production int   `json:"production"`
	Dot        int   `json:"dot"`
	LookAhead  []int `json:"look_ahead,omitempty"`
}

type Transition struct {
	Symbol int `json:"symbol"`
	State  int `json:"state"`
}

type Reduce struct {
	LookAhead  []int `json:"look_ahead"`
	Production int   `json:"production"`
}

type Action struct {
	Type       string `json:"type"`
	State      int    `json:"state,omitempty"`
	Production int    `json:"production,omitempty"`
}

// Cell renders an action the way ACTION-table cells spell it: s5, r3, acc.
func (a *Action) Cell() string {
	switch a.Type {
	case ActionAccept:
		return "acc"
	case ActionShift:
		return fmt.Sprintf("s%v", a.State)
	default:
		return fmt.Sprintf("r%v", a.Production)
	}
}

// Conflict is a table cell that received more than one action. All competing
// actions are retained in registration order. Adopted is non-nil only when a
// resolution policy was explicitly enabled.
type Conflict struct {
	State   int       `json:"state"`
	Symbol  int       `json:"symbol"`
	Actions []*Action `json:"actions"`
	Type    string    `json:"type"`
	Adopted *Action   `json:"adopted,omitempty"`
}

type State struct {
	Number     int           `json:"number"`
	Kernel     []*Item       `json:"kernel"`
	Shift      []*Transition `json:"shift"`
	Reduce     []*Reduce     `json:"reduce"`
	GoTo       []*Transition `json:"goto"`
	Conflicts  []*Conflict   `json:"conflicts,omitempty"`
	MergedFrom []int         `json:"merged_from,omitempty"`
}

// SymbolSet is a row of a FIRST or FOLLOW table. Empty is meaningful only
// for FIRST rows, EOF only for FOLLOW rows.
type SymbolSet struct {
	Symbol  int   `json:"symbol"`
	Symbols []int `json:"symbols"`
	Empty   bool  `json:"empty,omitempty"`
	EOF     bool  `json:"eof,omitempty"`
}

// MergeSummary describes how canonical LR(1) states collapsed into LALR(1)
// states. Each group lists the CLR state numbers sharing one core.
type MergeSummary struct {
	CLRStateCount  int     `json:"clr_state_count"`
	LALRStateCount int     `json:"lalr_state_count"`
	Groups         [][]int `json:"groups"`
}

type LRReport struct {
	Terminals    []*Terminal    `json:"terminals"`
	NonTerminals []*NonTerminal `json:"non_terminals"`
	Productions  []*Production  `json:"productions"`
	States       []*State       `json:"states"`
	Conflicts    []*Conflict    `json:"conflicts"`
	First        []*SymbolSet   `json:"first,omitempty"`
	Follow       []*SymbolSet   `json:"follow,omitempty"`
	Merge        *MergeSummary  `json:"merge,omitempty"`
}

type PredictiveCell struct {
	NonTerminal int   `json:"non_terminal"`
	Terminal    int   `json:"terminal"`
	Productions []int `json:"productions"`
}

type LLConflict struct {
	NonTerminal int   `json:"non_terminal"`
	Terminal    int   `json:"terminal"`
	Productions []int `json:"productions"`
}

type LLReport struct {
	Terminals    []*Terminal       `json:"terminals"`
	NonTerminals []*NonTerminal    `json:"non_terminals"`
	Productions  []*Production     `json:"productions"`
	Nullable     []int             `json:"nullable"`
	First        []*SymbolSet      `json:"first"`
	Follow       []*SymbolSet      `json:"follow"`
	Table        []*PredictiveCell `json:"table"`
	Conflicts    []*LLConflict     `json:"conflicts"`

	// Rewritten is true when left-recursion elimination or left factoring
	// changed the grammar. Productions then lists the rewritten grammar.
	Rewritten bool `json:"rewritten,omitempty"`
}

// ClassReport is the result of analyzing one grammar against one parser
// class. Exactly one of LR and LL is non-nil. Accepted is true iff the
// conflict list of the populated payload is empty.
type ClassReport struct {
	Class       string    `json:"class"`
	GrammarName string    `json:"grammar_name"`
	Fingerprint string    `json:"fingerprint"`
	Accepted    bool      `json:"accepted"`
	LR          *LRReport `json:"lr,omitempty"`
	LL          *LLReport `json:"ll,omitempty"`
}

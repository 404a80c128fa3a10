package grammar

import (
	"fmt"
	"sort"

	"github.com/bilaaaal0/Compiler-Construction-Project/grammar/symbol"
	spec "github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar"
)

type ActionType string

const (
	ActionTypeShift  = ActionType("shift")
	ActionTypeReduce = ActionType("reduce")
	ActionTypeError  = ActionType("error")
)

// actionEntry is one ACTION-table cell: negative values encode a shift to
// state -n, positive values a reduce of production n, zero an error. The
// reduce of the augmented start production (number 1) is the accept action.
type actionEntry int

const actionEntryEmpty = actionEntry(0)

func newShiftActionEntry(state stateNum) actionEntry {
	return actionEntry(state * -1)
}

func newReduceActionEntry(prod productionNum) actionEntry {
	return actionEntry(prod)
}

func (e actionEntry) isEmpty() bool {
	return e == actionEntryEmpty
}

func (e actionEntry) describe() (ActionType, stateNum, productionNum) {
	if e == actionEntryEmpty {
		return ActionTypeError, stateNumInitial, productionNumNil
	}
	if e < 0 {
		return ActionTypeShift, stateNum(e * -1), productionNumNil
	}
	return ActionTypeReduce, stateNumInitial, productionNum(e)
}

type GoToType string

const (
	GoToTypeRegistered = GoToType("registered")
	GoToTypeError      = GoToType("error")
)

type goToEntry uint

const goToEntryEmpty = goToEntry(0)

func newGoToEntry(state stateNum) goToEntry {
	return goToEntry(state)
}

func (e goToEntry) describe() (GoToType, stateNum) {
	if e == goToEntryEmpty {
		return GoToTypeError, stateNumInitial
	}
	return GoToTypeRegistered, stateNum(e)
}

type parsingTable struct {
	actionTable      []actionEntry
	goToTable        []goToEntry
	stateCount       int
	terminalCount    int
	nonTerminalCount int
	initialState     stateNum
}

func (t *parsingTable) getAction(state stateNum, sym symbol.SymbolNum) (ActionType, stateNum, productionNum) {
	pos := state.Int()*t.terminalCount + sym.Int()
	return t.actionTable[pos].describe()
}

func (t *parsingTable) getGoTo(state stateNum, sym symbol.SymbolNum) (GoToType, stateNum) {
	pos := state.Int()*t.nonTerminalCount + sym.Int()
	return t.goToTable[pos].describe()
}

func (t *parsingTable) readAction(row int, col int) actionEntry {
	return t.actionTable[row*t.terminalCount+col]
}

func (t *parsingTable) writeAction(row int, col int, act actionEntry) {
	t.actionTable[row*t.terminalCount+col] = act
}

func (t *parsingTable) writeGoTo(state stateNum, sym symbol.Symbol, nextState stateNum) {
	pos := state.Int()*t.nonTerminalCount + sym.Num().Int()
	t.goToTable[pos] = newGoToEntry(nextState)
}

// tableAction is one competing action inside a conflicted cell.
type tableAction struct {
	ty        ActionType
	nextState stateNum
	prod      productionNum
}

func (a *tableAction) equal(b *tableAction) bool {
	return a.ty == b.ty && a.nextState == b.nextState && a.prod == b.prod
}

// tableConflict is a cell that received more than one action. Every
// competing action is retained in registration order; nothing is dropped.
type tableConflict struct {
	state   stateNum
	sym     symbol.Symbol
	actions []*tableAction
}

func (c *tableConflict) append(act *tableAction) {
	for _, a := range c.actions {
		if a.equal(act) {
			return
		}
	}
	c.actions = append(c.actions, act)
}

// classify follows the original rule: a conflict is a shift/reduce conflict
// when at least one competing action is a shift and a reduce/reduce conflict
// otherwise (accept counts as a reduce).
func (c *tableConflict) classify() string {
	for _, a := range c.actions {
		if a.ty == ActionTypeShift {
			return spec.ConflictShiftReduce
		}
	}
	return spec.ConflictReduceReduce
}

type conflictCell struct {
	state stateNum
	sym   symbol.Symbol
}

// lrTableBuilder fills the ACTION and GOTO tables of a decorated automaton.
// Conflicting registrations never abort the build: the tables are completed
// in full and every conflict is recorded. By default no resolution policy is
// applied and the first registered action stays in the cell; the only
// resolution available is the explicit shift preference.
type lrTableBuilder struct {
	automaton    *lrAutomaton
	prods        *productionSet
	termCount    int
	nonTermCount int
	symTab       *symbol.SymbolTableReader
	resolveShift bool

	conflicts    map[conflictCell]*tableConflict
	conflictList []*tableConflict
}

func (b *lrTableBuilder) build() (*parsingTable, error) {
	b.conflicts = map[conflictCell]*tableConflict{}

	initialState := b.automaton.states[b.automaton.initialState]
	ptab := &parsingTable{
		actionTable:      make([]actionEntry, len(b.automaton.states)*b.termCount),
		goToTable:        make([]goToEntry, len(b.automaton.states)*b.nonTermCount),
		stateCount:       len(b.automaton.states),
		terminalCount:    b.termCount,
		nonTerminalCount: b.nonTermCount,
		initialState:     initialState.num,
	}

	for _, state := range b.automaton.stateList {
		nextSyms := make([]symbol.Symbol, 0, len(state.next))
		for sym := range state.next {
			nextSyms = append(nextSyms, sym)
		}
		sort.Slice(nextSyms, func(i, j int) bool {
			return nextSyms[i] < nextSyms[j]
		})
		for _, sym := range nextSyms {
			nextState := b.automaton.states[state.next[sym]]
			if sym.IsTerminal() {
				b.writeShiftAction(ptab, state.num, sym, nextState.num)
			} else {
				ptab.writeGoTo(state.num, sym, nextState.num)
			}
		}

		reducibleProds := make([]*production, 0, len(state.reducible))
		for prodID := range state.reducible {
			prod, ok := b.prods.findByID(prodID)
			if !ok {
				return nil, fmt.Errorf("reducible production not found: %v", prodID)
			}
			reducibleProds = append(reducibleProds, prod)
		}
		sort.Slice(reducibleProds, func(i, j int) bool {
			return reducibleProds[i].num < reducibleProds[j].num
		})

		for _, prod := range reducibleProds {
			item, err := findReducibleItem(state, prod.id)
			if err != nil {
				return nil, err
			}
			for _, a := range item.sortedLookAhead() {
				b.writeReduceAction(ptab, state.num, a, prod.num)
			}
		}
	}

	sort.Slice(b.conflictList, func(i, j int) bool {
		if b.conflictList[i].state != b.conflictList[j].state {
			return b.conflictList[i].state < b.conflictList[j].state
		}
		return b.conflictList[i].sym.Num() < b.conflictList[j].sym.Num()
	})

	if len(b.conflictList) > 0 {
		tracer().Infof("table complete: %d states, %d conflicted cells", ptab.stateCount, len(b.conflictList))
	} else {
		tracer().Infof("table complete: %d states, no conflicts", ptab.stateCount)
	}

	return ptab, nil
}

// writeShiftAction writes a shift action. When the cell already holds a
// reduce, the collision is recorded as a conflict; the shift wins the cell
// only under the explicit shift preference.
func (b *lrTableBuilder) writeShiftAction(tab *parsingTable, state stateNum, sym symbol.Symbol, nextState stateNum) {
	act := tab.readAction(state.Int(), sym.Num().Int())
	if act.isEmpty() {
		tab.writeAction(state.Int(), sym.Num().Int(), newShiftActionEntry(nextState))
		return
	}
	b.recordConflict(state, sym, act, &tableAction{
		ty:        ActionTypeShift,
		nextState: nextState,
	})
	if b.resolveShift {
		tab.writeAction(state.Int(), sym.Num().Int(), newShiftActionEntry(nextState))
	}
}

// writeReduceAction writes a reduce action. A collision with any other
// action is recorded as a conflict and the cell keeps its first action
// unless the explicit shift preference adopted a shift.
func (b *lrTableBuilder) writeReduceAction(tab *parsingTable, state stateNum, sym symbol.Symbol, prod productionNum) {
	act := tab.readAction(state.Int(), sym.Num().Int())
	if act.isEmpty() {
		tab.writeAction(state.Int(), sym.Num().Int(), newReduceActionEntry(prod))
		return
	}
	ty, _, p := act.describe()
	if ty == ActionTypeReduce && p == prod {
		return
	}
	b.recordConflict(state, sym, act, &tableAction{
		ty:   ActionTypeReduce,
		prod: prod,
	})
}

func (b *lrTableBuilder) recordConflict(state stateNum, sym symbol.Symbol, existing actionEntry, incoming *tableAction) {
	cell := conflictCell{
		state: state,
		sym:   sym,
	}
	c, ok := b.conflicts[cell]
	if !ok {
		c = &tableConflict{
			state: state,
			sym:   sym,
		}
		ty, s, p := existing.describe()
		c.append(&tableAction{
			ty:        ty,
			nextState: s,
			prod:      p,
		})
		b.conflicts[cell] = c
		b.conflictList = append(b.conflictList, c)
	}
	c.append(incoming)
}

package grammar

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"

	"github.com/bilaaaal0/Compiler-Construction-Project/grammar/symbol"
)

// lookaheadPolicy selects how much lookahead information the automaton
// builder keeps. Under lookaheadNone items are plain LR(0) items; under
// lookaheadFull items carry lookahead sets and state identity includes them,
// which yields the canonical LR(1) collection.
type lookaheadPolicy int

const (
	lookaheadNone lookaheadPolicy = iota
	lookaheadFull
)

type lrItemID [32]byte

func (id lrItemID) String() string {
	return fmt.Sprintf("%x", id.num())
}

func (id lrItemID) num() uint32 {
	return binary.LittleEndian.Uint32(id[:])
}

// lrItem is a production with a dot position. The id identifies the item's
// core only; lookahead symbols are kept alongside and merged by core during
// closure.
type lrItem struct {
	id   lrItemID
	prod productionID

	// E → E + T
	//
	// Dot | Dotted Symbol | Item
	// ----+---------------+------------
	// 0   | E             | E →・E + T
	// 1   | +             | E → E・+ T
	// 2   | T             | E → E +・T
	// 3   | Nil           | E → E + T・
	dot          int
	dottedSymbol symbol.Symbol

	// When initial is true, the LHS of the production is the augmented start
	// symbol and dot is 0. It looks like S' →・S.
	initial bool

	// When reducible is true, the item looks like E → E + T・.
	reducible bool

	// When kernel is true, the item is a kernel item.
	kernel bool

	// lookAhead stores the terminal symbols on which the item may reduce.
	// The automaton builder fills it during closure under lookaheadFull;
	// the per-class decoration fills it for LR(0) and SLR(1).
	lookAhead map[symbol.Symbol]struct{}
}

func newLR0Item(prod *production, dot int) (*lrItem, error) {
	if prod == nil {
		return nil, fmt.Errorf("production must be non-nil")
	}

	if dot < 0 || dot > prod.rhsLen {
		return nil, fmt.Errorf("dot must be between 0 and %v", prod.rhsLen)
	}

	var id lrItemID
	{
		b := []byte{}
		b = append(b, prod.id[:]...)
		bDot := make([]byte, 8)
		binary.LittleEndian.PutUint64(bDot, uint64(dot))
		b = append(b, bDot...)
		id = sha256.Sum256(b)
	}

	dottedSymbol := symbol.SymbolNil
	if dot < prod.rhsLen {
		dottedSymbol = prod.rhs[dot]
	}

	initial := false
	if prod.lhs.IsStart() && dot == 0 {
		initial = true
	}

	reducible := false
	if dot == prod.rhsLen {
		reducible = true
	}

	kernel := false
	if initial || dot > 0 {
		kernel = true
	}

	item := &lrItem{
		id:           id,
		prod:         prod.id,
		dot:          dot,
		dottedSymbol: dottedSymbol,
		initial:      initial,
		reducible:    reducible,
		kernel:       kernel,
	}

	return item, nil
}

func (i *lrItem) addLookAhead(syms ...symbol.Symbol) bool {
	changed := false
	for _, sym := range syms {
		if i.lookAhead == nil {
			i.lookAhead = map[symbol.Symbol]struct{}{}
		}
		if _, ok := i.lookAhead[sym]; ok {
			continue
		}
		i.lookAhead[sym] = struct{}{}
		changed = true
	}
	return changed
}

func (i *lrItem) sortedLookAhead() []symbol.Symbol {
	return sortSymbols(i.lookAhead)
}

// clone copies the item together with its lookahead set. States never share
// item objects, so lookahead decoration of one automaton cannot leak into
// another.
func (i *lrItem) clone() *lrItem {
	c := *i
	c.lookAhead = nil
	if i.lookAhead != nil {
		c.lookAhead = make(map[symbol.Symbol]struct{}, len(i.lookAhead))
		for sym := range i.lookAhead {
			c.lookAhead[sym] = struct{}{}
		}
	}
	return &c
}

type kernelID [32]byte

func (id kernelID) String() string {
	return fmt.Sprintf("%x", binary.LittleEndian.Uint32(id[:]))
}

// kernel is a deduplicated, sorted set of kernel items hashed into an
// identity key. Under lookaheadFull the key covers the lookahead sets, so
// two kernels with equal cores but different lookaheads stay distinct
// states. coreID always covers the cores only; it is what the LALR merge
// groups by.
type kernel struct {
	id     kernelID
	coreID kernelID
	items  []*lrItem
}

func newKernel(items []*lrItem, policy lookaheadPolicy) (*kernel, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("a kernel needs at least one item")
	}

	// Remove duplicates from items.
	var sortedItems []*lrItem
	{
		m := map[lrItemID]*lrItem{}
		for _, item := range items {
			if !item.kernel {
				return nil, fmt.Errorf("not a kernel item: %v", item)
			}
			m[item.id] = item
		}
		sortedItems = []*lrItem{}
		for _, item := range m {
			sortedItems = append(sortedItems, item)
		}
		sort.Slice(sortedItems, func(i, j int) bool {
			return sortedItems[i].id.num() < sortedItems[j].id.num()
		})
	}

	var coreID kernelID
	{
		b := []byte{}
		for _, item := range sortedItems {
			b = append(b, item.id[:]...)
		}
		coreID = sha256.Sum256(b)
	}

	id := coreID
	if policy == lookaheadFull {
		b := []byte{}
		for _, item := range sortedItems {
			b = append(b, item.id[:]...)
			for _, sym := range item.sortedLookAhead() {
				b = append(b, sym.Byte()...)
			}
		}
		id = sha256.Sum256(b)
	}

	return &kernel{
		id:     id,
		coreID: coreID,
		items:  sortedItems,
	}, nil
}

type stateNum int

const stateNumInitial = stateNum(0)

func (n stateNum) Int() int {
	return int(n)
}

func (n stateNum) String() string {
	return strconv.Itoa(int(n))
}

func (n stateNum) next() stateNum {
	return stateNum(n + 1)
}

type lrState struct {
	*kernel
	num       stateNum
	next      map[symbol.Symbol]kernelID
	reducible map[productionID]struct{}

	// emptyProdItems stores reducible items with an empty production like
	// `p → ・ε`. They are closure items, not kernel items, so the kernel
	// cannot hold their lookahead sets.
	emptyProdItems []*lrItem

	// mergedFrom lists the canonical LR(1) state numbers an LALR(1) state
	// was merged from. It stays nil for states of any other automaton kind.
	mergedFrom []stateNum
}

// findItemByCore returns the kernel item or empty-production item with the
// given core id.
func (s *lrState) findItemByCore(id lrItemID) *lrItem {
	for _, item := range s.items {
		if item.id == id {
			return item
		}
	}
	for _, item := range s.emptyProdItems {
		if item.id == id {
			return item
		}
	}
	return nil
}

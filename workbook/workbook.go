// Package workbook renders analysis reports into xlsx workbooks, one
// workbook per analysis. Sheet selection follows the report payload: LR
// reports get the automaton and table sheets, LL reports the predictive
// table sheets.
package workbook

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/tracing"
	"github.com/xuri/excelize/v2"

	spec "github.com/bilaaaal0/Compiler-Construction-Project/spec/grammar"
)

func tracer() tracing.Trace {
	return tracing.Select("gramcheck.workbook")
}

const conflictSeparator = " / "

// Write renders rep as an xlsx workbook.
func Write(w io.Writer, rep *spec.ClassReport) error {
	wb, err := newWorkbook(rep)
	if err != nil {
		return err
	}
	defer wb.file.Close()

	if err := wb.render(); err != nil {
		return err
	}
	return wb.file.Write(w)
}

// Save renders rep as an xlsx workbook at path.
func Save(path string, rep *spec.ClassReport) error {
	wb, err := newWorkbook(rep)
	if err != nil {
		return err
	}
	defer wb.file.Close()

	if err := wb.render(); err != nil {
		return err
	}
	tracer().Infof("saving %v workbook to %v", rep.Class, path)
	return wb.file.SaveAs(path)
}

type workbook struct {
	file *excelize.File
	rep  *spec.ClassReport

	headerStyle   int
	conflictStyle int
	boldStyle     int

	renamedDefault bool

	termNames    map[int]string
	nonTermNames map[int]string
	prods        []*spec.Production
}

func newWorkbook(rep *spec.ClassReport) (*workbook, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"70AD47"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	conflictStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FF0000"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	wb := &workbook{
		file:          f,
		rep:           rep,
		headerStyle:   headerStyle,
		conflictStyle: conflictStyle,
		boldStyle:     boldStyle,
		termNames:     map[int]string{},
		nonTermNames:  map[int]string{},
	}

	var terms []*spec.Terminal
	var nonTerms []*spec.NonTerminal
	switch {
	case rep.LR != nil:
		terms, nonTerms, wb.prods = rep.LR.Terminals, rep.LR.NonTerminals, rep.LR.Productions
	case rep.LL != nil:
		terms, nonTerms, wb.prods = rep.LL.Terminals, rep.LL.NonTerminals, rep.LL.Productions
	default:
		return nil, fmt.Errorf("report carries neither an LR nor an LL payload")
	}
	for _, t := range terms {
		if t == nil {
			continue
		}
		wb.termNames[t.Number] = t.Name
	}
	for _, n := range nonTerms {
		if n == nil {
			continue
		}
		wb.nonTermNames[n.Number] = n.Name
	}

	return wb, nil
}

func (wb *workbook) render() error {
	if err := wb.renderResult(); err != nil {
		return err
	}
	if wb.rep.LR != nil && wb.rep.LR.Merge != nil {
		if err := wb.renderComparison(); err != nil {
			return err
		}
	}
	if err := wb.renderGrammar(); err != nil {
		return err
	}
	if wb.rep.LR != nil {
		if err := wb.renderStates(); err != nil {
			return err
		}
		if err := wb.renderActionTable(); err != nil {
			return err
		}
		if err := wb.renderGoToTable(); err != nil {
			return err
		}
		if err := wb.renderTransitions(); err != nil {
			return err
		}
		if err := wb.renderSymbolSets("FIRST Sets", wb.rep.LR.First, false); err != nil {
			return err
		}
		if err := wb.renderSymbolSets("FOLLOW Sets", wb.rep.LR.Follow, true); err != nil {
			return err
		}
	}
	if wb.rep.LL != nil {
		if err := wb.renderNullable(); err != nil {
			return err
		}
		if err := wb.renderSymbolSets("FIRST Sets", wb.rep.LL.First, false); err != nil {
			return err
		}
		if err := wb.renderSymbolSets("FOLLOW Sets", wb.rep.LL.Follow, true); err != nil {
			return err
		}
		if err := wb.renderPredictiveTable(); err != nil {
			return err
		}
	}
	return nil
}

// sheet opens a fresh sheet and returns a sticky-error cell writer. The
// first sheet reuses the workbook's default sheet so the file never carries
// an empty leading sheet.
func (wb *workbook) sheet(name string) *sheetWriter {
	if !wb.renamedDefault {
		wb.file.SetSheetName(wb.file.GetSheetName(0), name)
		wb.renamedDefault = true
	} else {
		wb.file.NewSheet(name)
	}
	return &sheetWriter{
		file:  wb.file,
		sheet: name,
	}
}

func (wb *workbook) terminalName(num int) string {
	if name, ok := wb.termNames[num]; ok {
		if name == "<eof>" {
			return "$"
		}
		return name
	}
	return fmt.Sprintf("t%v", num)
}

func (wb *workbook) nonTerminalName(num int) string {
	if name, ok := wb.nonTermNames[num]; ok {
		return name
	}
	return fmt.Sprintf("n%v", num)
}

func (wb *workbook) symbolName(num int) string {
	if num < 0 {
		return wb.nonTerminalName(-num)
	}
	return wb.terminalName(num)
}

func (wb *workbook) productionText(num int) string {
	if num < 0 || num >= len(wb.prods) || wb.prods[num] == nil {
		return fmt.Sprintf("p%v", num)
	}
	p := wb.prods[num]
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", wb.nonTerminalName(p.LHS))
	if len(p.RHS) == 0 {
		b.WriteString(" ε")
		return b.String()
	}
	for _, e := range p.RHS {
		fmt.Fprintf(&b, " %v", wb.symbolName(e))
	}
	return b.String()
}

func (wb *workbook) itemText(item *spec.Item) string {
	p := wb.prods[item.Production]
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", wb.nonTerminalName(p.LHS))
	for i, e := range p.RHS {
		if i == item.Dot {
			b.WriteString(" ・")
		}
		fmt.Fprintf(&b, " %v", wb.symbolName(e))
	}
	if item.Dot >= len(p.RHS) {
		b.WriteString(" ・")
	}
	if len(item.LookAhead) > 0 {
		las := make([]string, len(item.LookAhead))
		for i, la := range item.LookAhead {
			las[i] = wb.terminalName(la)
		}
		fmt.Fprintf(&b, ", %v", strings.Join(las, "/"))
	}
	return b.String()
}

// terminalColumns collects the terminal numbers appearing in the report in
// ascending order.
func (wb *workbook) terminalColumns() []int {
	set := treeset.NewWith(utils.IntComparator)
	for num := range wb.termNames {
		set.Add(num)
	}
	nums := make([]int, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		nums = append(nums, it.Value().(int))
	}
	return nums
}

func (wb *workbook) nonTerminalColumns() []int {
	set := treeset.NewWith(utils.IntComparator)
	for num := range wb.nonTermNames {
		set.Add(num)
	}
	nums := make([]int, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		nums = append(nums, it.Value().(int))
	}
	return nums
}

type sheetWriter struct {
	file  *excelize.File
	sheet string
	err   error
}

func (s *sheetWriter) set(col, row int, v interface{}) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.file.SetCellValue(s.sheet, cell, v)
}

func (s *sheetWriter) style(col, row int, styleID int) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.file.SetCellStyle(s.sheet, cell, cell, styleID)
}

func (s *sheetWriter) colWidth(startCol, endCol int, width float64) {
	if s.err != nil {
		return
	}
	start, err := excelize.ColumnNumberToName(startCol)
	if err != nil {
		s.err = err
		return
	}
	end, err := excelize.ColumnNumberToName(endCol)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.file.SetColWidth(s.sheet, start, end, width)
}

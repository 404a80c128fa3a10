package symbol

import "testing"

func TestSymbol(t *testing.T) {
	tab := NewSymbolTable()
	w := tab.Writer()
	_, _ = w.RegisterStartSymbol("Program'")
	_, _ = w.RegisterNonTerminalSymbol("Program")
	_, _ = w.RegisterNonTerminalSymbol("Expr")
	_, _ = w.RegisterNonTerminalSymbol("Factor")
	_, _ = w.RegisterTerminalSymbol("id")
	_, _ = w.RegisterTerminalSymbol("+")
	_, _ = w.RegisterTerminalSymbol("(")
	_, _ = w.RegisterTerminalSymbol(")")

	nonTermTexts := []string{
		"", // Nil
		"Program'",
		"Program",
		"Expr",
		"Factor",
	}

	termTexts := []string{
		"",            // Nil
		symbolNameEOF, // EOF
		"id",
		"+",
		"(",
		")",
	}

	tests := []struct {
		text          string
		isNil         bool
		isStart       bool
		isEOF         bool
		isNonTerminal bool
		isTerminal    bool
	}{
		{
			text:          "Program'",
			isStart:       true,
			isNonTerminal: true,
		},
		{
			text:          "Program",
			isNonTerminal: true,
		},
		{
			text:          "Expr",
			isNonTerminal: true,
		},
		{
			text:          "Factor",
			isNonTerminal: true,
		},
		{
			text:       "id",
			isTerminal: true,
		},
		{
			text:       "+",
			isTerminal: true,
		},
		{
			text:       "(",
			isTerminal: true,
		},
		{
			text:       ")",
			isTerminal: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := tab.Reader()
			sym, ok := r.ToSymbol(tt.text)
			if !ok {
				t.Fatalf("symbol was not found: %v", tt.text)
			}
			testSymbolProperty(t, sym, tt.isNil, tt.isStart, tt.isEOF, tt.isNonTerminal, tt.isTerminal)
			text, ok := r.ToText(sym)
			if !ok {
				t.Fatalf("text was not found: %v", sym)
			}
			if text != tt.text {
				t.Fatalf("unexpected text; want: %+v, got: %+v", tt.text, text)
			}
		})
	}

	t.Run("EOF", func(t *testing.T) {
		testSymbolProperty(t, SymbolEOF, false, false, true, false, true)
	})

	t.Run("Nil", func(t *testing.T) {
		testSymbolProperty(t, SymbolNil, true, false, false, false, false)
	})

	t.Run("texts", func(t *testing.T) {
		r := tab.Reader()
		ts, err := r.TerminalTexts()
		if err != nil {
			t.Fatal(err)
		}
		if len(ts) != len(termTexts) {
			t.Fatalf("unexpected terminal count; want: %v, got: %v", len(termTexts), len(ts))
		}
		for i, text := range ts {
			if text != termTexts[i] {
				t.Fatalf("unexpected terminal text; want: %v, got: %v", termTexts[i], text)
			}
		}
		nts, err := r.NonTerminalTexts()
		if err != nil {
			t.Fatal(err)
		}
		if len(nts) != len(nonTermTexts) {
			t.Fatalf("unexpected non-terminal count; want: %v, got: %v", len(nonTermTexts), len(nts))
		}
		for i, text := range nts {
			if text != nonTermTexts[i] {
				t.Fatalf("unexpected non-terminal text; want: %v, got: %v", nonTermTexts[i], text)
			}
		}
	})
}

func testSymbolProperty(t *testing.T, sym Symbol, isNil, isStart, isEOF, isNonTerminal, isTerminal bool) {
	t.Helper()

	if v := sym.IsNil(); v != isNil {
		t.Fatalf("unexpected IsNil; want: %v, got: %v", isNil, v)
	}
	if v := sym.IsStart(); v != isStart {
		t.Fatalf("unexpected IsStart; want: %v, got: %v", isStart, v)
	}
	if v := sym.IsEOF(); v != isEOF {
		t.Fatalf("unexpected IsEOF; want: %v, got: %v", isEOF, v)
	}
	if v := sym.IsNonTerminal(); v != isNonTerminal {
		t.Fatalf("unexpected IsNonTerminal; want: %v, got: %v", isNonTerminal, v)
	}
	if v := sym.IsTerminal(); v != isTerminal {
		t.Fatalf("unexpected IsTerminal; want: %v, got: %v", isTerminal, v)
	}
}

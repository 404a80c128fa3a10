package parser

import (
	"io"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type tokenKind string

const (
	tokenKindID        = tokenKind("id")
	tokenKindTerminal  = tokenKind("terminal")
	tokenKindArrow     = tokenKind("→")
	tokenKindOr        = tokenKind("|")
	tokenKindEmpty     = tokenKind("ε")
	tokenKindDirective = tokenKind("directive")
	tokenKindNewline   = tokenKind("newline")
	tokenKindEOF       = tokenKind("eof")
	tokenKindInvalid   = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

var (
	lexOnce sync.Once
	lexMach *lexmachine.Lexer
	lexErr  error
)

// lexSpec compiles the token patterns once. The lexer definition is shared
// by every scanner because the DFA compilation is not cheap.
func lexSpec() (*lexmachine.Lexer, error) {
	lexOnce.Do(func() {
		l := lexmachine.NewLexer()
		skip := func(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
			return nil, nil
		}
		tok := func(kind tokenKind) lexmachine.Action {
			return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
				return &token{
					kind: kind,
					text: string(m.Bytes),
					pos:  newPosition(m.StartLine, m.StartColumn),
				}, nil
			}
		}
		term := func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return &token{
				kind: tokenKindTerminal,
				text: string(m.Bytes[1 : len(m.Bytes)-1]),
				pos:  newPosition(m.StartLine, m.StartColumn),
			}, nil
		}
		l.Add([]byte(`[ \t\r]+`), skip)
		l.Add([]byte(`#[^\n]*`), skip)
		l.Add([]byte("\n"), tok(tokenKindNewline))
		l.Add([]byte(`->`), tok(tokenKindArrow))
		l.Add([]byte(`→`), tok(tokenKindArrow))
		l.Add([]byte(`\|`), tok(tokenKindOr))
		l.Add([]byte(`ε`), tok(tokenKindEmpty))
		l.Add([]byte(`'[^'\n]*'`), term)
		l.Add([]byte(`%[a-z]+`), tok(tokenKindDirective))
		l.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*'*`), tok(tokenKindID))
		lexErr = l.Compile()
		lexMach = l
	})
	return lexMach, lexErr
}

type lexer struct {
	scan *lexmachine.Scanner
}

func newLexer(src io.Reader) (*lexer, error) {
	text, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	mach, err := lexSpec()
	if err != nil {
		return nil, err
	}
	scan, err := mach.Scanner(text)
	if err != nil {
		return nil, err
	}
	return &lexer{
		scan: scan,
	}, nil
}

func (l *lexer) next() (*token, error) {
	t, err, eof := l.scan.Next()
	if eof {
		return &token{
			kind: tokenKindEOF,
		}, nil
	}
	if err != nil {
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			tok := &token{
				kind: tokenKindInvalid,
				text: string(ui.Text[ui.StartTC:ui.FailTC]),
				pos:  newPosition(ui.StartLine, ui.StartColumn),
			}
			if len(tok.text) > 0 && tok.text[0] == '\'' {
				return tok, synErrUnclosedTerminal
			}
			return tok, nil
		}
		return nil, err
	}
	tok := t.(*token)
	if tok.kind == tokenKindTerminal && tok.text == "" {
		return tok, synErrEmptyTerminal
	}
	return tok, nil
}

package parser

import (
	"strings"
	"testing"

	verr "github.com/bilaaaal0/Compiler-Construction-Project/error"
)

func TestParse(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		ast     *RootNode
		synErr  *SyntaxError
		row     int
	}{
		{
			caption: "directives precede productions and parameters are collected in order",
			src: `
%name calc
%start E
%terminals id num

E → E '+' T | T
T → id | num | ε
`,
			ast: &RootNode{
				Directives: []*DirectiveNode{
					{Name: "name", Parameters: []string{"calc"}},
					{Name: "start", Parameters: []string{"E"}},
					{Name: "terminals", Parameters: []string{"id", "num"}},
				},
				Productions: []*ProductionNode{
					{
						LHS: "E",
						RHS: []*AlternativeNode{
							{
								Elements: []*ElementNode{
									{ID: "E"},
									{Literal: "+"},
									{ID: "T"},
								},
							},
							{
								Elements: []*ElementNode{
									{ID: "T"},
								},
							},
						},
					},
					{
						LHS: "T",
						RHS: []*AlternativeNode{
							{
								Elements: []*ElementNode{
									{ID: "id"},
								},
							},
							{
								Elements: []*ElementNode{
									{ID: "num"},
								},
							},
							{},
						},
					},
				},
			},
		},
		{
			caption: "a quoted terminal may appear as a directive parameter",
			src: `
%terminals ';'
S → ';'
`,
			ast: &RootNode{
				Directives: []*DirectiveNode{
					{Name: "terminals", Parameters: []string{";"}},
				},
				Productions: []*ProductionNode{
					{
						LHS: "S",
						RHS: []*AlternativeNode{
							{
								Elements: []*ElementNode{
									{Literal: ";"},
								},
							},
						},
					},
				},
			},
		},
		{
			caption: "the last production may be terminated by the end of the source",
			src:     `S → 'a'`,
			ast: &RootNode{
				Productions: []*ProductionNode{
					{
						LHS: "S",
						RHS: []*AlternativeNode{
							{
								Elements: []*ElementNode{
									{Literal: "a"},
								},
							},
						},
					},
				},
			},
		},
		{
			caption: "a grammar must have at least one production",
			src:     "\n\n",
			synErr:  synErrNoProduction,
		},
		{
			caption: "an alternative cannot continue on the next line",
			src:     "S → 'a'\n| 'b'\n",
			synErr:  synErrNoProductionName,
			row:     2,
		},
		{
			caption: "an arrow must precede alternatives",
			src:     "S 'a'\n",
			synErr:  synErrNoArrow,
			row:     1,
		},
		{
			caption: "a production must end with a newline",
			src:     "S → 'a' %x\n",
			synErr:  synErrNoNewline,
			row:     1,
		},
		{
			caption: "directives cannot follow productions",
			src:     "S → 'a'\n%start S\n",
			synErr:  synErrDirAfterProd,
			row:     2,
		},
		{
			caption: "a directive needs a parameter",
			src:     "%start\nS → 'a'\n",
			synErr:  synErrNoDirectiveParam,
		},
		{
			caption: "an unclosed terminal is reported with its position",
			src:     "S → 'a\n",
			synErr:  synErrUnclosedTerminal,
			row:     1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := Parse(strings.NewReader(tt.src))

			if tt.synErr != nil {
				if err == nil {
					t.Fatalf("an error must occur")
				}
				specErrs, ok := err.(verr.SpecErrors)
				if !ok {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(specErrs) != 1 {
					t.Fatalf("error count is mismatched\nwant: %v\ngot: %v (%v)", 1, len(specErrs), specErrs)
				}
				specErr := specErrs[0]
				if specErr.Cause != tt.synErr {
					t.Fatalf("cause is mismatched\nwant: %v\ngot: %v", tt.synErr, specErr.Cause)
				}
				if tt.row != 0 && specErr.Row != tt.row {
					t.Errorf("row is mismatched\nwant: %v\ngot: %v", tt.row, specErr.Row)
				}
				return
			}

			if err != nil {
				t.Fatal(err)
			}
			testRootNode(t, ast, tt.ast)
		})
	}
}

func testRootNode(t *testing.T, actual, expected *RootNode) {
	t.Helper()

	if len(actual.Directives) != len(expected.Directives) {
		t.Fatalf("directive count is mismatched\nwant: %v\ngot: %v", len(expected.Directives), len(actual.Directives))
	}
	for i, eDir := range expected.Directives {
		aDir := actual.Directives[i]
		if aDir.Name != eDir.Name {
			t.Fatalf("directive name is mismatched\nwant: %v\ngot: %v", eDir.Name, aDir.Name)
		}
		if len(aDir.Parameters) != len(eDir.Parameters) {
			t.Fatalf("parameter count is mismatched\nwant: %v\ngot: %v", eDir.Parameters, aDir.Parameters)
		}
		for j, eParam := range eDir.Parameters {
			if aDir.Parameters[j] != eParam {
				t.Fatalf("parameter is mismatched\nwant: %v\ngot: %v", eParam, aDir.Parameters[j])
			}
		}
	}

	if len(actual.Productions) != len(expected.Productions) {
		t.Fatalf("production count is mismatched\nwant: %v\ngot: %v", len(expected.Productions), len(actual.Productions))
	}
	for i, eProd := range expected.Productions {
		aProd := actual.Productions[i]
		if aProd.LHS != eProd.LHS {
			t.Fatalf("LHS is mismatched\nwant: %v\ngot: %v", eProd.LHS, aProd.LHS)
		}
		if len(aProd.RHS) != len(eProd.RHS) {
			t.Fatalf("alternative count is mismatched\nwant: %v\ngot: %v", len(eProd.RHS), len(aProd.RHS))
		}
		for j, eAlt := range eProd.RHS {
			aAlt := aProd.RHS[j]
			if len(aAlt.Elements) != len(eAlt.Elements) {
				t.Fatalf("element count is mismatched\nwant: %v\ngot: %v", len(eAlt.Elements), len(aAlt.Elements))
			}
			for k, eElem := range eAlt.Elements {
				aElem := aAlt.Elements[k]
				if aElem.ID != eElem.ID || aElem.Literal != eElem.Literal {
					t.Fatalf("element is mismatched\nwant: %+v\ngot: %+v", eElem, aElem)
				}
			}
		}
	}
}

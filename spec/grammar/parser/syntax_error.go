package parser

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return e.message
}

var (
	// lexical errors
	synErrUnclosedTerminal = newSyntaxError("unclosed terminal")
	synErrEmptyTerminal    = newSyntaxError("a terminal literal must not be empty")
	synErrInvalidToken     = newSyntaxError("invalid token")

	// syntax errors
	synErrNoProduction     = newSyntaxError("a grammar must have at least one production")
	synErrNoProductionName = newSyntaxError("a production name is missing")
	synErrNoArrow          = newSyntaxError("an arrow must precede alternatives")
	synErrNoNewline        = newSyntaxError("a production must end with a newline")
	synErrNoDirectiveParam = newSyntaxError("a directive needs a parameter")
	synErrDirAfterProd     = newSyntaxError("directives must precede productions")
)

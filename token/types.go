package token

import "fmt"

type TokenType int

const (
	TLCurl TokenType = iota
	TRCurl
	TLParen
	TRParen
	TEquals
	TSemi
	TComma
	TLiteral
	TString
	TData
	TEOF
)

var typeNames = map[TokenType]string{
	TLCurl:   "'{'",
	TRCurl:   "'}'",
	TLParen:  "'('",
	TRParen:  "')'",
	TEquals:  "'='",
	TSemi:    "';'",
	TComma:   "','",
	TLiteral: "literal",
	TString:  "quoted string",
	TData:    "data",
	TEOF:     "end of input",
}

func (t TokenType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexeme.  Bytes aliases the input: for TString it
// holds the raw span between the quotes with escapes still encoded, for
// TData the span between the angle brackets.
type Token struct {
	Type  TokenType
	Off   int
	Bytes []byte

	// Quote is the quote byte of a TString.
	Quote byte
	// Escaped reports whether a TString contains a backslash.
	Escaped bool
	// Comment is the body of the last block comment skipped before
	// this token, trimmed of surrounding space.
	Comment []byte
}

func (t *Token) String() string {
	switch t.Type {
	case TLiteral:
		return fmt.Sprintf("literal %q", t.Bytes)
	case TString:
		return fmt.Sprintf("string %c%s%c", t.Quote, t.Bytes, t.Quote)
	case TData:
		return fmt.Sprintf("data <%s>", t.Bytes)
	}
	return t.Type.String()
}

package token

import "bytes"

// bare-word bytes: [A-Za-z0-9_$/:.-]
var wordByte [256]bool

func init() {
	for c := 'a'; c <= 'z'; c++ {
		wordByte[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		wordByte[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		wordByte[c] = true
	}
	for _, c := range []byte("_$/:.-") {
		wordByte[c] = true
	}
}

func IsWordByte(c byte) bool {
	return wordByte[c]
}

// Lexer produces tokens lazily from a byte slice.  Only the byte offset
// is tracked; line and column are derived on demand by callers which
// need them.
type Lexer struct {
	d       []byte
	i       int
	comment []byte
}

func NewLexer(d []byte) *Lexer {
	return &Lexer{d: d}
}

// Reset restarts lexing at the beginning of the input.
func (l *Lexer) Reset() {
	l.i = 0
	l.comment = nil
}

// Offset returns the current read offset.
func (l *Lexer) Offset() int {
	return l.i
}

// Next returns the next token.  At the end of input it returns a TEOF
// token and a nil error, repeatedly.
func (l *Lexer) Next() (Token, error) {
	if err := l.skip(); err != nil {
		return Token{}, err
	}
	tok := Token{Off: l.i, Comment: l.comment}
	l.comment = nil
	if l.i >= len(l.d) {
		tok.Type = TEOF
		return tok, nil
	}
	c := l.d[l.i]
	switch c {
	case '{':
		tok.Type = TLCurl
	case '}':
		tok.Type = TRCurl
	case '(':
		tok.Type = TLParen
	case ')':
		tok.Type = TRParen
	case '=':
		tok.Type = TEquals
	case ';':
		tok.Type = TSemi
	case ',':
		tok.Type = TComma
	case '"', '\'':
		return l.quoted(tok, c)
	case '<':
		return l.data(tok)
	default:
		if !wordByte[c] {
			return Token{}, NewLexError(ErrUnexpectedByte, l.i)
		}
		j := l.i + 1
		for j < len(l.d) && wordByte[l.d[j]] {
			j++
		}
		tok.Type = TLiteral
		tok.Bytes = l.d[l.i:j]
		l.i = j
		return tok, nil
	}
	tok.Bytes = l.d[l.i : l.i+1]
	l.i++
	return tok, nil
}

func (l *Lexer) quoted(tok Token, q byte) (Token, error) {
	start := l.i + 1
	j := start
	for j < len(l.d) {
		switch l.d[j] {
		case '\\':
			tok.Escaped = true
			j += 2
			continue
		case q:
			tok.Type = TString
			tok.Quote = q
			tok.Bytes = l.d[start:j]
			l.i = j + 1
			return tok, nil
		}
		j++
	}
	return Token{}, NewLexError(ErrUnterminatedString, tok.Off)
}

func (l *Lexer) data(tok Token) (Token, error) {
	start := l.i + 1
	for j := start; j < len(l.d); j++ {
		c := l.d[j]
		switch {
		case c == '>':
			tok.Type = TData
			tok.Bytes = l.d[start:j]
			l.i = j + 1
			return tok, nil
		case isHex(c), isSpace(c):
		default:
			return Token{}, NewLexError(ErrBadData, j)
		}
	}
	return Token{}, NewLexError(ErrUnterminatedData, tok.Off)
}

// skip consumes whitespace and comments.
func (l *Lexer) skip() error {
	for l.i < len(l.d) {
		c := l.d[l.i]
		if isSpace(c) {
			l.i++
			continue
		}
		if c != '/' || l.i+1 >= len(l.d) {
			return nil
		}
		switch l.d[l.i+1] {
		case '/':
			nl := bytes.IndexByte(l.d[l.i:], '\n')
			if nl < 0 {
				l.i = len(l.d)
				return nil
			}
			l.i += nl + 1
		case '*':
			end := bytes.Index(l.d[l.i+2:], []byte("*/"))
			if end < 0 {
				return NewLexError(ErrUnterminatedComment, l.i)
			}
			l.comment = bytes.TrimSpace(l.d[l.i+2 : l.i+2+end])
			l.i += 2 + end + 2
		default:
			return nil
		}
	}
	return nil
}

// Tokenize lexes all of d, excluding the final TEOF token.
func Tokenize(d []byte) ([]Token, error) {
	l := NewLexer(d)
	var res []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == TEOF {
			return res, nil
		}
		res = append(res, tok)
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isHex(c byte) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		return true
	}
	return false
}

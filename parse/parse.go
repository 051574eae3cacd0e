package parse

import (
	"fmt"

	"github.com/signadot/pbxproj/debug"
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/token"
)

// Parse reads a document whose head is a dictionary or an array.
// Anything other than comments and whitespace after the head is an
// error.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	p := &parser{lex: token.NewLexer(d), opts: pOpts}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var (
		res *ir.Node
		err error
	)
	switch p.tok.Type {
	case token.TLCurl:
		res, err = p.object()
	case token.TLParen:
		res, err = p.array()
	default:
		return nil, p.expected("'{' or '('")
	}
	if err != nil {
		return nil, err
	}
	if p.tok.Type != token.TEOF {
		return nil, p.expected("end of input")
	}
	if debug.Parse() {
		debug.Logf("parsed %d bytes into %s with %d entries\n", len(d), res.Type, res.Len())
	}
	return res, nil
}

type parser struct {
	lex  *token.Lexer
	tok  token.Token
	opts *parseOpts
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	if debug.Lex() {
		debug.Logf("lex %d %s\n", tok.Off, &tok)
	}
	p.tok = tok
	return nil
}

func (p *parser) expected(what string) error {
	return &ParseError{Off: p.tok.Off, Expected: what, Got: p.tok.String()}
}

// literal consumes the current token and records the comment that
// follows it, if any.
func (p *parser) literal() error {
	lit := p.tok
	if err := p.advance(); err != nil {
		return err
	}
	if p.opts.annotations != nil && lit.Type == token.TLiteral && len(p.tok.Comment) != 0 {
		p.opts.annotations[string(lit.Bytes)] = string(p.tok.Comment)
	}
	return nil
}

func (p *parser) object() (*ir.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	obj := ir.NewObject()
	for {
		var key string
		switch p.tok.Type {
		case token.TRCurl:
			return obj, p.advance()
		case token.TLiteral:
			key = string(p.tok.Bytes)
		case token.TString:
			s, err := p.unescape()
			if err != nil {
				return nil, err
			}
			key = s
		default:
			return nil, p.expected("key or '}'")
		}
		if err := p.literal(); err != nil {
			return nil, err
		}
		if p.tok.Type != token.TEquals {
			return nil, p.expected("'='")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		if p.tok.Type != token.TSemi {
			return nil, p.expected("';'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
}

func (p *parser) array() (*ir.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	arr := ir.FromSlice(nil)
	for {
		if p.tok.Type == token.TRParen {
			return arr, p.advance()
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		arr.Append(val)
		switch p.tok.Type {
		case token.TComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case token.TRParen:
		default:
			return nil, p.expected("',' or ')'")
		}
	}
}

func (p *parser) value() (*ir.Node, error) {
	switch p.tok.Type {
	case token.TLCurl:
		return p.object()
	case token.TLParen:
		return p.array()
	case token.TData:
		res := ir.FromData(decodeHex(p.tok.Bytes))
		return res, p.advance()
	case token.TString:
		s, err := p.unescape()
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), p.advance()
	case token.TLiteral:
		res := scalar(string(p.tok.Bytes))
		return res, p.literal()
	}
	return nil, p.expected("value")
}

func scalar(s string) *ir.Node {
	switch kind, i, f := token.Classify(s); kind {
	case token.IntegerLiteral:
		return ir.FromInt(i)
	case token.FloatLiteral:
		return ir.FromFloat(f)
	}
	return ir.FromString(s)
}

func (p *parser) unescape() (string, error) {
	if !p.tok.Escaped {
		return string(p.tok.Bytes), nil
	}
	s, err := token.Unescape(p.tok.Bytes, !p.opts.lenient)
	if err == nil {
		return s, nil
	}
	if ee, ok := err.(*token.EscapeError); ok {
		abs := *ee
		abs.Off += p.tok.Off + 1
		err = &abs
	}
	return "", fmt.Errorf("%w: %w", ErrParse, err)
}

// decodeHex decodes the body of a data literal, ignoring whitespace.  A
// trailing odd digit is taken as a byte on its own.
func decodeHex(d []byte) []byte {
	res := make([]byte, 0, len(d)/2)
	var cur byte
	half := false
	for _, c := range d {
		var x byte
		switch {
		case c >= '0' && c <= '9':
			x = c - '0'
		case c >= 'a' && c <= 'f':
			x = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			x = c - 'A' + 10
		default:
			continue
		}
		if half {
			res = append(res, cur<<4|x)
			half = false
			continue
		}
		cur = x
		half = true
	}
	if half {
		res = append(res, cur)
	}
	return res
}

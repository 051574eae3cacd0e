package main

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/signadot/pbxproj/token"
	"go.lsp.dev/protocol"
)

var tokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenProperty,
	protocol.SemanticTokenString,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenVariable,
	protocol.SemanticTokenType,
}

const (
	semProperty uint32 = iota
	semString
	semNumber
	semID
	semISA
)

type semToken struct {
	off  int
	n    int
	kind uint32
}

// classifyTokens assigns a semantic type to each key and scalar of d.
func classifyTokens(d []byte) []semToken {
	toks, err := token.Tokenize(d)
	if err != nil {
		return nil
	}
	var res []semToken
	for i := range toks {
		tok := &toks[i]
		if tok.Type != token.TLiteral && tok.Type != token.TString && tok.Type != token.TData {
			continue
		}
		st := semToken{off: tok.Off, n: len(tok.Bytes), kind: semString}
		if tok.Type != token.TLiteral {
			// include delimiters
			st.n += 2
		}
		text := string(tok.Bytes)
		switch {
		case i+1 < len(toks) && toks[i+1].Type == token.TEquals:
			st.kind = semProperty
			if isID(text) {
				st.kind = semID
			}
		case i >= 2 && toks[i-1].Type == token.TEquals && string(toks[i-2].Bytes) == "isa":
			st.kind = semISA
		case tok.Type == token.TData:
			st.kind = semNumber
		case tok.Type == token.TLiteral && isID(text):
			st.kind = semID
		case tok.Type == token.TLiteral:
			if k, _, _ := token.Classify(text); k != token.StringLiteral {
				st.kind = semNumber
			}
		}
		res = append(res, st)
	}
	return res
}

// encodeSemanticTokens produces the relative encoding of the protocol,
// dropping tokens which span lines.
func encodeSemanticTokens(content string, toks []semToken) []uint32 {
	lineStarts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	data := []uint32{}
	var prevLine, prevChar uint32
	for _, st := range toks {
		if st.off+st.n > len(content) {
			break
		}
		span := content[st.off : st.off+st.n]
		if strings.IndexByte(span, '\n') >= 0 {
			continue
		}
		line := sort.SearchInts(lineStarts, st.off+1) - 1
		char := uint32(utf8.RuneCountInString(content[lineStarts[line]:st.off]))
		deltaLine := uint32(line) - prevLine
		deltaChar := char
		if deltaLine == 0 {
			deltaChar = char - prevChar
		}
		data = append(data, deltaLine, deltaChar, uint32(utf8.RuneCountInString(span)), st.kind, 0)
		prevLine = uint32(line)
		prevChar = char
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	toks := classifyTokens([]byte(doc.content))
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(doc.content, toks)}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	start := positionToOffset(doc.content, params.Range.Start)
	end := positionToOffset(doc.content, params.Range.End)
	var in []semToken
	for _, st := range classifyTokens([]byte(doc.content)) {
		if st.off >= start && st.off < end {
			in = append(in, st)
		}
	}
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(doc.content, in)}, nil
}

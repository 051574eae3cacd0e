package main

import (
	"github.com/signadot/pbxproj/token"
	"go.lsp.dev/protocol"
)

// Positions count characters as runes within a line.

func offsetToPosition(content string, off int) protocol.Position {
	if off > len(content) {
		off = len(content)
	}
	var line, col uint32
	for i, r := range content {
		if i >= off {
			break
		}
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return protocol.Position{Line: line, Character: col}
}

func positionToOffset(content string, pos protocol.Position) int {
	var line, col uint32
	for i, r := range content {
		if line == pos.Line && col == pos.Character {
			return i
		}
		if r == '\n' {
			if line == pos.Line {
				return i
			}
			line++
			col = 0
			continue
		}
		col++
	}
	return len(content)
}

// wordAt returns the bare word covering off, with its start offset.
func wordAt(content string, off int) (string, int) {
	if off > len(content) {
		off = len(content)
	}
	start, end := off, off
	for start > 0 && token.IsWordByte(content[start-1]) {
		start--
	}
	for end < len(content) && token.IsWordByte(content[end]) {
		end++
	}
	return content[start:end], start
}

// isID reports whether s has the shape of an object identifier.
func isID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'A' <= c && c <= 'F' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

// definitions maps each key of the objects table to its byte offset.
// Lexing stops quietly at the first error.
func definitions(d []byte) map[string]int {
	res := map[string]int{}
	l := token.NewLexer(d)
	depth := 0
	inObjects := false
	var prev token.Token
	for {
		tok, err := l.Next()
		if err != nil || tok.Type == token.TEOF {
			return res
		}
		switch tok.Type {
		case token.TLCurl:
			depth++
		case token.TRCurl:
			depth--
			if depth < 2 {
				inObjects = false
			}
		case token.TLiteral, token.TString:
			if depth == 1 {
				inObjects = string(tok.Bytes) == "objects"
			}
		case token.TEquals:
			if inObjects && depth == 2 && (prev.Type == token.TLiteral || prev.Type == token.TString) {
				off := prev.Off
				if prev.Type == token.TString {
					off++
				}
				res[string(prev.Bytes)] = off
			}
		}
		prev = tok
	}
}

// occurrences returns the offset of every bare or quoted token equal to id.
func occurrences(d []byte, id string) []int {
	var res []int
	l := token.NewLexer(d)
	for {
		tok, err := l.Next()
		if err != nil || tok.Type == token.TEOF {
			return res
		}
		if (tok.Type == token.TLiteral || tok.Type == token.TString) && string(tok.Bytes) == id {
			off := tok.Off
			if tok.Type == token.TString {
				off++
			}
			res = append(res, off)
		}
	}
}

package token

import "strings"

// bytes which may appear in an unquoted value on write.  This is
// narrower than what the lexer accepts: '-' is always quoted.
var safeByte [256]bool

func init() {
	for c := 0; c < 256; c++ {
		safeByte[c] = wordByte[c] && c != '-'
	}
}

// KeyNeedsQuote reports whether a dictionary key must be quoted.
func KeyNeedsQuote(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); i++ {
		if !safeByte[s[i]] {
			return true
		}
	}
	return strings.Contains(s, "//") || strings.Contains(s, "/*")
}

// NeedsQuote reports whether a string value must be quoted, which is
// the case when written bare it would not read back as the same
// string.
func NeedsQuote(s string) bool {
	if KeyNeedsQuote(s) {
		return true
	}
	k, _, _ := Classify(s)
	return k != StringLiteral
}

// Quote returns s double quoted with minimal escaping.
func Quote(s string) string {
	return string(AppendQuoted(make([]byte, 0, len(s)+2), s))
}

func AppendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	dst = AppendEscaped(dst, s)
	return append(dst, '"')
}

// AppendValue appends the written form of a string value.
func AppendValue(dst []byte, s string) []byte {
	if NeedsQuote(s) {
		return AppendQuoted(dst, s)
	}
	return append(dst, s...)
}

// AppendKey appends the written form of a dictionary key.
func AppendKey(dst []byte, s string) []byte {
	if KeyNeedsQuote(s) {
		return AppendQuoted(dst, s)
	}
	return append(dst, s...)
}

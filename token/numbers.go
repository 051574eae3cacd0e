package token

import (
	"strconv"
	"strings"
)

// MaxSafeInteger bounds the integers read as numbers so that every
// Integer survives a trip through JSON.
const MaxSafeInteger = 1<<53 - 1

type LiteralKind int

const (
	StringLiteral LiteralKind = iota
	IntegerLiteral
	FloatLiteral
)

// Classify decides how a bare word is read.  A word becomes a number
// only when formatting the number reproduces the word exactly, so
// "0755", "5.0", "1e5" and "+1" all stay strings and every value is
// written back the way it was read.
func Classify(s string) (LiteralKind, int64, float64) {
	if !numeric(s) {
		return StringLiteral, 0, 0
	}
	if !strings.ContainsRune(s, '.') {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil || i > MaxSafeInteger || i < -MaxSafeInteger || strconv.FormatInt(i, 10) != s {
			return StringLiteral, 0, 0
		}
		return IntegerLiteral, i, 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || FormatFloat(f) != s {
		return StringLiteral, 0, 0
	}
	return FloatLiteral, 0, f
}

// numeric reports whether s has the shape -?digits(.digits)?
func numeric(s string) bool {
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	dot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !dot && i > 0 && i < len(s)-1:
			dot = true
		default:
			return false
		}
	}
	return true
}

// FormatFloat renders f in plain decimal notation, shortest form.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package token

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// nextstep maps the upper half of the NeXTSTEP character set
// (0x80-0xFF) to Unicode.
var nextstep = [128]rune{
	0x00a0, 0x00c0, 0x00c1, 0x00c2, 0x00c3, 0x00c4, 0x00c5, 0x00c7,
	0x00c8, 0x00c9, 0x00ca, 0x00cb, 0x00cc, 0x00cd, 0x00ce, 0x00cf,
	0x00d0, 0x00d1, 0x00d2, 0x00d3, 0x00d4, 0x00d5, 0x00d6, 0x00d9,
	0x00da, 0x00db, 0x00dc, 0x00dd, 0x00de, 0x00b5, 0x00d7, 0x00f7,
	0x00a9, 0x00a1, 0x00a2, 0x00a3, 0x2044, 0x00a5, 0x0192, 0x00a7,
	0x00a4, 0x2019, 0x201c, 0x00ab, 0x2039, 0x203a, 0xfb01, 0xfb02,
	0x00ae, 0x2013, 0x2020, 0x2021, 0x00b7, 0x00a6, 0x00b6, 0x2022,
	0x201a, 0x201e, 0x201d, 0x00bb, 0x2026, 0x2030, 0x00ac, 0x00bf,
	0x00b9, 0x02cb, 0x00b4, 0x02c6, 0x02dc, 0x00af, 0x02d8, 0x02d9,
	0x00a8, 0x00b2, 0x02da, 0x00b8, 0x00b3, 0x02dd, 0x02db, 0x02c7,
	0x2014, 0x00b1, 0x00bc, 0x00bd, 0x00be, 0x00e0, 0x00e1, 0x00e2,
	0x00e3, 0x00e4, 0x00e5, 0x00e7, 0x00e8, 0x00e9, 0x00ea, 0x00eb,
	0x00ec, 0x00c6, 0x00ed, 0x00aa, 0x00ee, 0x00ef, 0x00f0, 0x00f1,
	0x0141, 0x00d8, 0x0152, 0x00ba, 0x00f2, 0x00f3, 0x00f4, 0x00f5,
	0x00f6, 0x00e6, 0x00f9, 0x00fa, 0x00fb, 0x0131, 0x00fc, 0x00fd,
	0x0142, 0x00f8, 0x0153, 0x00df, 0x00fe, 0x00ff, 0xfffd, 0xfffd,
}

// NeXTSTEPRune maps a legacy octal escape value to a rune.  Values
// below 0x80 or above 0xFF are returned unchanged.
func NeXTSTEPRune(code int) rune {
	if code < 0x80 || code > 0xff {
		return rune(code)
	}
	return nextstep[code-0x80]
}

var simpleEscapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
	'\n': '\n',
}

// Unescape decodes the raw span of a quoted string.  In strict mode any
// sequence which is not a valid escape is an *EscapeError; otherwise the
// sequence passes through literally.
func Unescape(raw []byte, strict bool) (string, error) {
	if !hasBackslash(raw) {
		return string(raw), nil
	}
	var b strings.Builder
	b.Grow(len(raw))
	n := len(raw)
	for i := 0; i < n; {
		c := raw[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= n {
			if strict {
				return "", &EscapeError{Err: ErrBadEscape, Off: i, Seq: `\`}
			}
			b.WriteByte(c)
			i++
			continue
		}
		next := raw[i+1]
		if r, ok := simpleEscapes[next]; ok {
			b.WriteByte(r)
			i += 2
			continue
		}
		switch {
		case next == 'U':
			code, ok := hex4(raw[i+2:])
			if !ok {
				if strict {
					end := min(i+6, n)
					return "", &EscapeError{Err: ErrBadUnicode, Off: i, Seq: string(raw[i:end])}
				}
				b.WriteByte('\\')
				i++
				continue
			}
			r := rune(code)
			if !utf8.ValidRune(r) {
				if strict {
					return "", &EscapeError{Err: ErrBadUnicode, Off: i, Seq: string(raw[i : i+6])}
				}
				r = utf8.RuneError
			}
			b.WriteRune(r)
			i += 6
		case next >= '0' && next <= '7':
			j := i + 1
			code := 0
			for j < n && j < i+4 && raw[j] >= '0' && raw[j] <= '7' {
				code = code*8 + int(raw[j]-'0')
				j++
			}
			b.WriteRune(NeXTSTEPRune(code))
			i = j
		default:
			if strict {
				return "", &EscapeError{Err: ErrBadEscape, Off: i, Seq: string(raw[i : i+2])}
			}
			b.WriteByte('\\')
			b.WriteByte(next)
			i += 2
		}
	}
	return b.String(), nil
}

func hasBackslash(d []byte) bool {
	for _, c := range d {
		if c == '\\' {
			return true
		}
	}
	return false
}

func hex4(d []byte) (int, bool) {
	if len(d) < 4 {
		return 0, false
	}
	v := 0
	for _, c := range d[:4] {
		var x byte
		switch {
		case c >= '0' && c <= '9':
			x = c - '0'
		case c >= 'a' && c <= 'f':
			x = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			x = c - 'A' + 10
		default:
			return 0, false
		}
		v = v<<4 | int(x)
	}
	return v, true
}

// AppendEscaped appends s to dst with the characters that cannot appear
// literally inside a quoted string escaped.  Unescape is its inverse.
func AppendEscaped(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\a':
			dst = append(dst, `\a`...)
		case '\b':
			dst = append(dst, `\b`...)
		case '\f':
			dst = append(dst, `\f`...)
		case '\n':
			dst = append(dst, `\n`...)
		case '\r':
			dst = append(dst, `\r`...)
		case '\t':
			dst = append(dst, `\t`...)
		case '\v':
			dst = append(dst, `\v`...)
		case '"':
			dst = append(dst, `\"`...)
		case '\\':
			dst = append(dst, `\\`...)
		default:
			if c < 0x20 {
				dst = fmt.Appendf(dst, `\U%04x`, c)
				continue
			}
			dst = append(dst, c)
		}
	}
	return dst
}

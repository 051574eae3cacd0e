package settings

import (
	"path"
	"strings"
)

// Modify applies one reference modifier to a resolved value.  Unknown
// modifiers leave the value unchanged.
func Modify(v, mod string) string {
	switch mod {
	case "lower":
		return strings.ToLower(v)
	case "upper":
		return strings.ToUpper(v)
	case "suffix":
		return path.Ext(v)
	case "file":
		if v == "" {
			return ""
		}
		return path.Base(v)
	case "dir":
		i := strings.LastIndexByte(v, '/')
		if i < 0 {
			return ""
		}
		if i == 0 {
			return "/"
		}
		return v[:i]
	case "base":
		if v == "" {
			return ""
		}
		b := path.Base(v)
		return strings.TrimSuffix(b, path.Ext(b))
	case "rfc1034identifier":
		return mapIdent(v, '-')
	case "c99extidentifier":
		res := mapIdent(v, '_')
		if res != "" && res[0] >= '0' && res[0] <= '9' {
			res = "_" + res
		}
		return res
	case "standardizepath":
		if v == "" {
			return ""
		}
		return path.Clean(v)
	}
	if def, ok := strings.CutPrefix(mod, "default="); ok && v == "" {
		return def
	}
	return v
}

// mapIdent replaces every rune other than an ASCII letter or digit
// with repl.  Underscores survive when repl is itself an underscore.
func mapIdent(v string, repl rune) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_' && repl == '_':
			return r
		}
		return repl
	}, v)
}

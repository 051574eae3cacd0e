package settings

import "strings"

// Lookup returns the raw value of a build setting.
type Lookup func(name string) (string, bool)

// references nested deeper than this are left unexpanded.
const maxDepth = 32

// Resolve expands every reference in value until no resolvable
// reference remains.
func Resolve(value string, lookup Lookup) string {
	return resolve(value, lookup, 0)
}

func resolve(value string, lookup Lookup, depth int) string {
	if depth > maxDepth || !strings.Contains(value, "$") {
		return value
	}
	var b strings.Builder
	for i := 0; i < len(value); {
		c := value[i]
		if c != '$' || i+1 == len(value) || (value[i+1] != '(' && value[i+1] != '{') {
			b.WriteByte(c)
			i++
			continue
		}
		end := closing(value, i+1)
		if end < 0 {
			b.WriteString(value[i:])
			break
		}
		inner := resolve(value[i+2:end], lookup, depth+1)
		b.WriteString(expand(value[i:end+1], inner, lookup, depth))
		i = end + 1
	}
	return b.String()
}

// closing returns the index of the bracket closing the one at open, or
// -1.
func closing(s string, open int) int {
	oc := s[open]
	cc := byte(')')
	if oc == '{' {
		cc = '}'
	}
	n := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case oc:
			n++
		case cc:
			n--
			if n == 0 {
				return i
			}
		}
	}
	return -1
}

func expand(ref, inner string, lookup Lookup, depth int) string {
	name, rest, hasMods := strings.Cut(inner, ":")
	var mods []string
	if hasMods {
		mods = strings.Split(rest, ":")
	}
	v, ok := lookup(name)
	if ok {
		v = resolve(v, lookup, depth+1)
	} else if !hasDefault(mods) {
		return ref
	}
	for _, m := range mods {
		v = Modify(v, m)
	}
	return v
}

func hasDefault(mods []string) bool {
	for _, m := range mods {
		if strings.HasPrefix(m, "default=") {
			return true
		}
	}
	return false
}

// Refs lists the names referenced directly by value, in order.
func Refs(value string) []string {
	var res []string
	for i := 0; i+1 < len(value); i++ {
		if value[i] != '$' || (value[i+1] != '(' && value[i+1] != '{') {
			continue
		}
		end := closing(value, i+1)
		if end < 0 {
			break
		}
		name, _, _ := strings.Cut(value[i+2:end], ":")
		res = append(res, name)
		i = end
	}
	return res
}

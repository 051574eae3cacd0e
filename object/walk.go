package object

import (
	"slices"

	"github.com/signadot/pbxproj/ir"
)

// Ref is one identifier held by a record.  Index is the position in a
// list property, or -1 for a single valued one.
type Ref struct {
	Key   string
	Index int
	ID    string
}

// References lists the identifiers a record holds under its declared
// reference keys, in declaration order.  Empty strings are skipped.
func (r *Record) References() []Ref {
	var res []Ref
	r.eachRef(func(key string, i int, v *ir.Node) {
		if v.String != "" {
			res = append(res, Ref{Key: key, Index: i, ID: v.String})
		}
	})
	return res
}

func (r *Record) eachRef(f func(key string, i int, v *ir.Node)) {
	for _, rk := range RefKeys(r.Kind) {
		v := r.Props.Get(rk.Name)
		if v == nil {
			continue
		}
		switch v.Type {
		case ir.StringType:
			f(rk.Name, -1, v)
		case ir.ArrayType:
			for i, e := range v.Values {
				if e.Type == ir.StringType {
					f(rk.Name, i, e)
				}
			}
		}
	}
}

func (r *Record) IsReferencing(id string) bool {
	found := false
	r.eachRef(func(_ string, _ int, v *ir.Node) {
		found = found || v.String == id
	})
	return found
}

// RemoveReference drops every occurrence of id: single valued
// properties are deleted, list elements removed.
func (r *Record) RemoveReference(id string) bool {
	removed := false
	for _, rk := range RefKeys(r.Kind) {
		v := r.Props.Get(rk.Name)
		if v == nil {
			continue
		}
		switch v.Type {
		case ir.StringType:
			if v.String == id {
				r.Props.Delete(rk.Name)
				removed = true
			}
		case ir.ArrayType:
			n := len(v.Values)
			v.Values = slices.DeleteFunc(v.Values, func(e *ir.Node) bool {
				return e.Type == ir.StringType && e.String == id
			})
			removed = removed || len(v.Values) != n
		}
	}
	return removed
}

// ReplaceReference rewrites every occurrence of from to to.
func (r *Record) ReplaceReference(from, to string) bool {
	replaced := false
	r.eachRef(func(_ string, _ int, v *ir.Node) {
		if v.String == from {
			v.String = to
			replaced = true
		}
	})
	return replaced
}

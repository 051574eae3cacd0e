package object

import (
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/isa"
)

// Record is one entry of the objects table.  Props is the record's
// dictionary as it sits in the tree, not a copy.
type Record struct {
	ID    string
	Kind  isa.Kind
	Props *ir.Node
}

func New(id string, props *ir.Node) *Record {
	r := &Record{ID: id, Props: props}
	if s, ok := props.GetString("isa"); ok {
		r.Kind = isa.Parse(s)
	}
	return r
}

// ISA returns the isa string, which for Unknown kinds is the only record
// of what the record is.
func (r *Record) ISA() string {
	s, _ := r.Props.GetString("isa")
	return s
}

func (r *Record) Get(key string) *ir.Node {
	return r.Props.Get(key)
}

func (r *Record) GetString(key string) (string, bool) {
	return r.Props.GetString(key)
}

// Str returns the string property at key or "".
func (r *Record) Str(key string) string {
	s, _ := r.Props.GetString(key)
	return s
}

func (r *Record) Set(key string, v *ir.Node) {
	r.Props.Set(key, v)
}

func (r *Record) SetString(key, v string) {
	r.Props.Set(key, ir.FromString(v))
}

// List returns the identifiers in an array property.
func (r *Record) List(key string) []string {
	return r.Props.Get(key).Strings()
}

// AppendList appends identifiers to an array property, creating it if
// needed.
func (r *Record) AppendList(key string, ids ...string) {
	arr := r.Props.Get(key)
	if arr == nil || arr.Type != ir.ArrayType {
		arr = ir.FromSlice(nil)
		r.Props.Set(key, arr)
	}
	for _, id := range ids {
		arr.Append(ir.FromString(id))
	}
}

// DisplayName is name, else productName, else path.
func (r *Record) DisplayName() string {
	for _, k := range []string{"name", "productName", "path"} {
		if s, ok := r.GetString(k); ok && s != "" {
			return s
		}
	}
	return ""
}

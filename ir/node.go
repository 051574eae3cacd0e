package ir

import (
	"bytes"
	"slices"
	"strconv"
)

// Node is a property list value.  For ObjectType, Fields holds the keys
// in insertion order parallel to Values; for ArrayType, Values holds the
// elements.  Objects should be modified through Set and Delete so that
// the key index stays consistent.
type Node struct {
	Type   Type
	Fields []string
	Values []*Node

	String  string
	Int64   int64
	Float64 float64
	Data    []byte

	index map[string]int
}

// objects at or below this size are searched linearly.
const indexThreshold = 16

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntegerType, Int64: v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: FloatType, Float64: v}
}

func FromData(v []byte) *Node {
	return &Node{Type: DataType, Data: v}
}

func FromSlice(vs []*Node) *Node {
	if vs == nil {
		vs = []*Node{}
	}
	return &Node{Type: ArrayType, Values: vs}
}

func FromStrings(vs []string) *Node {
	res := &Node{Type: ArrayType, Values: make([]*Node, len(vs))}
	for i, v := range vs {
		res.Values[i] = FromString(v)
	}
	return res
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]string, 0, len(kvs)),
		Values: make([]*Node, 0, len(kvs)),
	}
	for _, kv := range kvs {
		res.Set(kv.Key, kv.Val)
	}
	return res
}

func (y *Node) Len() int {
	return len(y.Values)
}

// Index returns the position of key in an object, or -1.
func (y *Node) Index(key string) int {
	if y == nil || y.Type != ObjectType {
		return -1
	}
	if len(y.Fields) <= indexThreshold {
		return slices.Index(y.Fields, key)
	}
	if y.index == nil {
		y.index = make(map[string]int, len(y.Fields))
		for i, f := range y.Fields {
			y.index[f] = i
		}
	}
	i, ok := y.index[key]
	if !ok {
		return -1
	}
	return i
}

func (y *Node) Get(key string) *Node {
	i := y.Index(key)
	if i < 0 {
		return nil
	}
	return y.Values[i]
}

// GetString returns the value at key if it is a string.
func (y *Node) GetString(key string) (string, bool) {
	v := y.Get(key)
	if v == nil || v.Type != StringType {
		return "", false
	}
	return v.String, true
}

// Has reports whether key is present.
func (y *Node) Has(key string) bool {
	return y.Index(key) >= 0
}

// Set replaces the value at key in place or appends key at the end.
func (y *Node) Set(key string, v *Node) *Node {
	if i := y.Index(key); i >= 0 {
		y.Values[i] = v
		return y
	}
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, v)
	if y.index != nil {
		y.index[key] = len(y.Fields) - 1
	}
	return y
}

func (y *Node) Delete(key string) bool {
	i := y.Index(key)
	if i < 0 {
		return false
	}
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	y.index = nil
	return true
}

// Append adds elements to an array.
func (y *Node) Append(vs ...*Node) *Node {
	y.Values = append(y.Values, vs...)
	return y
}

// Strings returns the string elements of an array, skipping others.
func (y *Node) Strings() []string {
	if y == nil || y.Type != ArrayType {
		return nil
	}
	res := make([]string, 0, len(y.Values))
	for _, v := range y.Values {
		if v.Type == StringType {
			res = append(res, v.String)
		}
	}
	return res
}

// Scalar renders a leaf as text, which is how build settings and
// identifiers see numbers.
func (y *Node) Scalar() string {
	switch y.Type {
	case StringType:
		return y.String
	case IntegerType:
		return strconv.FormatInt(y.Int64, 10)
	case FloatType:
		return strconv.FormatFloat(y.Float64, 'f', -1, 64)
	}
	return ""
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{
		Type:    y.Type,
		String:  y.String,
		Int64:   y.Int64,
		Float64: y.Float64,
	}
	if y.Data != nil {
		res.Data = slices.Clone(y.Data)
	}
	if y.Fields != nil {
		res.Fields = slices.Clone(y.Fields)
	}
	if y.Values != nil {
		res.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

// Equal compares two trees structurally, including object key order.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case StringType:
		return a.String == b.String
	case IntegerType:
		return a.Int64 == b.Int64
	case FloatType:
		return a.Float64 == b.Float64
	case DataType:
		return bytes.Equal(a.Data, b.Data)
	case ObjectType:
		if !slices.Equal(a.Fields, b.Fields) {
			return false
		}
	}
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if !Equal(a.Values[i], b.Values[i]) {
			return false
		}
	}
	return true
}

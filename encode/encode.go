package encode

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/pbxproj/debug"
	"github.com/signadot/pbxproj/format"
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/isa"
	"github.com/signadot/pbxproj/token"
)

// DefaultShebang is the first line Xcode writes.
const DefaultShebang = "// !$*UTF8*$!"

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth    int
	indent   string
	indents  []string
	shebang  string
	sorted   bool
	fragment bool
	comments map[string]string
	format   format.Format

	buf []byte

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w.  Output is assembled in memory first, so
// nothing is written when encoding fails.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent:  "\t",
		shebang: DefaultShebang,
	}
	for _, opt := range opts {
		opt(es)
	}
	var (
		d   []byte
		err error
	)
	switch es.format {
	case format.JSONFormat:
		d, err = node.ToJSON("  ")
	case format.YAMLFormat:
		d, err = node.ToYAML()
	default:
		d, err = es.encode(node)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

func (es *EncState) encode(node *ir.Node) ([]byte, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil node", ErrEncoding)
	}
	if es.comments == nil {
		if objects := node.Get("objects"); objects != nil && !es.fragment {
			es.comments = Comments(objects)
		} else {
			es.comments = map[string]string{}
		}
	}
	if !es.fragment {
		es.buf = append(es.buf, es.shebang...)
		es.buf = append(es.buf, '\n')
	}
	switch node.Type {
	case ir.ObjectType:
		es.sep(node.Type, "{")
		es.nl()
		es.depth++
		es.writeObject(node, true)
		es.depth--
		es.sep(node.Type, "}")
		es.nl()
	case ir.ArrayType:
		es.sep(node.Type, "(")
		es.nl()
		es.depth++
		es.writeElems(node)
		es.depth--
		es.sep(node.Type, ")")
		es.nl()
	default:
		if !es.fragment {
			return nil, fmt.Errorf("%w: document head must be a dictionary or an array, not %s", ErrEncoding, node.Type)
		}
		es.writeScalar("", node)
	}
	return es.buf, nil
}

func (es *EncState) writeIndent() {
	for len(es.indents) <= es.depth {
		es.indents = append(es.indents, strings.Repeat(es.indent, len(es.indents)))
	}
	es.buf = append(es.buf, es.indents[es.depth]...)
}

func (es *EncState) nl() {
	es.buf = append(es.buf, '\n')
}

func (es *EncState) raw(s string) {
	es.buf = append(es.buf, s...)
}

func (es *EncState) colored(t ir.Type, a ColorAttr, s string) {
	if es.Color != nil {
		s = es.Color(t, a, s)
	}
	es.buf = append(es.buf, s...)
}

func (es *EncState) sep(t ir.Type, s string) {
	es.colored(t, SepColor, s)
}

func (es *EncState) key(k string) {
	if es.Color == nil {
		es.buf = token.AppendKey(es.buf, k)
		return
	}
	es.colored(ir.ObjectType, FieldColor, string(token.AppendKey(nil, k)))
}

func (es *EncState) comment(c string) {
	es.colored(ir.StringType, CommentColor, "/* "+c+" */")
}

// id writes a string value, followed by the annotation of the record
// it names if there is one.
func (es *EncState) id(s string) {
	es.value(s)
	if c := es.comments[s]; c != "" {
		es.raw(" ")
		es.comment(c)
	}
}

// keyID writes a record identifier in key position with its annotation.
func (es *EncState) keyID(s string) {
	es.key(s)
	if c := es.comments[s]; c != "" {
		es.raw(" ")
		es.comment(c)
	}
}

func (es *EncState) value(s string) {
	if es.Color == nil {
		es.buf = token.AppendValue(es.buf, s)
		return
	}
	es.colored(ir.StringType, ValueColor, string(token.AppendValue(nil, s)))
}

// noComment lists keys whose identifiers are never annotated.
func noComment(key string) bool {
	return key == "remoteGlobalIDString" || key == "TestTargetID"
}

// numberText writes numbers exactly as they read back.  A whole
// version such as SWIFT_VERSION = 5.0 is a String on read and never gets
// here.
func numberText(v *ir.Node) string {
	switch v.Type {
	case ir.IntegerType:
		return strconv.FormatInt(v.Int64, 10)
	case ir.FloatType:
		return token.FormatFloat(v.Float64)
	}
	return ""
}

func dataText(d []byte) string {
	return "<" + strings.ToUpper(fmt.Sprintf("%x", d)) + ">"
}

// writeScalar writes a leaf value in the position of key.
func (es *EncState) writeScalar(key string, v *ir.Node) {
	switch v.Type {
	case ir.StringType:
		if noComment(key) {
			es.value(v.String)
			return
		}
		es.id(v.String)
	case ir.IntegerType, ir.FloatType:
		es.colored(v.Type, ValueColor, numberText(v))
	case ir.DataType:
		es.colored(v.Type, ValueColor, dataText(v.Data))
	}
}

func (es *EncState) writeObject(obj *ir.Node, base bool) {
	for i, k := range obj.Fields {
		v := obj.Values[i]
		switch v.Type {
		case ir.ArrayType:
			es.writeArray(k, v)
		case ir.ObjectType:
			es.writeIndent()
			es.key(k)
			es.raw(" = ")
			if !base && len(v.Fields) == 0 {
				es.sep(v.Type, "{}")
				es.raw(";\n")
				continue
			}
			es.sep(v.Type, "{")
			es.nl()
			es.depth++
			if base && es.depth == 2 && k == "objects" && !es.fragment {
				es.writeSections(v)
			} else {
				es.writeObject(v, base)
			}
			es.depth--
			es.writeIndent()
			es.sep(v.Type, "}")
			es.raw(";\n")
		default:
			es.writeIndent()
			es.key(k)
			es.raw(" = ")
			es.writeScalar(k, v)
			es.raw(";\n")
		}
	}
}

func (es *EncState) writeArray(k string, arr *ir.Node) {
	es.writeIndent()
	es.key(k)
	es.raw(" = ")
	es.sep(arr.Type, "(")
	es.nl()
	es.depth++
	es.writeElems(arr)
	es.depth--
	es.writeIndent()
	es.sep(arr.Type, ")")
	es.raw(";\n")
}

// writeElems writes array elements one per line.
func (es *EncState) writeElems(arr *ir.Node) {
	for _, v := range arr.Values {
		es.writeIndent()
		switch v.Type {
		case ir.ObjectType:
			es.sep(v.Type, "{")
			es.nl()
			es.depth++
			es.writeObject(v, false)
			es.depth--
			es.writeIndent()
			es.sep(v.Type, "}")
		case ir.ArrayType:
			es.sep(v.Type, "(")
			es.nl()
			es.depth++
			es.writeElems(v)
			es.depth--
			es.writeIndent()
			es.sep(v.Type, ")")
		default:
			es.writeScalar("", v)
		}
		es.raw(",\n")
	}
}

type section struct {
	kind string
	ids  []int
}

// writeSections writes the objects table grouped by isa, kinds in byte
// order, each group wrapped in Begin/End markers.
func (es *EncState) writeSections(objects *ir.Node) {
	byKind := map[string]*section{}
	var kinds []string
	var loose []int
	for i := range objects.Fields {
		v := objects.Values[i]
		kind, ok := v.GetString("isa")
		if v.Type != ir.ObjectType || !ok {
			loose = append(loose, i)
			continue
		}
		s := byKind[kind]
		if s == nil {
			s = &section{kind: kind}
			byKind[kind] = s
			kinds = append(kinds, kind)
		}
		s.ids = append(s.ids, i)
	}
	slices.Sort(kinds)
	for _, kind := range kinds {
		s := byKind[kind]
		if es.sorted {
			slices.SortStableFunc(s.ids, func(a, b int) int {
				return strings.Compare(objects.Fields[a], objects.Fields[b])
			})
		}
		es.nl()
		es.colored(ir.ObjectType, SectionColor, "/* Begin "+kind+" section */")
		es.nl()
		inline := isa.Parse(kind).Inline()
		for _, i := range s.ids {
			if inline {
				es.writeInlineRecord(objects.Fields[i], objects.Values[i])
				continue
			}
			es.writeRecord(objects.Fields[i], objects.Values[i])
		}
		es.colored(ir.ObjectType, SectionColor, "/* End "+kind+" section */")
		es.nl()
	}
	if debug.Encode() {
		debug.Logf("encode: %d sections, %d records, %d loose entries\n", len(kinds), len(objects.Fields)-len(loose), len(loose))
	}
	if len(loose) == 0 {
		return
	}
	rest := ir.NewObject()
	for _, i := range loose {
		rest.Set(objects.Fields[i], objects.Values[i])
	}
	es.writeObject(rest, false)
}

func (es *EncState) writeRecord(id string, obj *ir.Node) {
	es.writeIndent()
	es.keyID(id)
	es.raw(" = ")
	es.sep(obj.Type, "{")
	es.nl()
	es.depth++
	es.writeObject(obj, false)
	es.depth--
	es.writeIndent()
	es.sep(obj.Type, "}")
	es.raw(";\n")
}

func (es *EncState) writeInlineRecord(id string, obj *ir.Node) {
	es.writeIndent()
	es.writeInline(id, obj)
	// drop the space after the last "};"
	if n := len(es.buf); n > 0 && es.buf[n-1] == ' ' {
		es.buf = es.buf[:n-1]
	}
	es.nl()
}

// writeInline writes `key = {k = v; ... }; ` on the current line.
func (es *EncState) writeInline(key string, obj *ir.Node) {
	es.keyID(key)
	es.raw(" = ")
	es.sep(obj.Type, "{")
	for i, k := range obj.Fields {
		v := obj.Values[i]
		if v.Type == ir.ObjectType {
			es.writeInline(k, v)
			continue
		}
		es.key(k)
		es.raw(" = ")
		es.writeInlineValue(k, v)
		es.raw("; ")
	}
	es.sep(obj.Type, "}")
	es.raw("; ")
}

func (es *EncState) writeInlineValue(k string, v *ir.Node) {
	switch v.Type {
	case ir.ArrayType:
		es.sep(v.Type, "(")
		for _, e := range v.Values {
			if e.Type == ir.StringType {
				es.value(e.String)
			} else {
				es.writeInlineValue("", e)
			}
			es.raw(", ")
		}
		es.sep(v.Type, ")")
	case ir.ObjectType:
		es.sep(v.Type, "{")
		for i, f := range v.Fields {
			es.key(f)
			es.raw(" = ")
			es.writeInlineValue(f, v.Values[i])
			es.raw("; ")
		}
		es.sep(v.Type, "}")
	case ir.IntegerType, ir.FloatType:
		es.colored(v.Type, ValueColor, numberText(v))
	default:
		es.writeScalar(k, v)
	}
}

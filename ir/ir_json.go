package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MarshalJSON renders the tree as plain JSON with object keys in
// order.  Data becomes {"type":"Buffer","data":[...]}.
func (y *Node) MarshalJSON() ([]byte, error) {
	return y.appendJSON(nil)
}

func (y *Node) appendJSON(dst []byte) ([]byte, error) {
	switch y.Type {
	case StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return nil, err
		}
		return append(dst, d...), nil
	case IntegerType:
		return strconv.AppendInt(dst, y.Int64, 10), nil
	case FloatType:
		return strconv.AppendFloat(dst, y.Float64, 'f', -1, 64), nil
	case DataType:
		dst = append(dst, `{"type":"Buffer","data":[`...)
		for i, b := range y.Data {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = strconv.AppendInt(dst, int64(b), 10)
		}
		return append(dst, "]}"...), nil
	case ArrayType:
		dst = append(dst, '[')
		for i, v := range y.Values {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = v.appendJSON(dst); err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case ObjectType:
		dst = append(dst, '{')
		for i, f := range y.Fields {
			if i > 0 {
				dst = append(dst, ',')
			}
			k, err := json.Marshal(f)
			if err != nil {
				return nil, err
			}
			dst = append(dst, k...)
			dst = append(dst, ':')
			if dst, err = y.Values[i].appendJSON(dst); err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	}
	return nil, fmt.Errorf("%w: cannot marshal %s", ErrJSON, y.Type)
}

// ToJSON renders the tree as indented JSON.
func (y *Node) ToJSON(indent string) ([]byte, error) {
	d, err := y.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if indent == "" {
		return d, nil
	}
	buf := &bytes.Buffer{}
	if err := json.Indent(buf, d, "", indent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (y *Node) UnmarshalJSON(d []byte) error {
	n, err := FromJSON(d)
	if err != nil {
		return err
	}
	*y = *n
	return nil
}

// FromJSON builds a tree from JSON keeping object key order.  Booleans
// become YES or NO, null becomes the empty string, and numbers are
// integers when they have no fraction or exponent.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := decodeJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrJSON)
	}
	return res, nil
}

func decodeJSON(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJSON, err)
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := NewObject()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrJSON, err)
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("%w: non-string key %v", ErrJSON, kt)
				}
				val, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrJSON, err)
			}
			return fromBuffer(obj), nil
		case '[':
			arr := FromSlice(nil)
			for dec.More() {
				val, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrJSON, err)
			}
			return arr, nil
		}
		return nil, fmt.Errorf("%w: unexpected %v", ErrJSON, v)
	case string:
		return FromString(v), nil
	case json.Number:
		s := v.String()
		if !strings.ContainsAny(s, ".eE") {
			if i, err := v.Int64(); err == nil {
				return FromInt(i), nil
			}
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrJSON, err)
		}
		return FromFloat(f), nil
	case bool:
		if v {
			return FromString("YES"), nil
		}
		return FromString("NO"), nil
	case nil:
		return FromString(""), nil
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrJSON, tok)
}

// fromBuffer recognizes the {"type":"Buffer","data":[...]} shape.
func fromBuffer(obj *Node) *Node {
	if len(obj.Fields) != 2 {
		return obj
	}
	typ, ok := obj.GetString("type")
	data := obj.Get("data")
	if !ok || typ != "Buffer" || data == nil || data.Type != ArrayType {
		return obj
	}
	bs := make([]byte, 0, len(data.Values))
	for _, v := range data.Values {
		if v.Type != IntegerType || v.Int64 < 0 || v.Int64 > 255 {
			return obj
		}
		bs = append(bs, byte(v.Int64))
	}
	return FromData(bs)
}

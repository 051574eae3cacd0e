package ir

import "fmt"

type Type int

const (
	StringType Type = iota
	IntegerType
	FloatType
	DataType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		StringType:  "String",
		IntegerType: "Integer",
		FloatType:   "Float",
		DataType:    "Data",
		ArrayType:   "Array",
		ObjectType:  "Object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"String":  StringType,
		"Integer": IntegerType,
		"Float":   FloatType,
		"Data":    DataType,
		"Array":   ArrayType,
		"Object":  ObjectType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		StringType,
		IntegerType,
		FloatType,
		DataType,
		ArrayType,
		ObjectType,
	}
}

func (t Type) IsLeaf() bool {
	return t != ArrayType && t != ObjectType
}

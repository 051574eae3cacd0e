package ir

import "github.com/goccy/go-yaml"

// ToYAML renders the tree as YAML with object keys in order.
func (y *Node) ToYAML() ([]byte, error) {
	return yaml.Marshal(y.yamlValue())
}

func (y *Node) yamlValue() any {
	switch y.Type {
	case StringType:
		return y.String
	case IntegerType:
		return y.Int64
	case FloatType:
		return y.Float64
	case DataType:
		data := make([]int, len(y.Data))
		for i, b := range y.Data {
			data[i] = int(b)
		}
		return yaml.MapSlice{
			{Key: "type", Value: "Buffer"},
			{Key: "data", Value: data},
		}
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = v.yamlValue()
		}
		return res
	case ObjectType:
		res := make(yaml.MapSlice, len(y.Fields))
		for i, f := range y.Fields {
			res[i] = yaml.MapItem{Key: f, Value: y.Values[i].yamlValue()}
		}
		return res
	}
	return nil
}

package project

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/object"
)

// Query evaluates a boolean expression against every record and returns
// the identifiers of those for which it holds, in table order.  The
// expression sees the record's properties by name plus id, and may
// call nameOf(id) for the display name of another record.  Properties a
// record lacks are nil.
//
//	isa == "PBXNativeTarget" && productType endsWith "application"
func (p *Project) Query(src string) ([]string, error) {
	prg, err := expr.Compile(src, p.exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	var res []string
	var runErr error
	p.each(func(r *object.Record) bool {
		env := goValue(r.Props).(map[string]any)
		env["id"] = r.ID
		out, err := expr.Run(prg, env)
		if err != nil {
			runErr = fmt.Errorf("%w: %s: %w", ErrQuery, r.ID, err)
			return false
		}
		if ok, _ := out.(bool); ok {
			res = append(res, r.ID)
		}
		return true
	})
	if runErr != nil {
		return nil, runErr
	}
	return res, nil
}

func (p *Project) exprOpts() []expr.Option {
	return []expr.Option{
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
		expr.Function("nameOf", func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("nameOf takes 1 argument, got %d", len(params))
			}
			id, _ := params[0].(string)
			if r := p.records[id]; r != nil {
				return r.DisplayName(), nil
			}
			return "", nil
		}),
	}
}

// goValue converts a tree to the plain values expressions work with.
func goValue(n *ir.Node) any {
	switch n.Type {
	case ir.StringType:
		return n.String
	case ir.IntegerType:
		return int(n.Int64)
	case ir.FloatType:
		return n.Float64
	case ir.DataType:
		return n.Data
	case ir.ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = goValue(v)
		}
		return res
	case ir.ObjectType:
		res := make(map[string]any, len(n.Fields))
		for i, f := range n.Fields {
			res[f] = goValue(n.Values[i])
		}
		return res
	}
	return nil
}

package project

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/pbxproj/ir"
)

// ApplyJSONPatch applies an RFC 6902 patch to the JSON rendering of the
// project.  The project is replaced only when the patched document is
// still a valid project.  Keys keep their order; added keys come last.
func (p *Project) ApplyJSONPatch(patch []byte) error {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	doc, err := p.root.MarshalJSON()
	if err != nil {
		return err
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	node, err := ir.FromJSON(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	np, err := FromNode(keepOrder(p.root, node))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	p.root, p.objects, p.records = np.root, np.objects, np.records
	return nil
}

// keepOrder puts the keys of patched dictionaries back in the order they
// had before the patch, which the patch library does not preserve.
func keepOrder(before, after *ir.Node) *ir.Node {
	if before == nil || before.Type != after.Type {
		return after
	}
	switch after.Type {
	case ir.ArrayType:
		for i, v := range after.Values {
			if i < len(before.Values) {
				after.Values[i] = keepOrder(before.Values[i], v)
			}
		}
	case ir.ObjectType:
		kvs := make([]ir.KeyVal, 0, len(after.Fields))
		for _, k := range before.Fields {
			if v := after.Get(k); v != nil {
				kvs = append(kvs, ir.KeyVal{Key: k, Val: keepOrder(before.Get(k), v)})
			}
		}
		for i, k := range after.Fields {
			if !before.Has(k) {
				kvs = append(kvs, ir.KeyVal{Key: k, Val: after.Values[i]})
			}
		}
		return ir.FromKeyVals(kvs)
	}
	return after
}

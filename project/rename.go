package project

import (
	"path"
	"strings"

	"github.com/signadot/pbxproj/debug"
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/isa"
	"github.com/signadot/pbxproj/object"
)

// RenameTarget renames a target along with what is named after it: its
// productName, the file name of its product, groups named after it,
// container proxies naming it, PRODUCT_NAME settings equal to the old
// name, and test hosts pointing into its application bundle.
func (p *Project) RenameTarget(targetID, newName string) error {
	const op = "rename target"
	target, err := p.expect(op, targetID, isa.Kind.IsTarget, "target")
	if err != nil {
		return err
	}
	if newName == "" {
		return opErr(op, targetID, ErrInvalid, "empty name")
	}
	old := target.Str("name")
	if old == newName {
		return nil
	}
	if other, ok := p.FindTargetByName(newName); ok && other != targetID {
		return opErr(op, targetID, ErrExists, "target %q", newName)
	}

	target.SetString("name", newName)
	if target.Str("productName") == old {
		target.SetString("productName", newName)
	}
	if product := p.records[target.Str("productReference")]; product != nil {
		for _, k := range []string{"path", "name"} {
			if s, ok := product.GetString(k); ok {
				product.SetString(k, renameFile(s, old, newName))
			}
		}
	}
	oldHost := "/" + old + ".app/" + old
	newHost := "/" + newName + ".app/" + newName
	p.each(func(r *object.Record) bool {
		switch {
		case r.Kind.IsGroup():
			for _, k := range []string{"name", "path"} {
				if r.Str(k) == old {
					r.SetString(k, newName)
				}
			}
		case r.Kind == isa.PBXContainerItemProxy:
			if r.Str("remoteInfo") == old {
				r.SetString("remoteInfo", newName)
			}
		case r.Kind == isa.XCBuildConfiguration:
			renameSettings(r.Get("buildSettings"), oldHost, newHost)
		}
		return true
	})
	for _, cfg := range p.Configurations(target.Str("buildConfigurationList")) {
		bs := p.records[cfg].Get("buildSettings")
		if s, ok := bs.GetString("PRODUCT_NAME"); ok && s == old {
			bs.Set("PRODUCT_NAME", ir.FromString(newName))
		}
	}
	if debug.Project() {
		debug.Logf("project: renamed target %s %q -> %q\n", targetID, old, newName)
	}
	return nil
}

// renameFile renames base.ext to newName.ext when base is old.
func renameFile(p, old, newName string) string {
	dir, file := path.Split(p)
	ext := path.Ext(file)
	if strings.TrimSuffix(file, ext) != old {
		return p
	}
	return dir + newName + ext
}

// renameSettings rewrites test host paths into the renamed bundle.
func renameSettings(bs *ir.Node, oldHost, newHost string) {
	if bs == nil || bs.Type != ir.ObjectType {
		return
	}
	for _, v := range bs.Values {
		if v.Type == ir.StringType && strings.Contains(v.String, oldHost) {
			v.String = strings.ReplaceAll(v.String, oldHost, newHost)
		}
	}
}

package project

import (
	"github.com/signadot/pbxproj/isa"
	"github.com/signadot/pbxproj/object"
)

// parent returns the first group, or the project, listing id.
func (p *Project) parent(id string) *object.Record {
	var res *object.Record
	p.each(func(r *object.Record) bool {
		if (r.Kind.IsGroup() || r.Kind == isa.PBXProject) && r.IsReferencing(id) {
			res = r
			return false
		}
		return true
	})
	return res
}

// Parents lists the groups containing id, outermost first.  The main
// group has no parents.
func (p *Project) Parents(id string) []string {
	var res []string
	main := p.MainGroupID()
	seen := map[string]bool{id: true}
	for id != main {
		par := p.parent(id)
		if par == nil || par.Kind == isa.PBXProject || seen[par.ID] {
			break
		}
		seen[par.ID] = true
		res = append(res, par.ID)
		id = par.ID
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// FullPath is the path of a file or group relative to the project
// root, following the group chain.  Anchors other than the project
// (such as SDKROOT) are written as build setting references.
func (p *Project) FullPath(id string) (string, bool) {
	return p.fullPath(id, map[string]bool{})
}

func (p *Project) fullPath(id string, seen map[string]bool) (string, bool) {
	r := p.records[id]
	if r == nil || seen[id] {
		return "", false
	}
	seen[id] = true
	var base string
	switch tree, _ := r.GetString("sourceTree"); tree {
	case "<group>":
		par := p.parent(id)
		if par == nil {
			return "", false
		}
		if par.Kind != isa.PBXProject {
			var ok bool
			if base, ok = p.fullPath(par.ID, seen); !ok {
				return "", false
			}
		}
	case "SOURCE_ROOT":
	case "<absolute>":
		base = "/"
	case "":
		return "", false
	default:
		base = "$(" + tree + ")"
	}
	return joinPath(base, r.Str("path")), true
}

// RealPath is FullPath anchored at the project root on disk.  Projects
// without a file path use "" as their root.
func (p *Project) RealPath(id string) (string, bool) {
	return p.realPath(id, map[string]bool{})
}

func (p *Project) realPath(id string, seen map[string]bool) (string, bool) {
	r := p.records[id]
	if r == nil || seen[id] {
		return "", false
	}
	seen[id] = true
	var base string
	switch tree, _ := r.GetString("sourceTree"); tree {
	case "<group>":
		par := p.parent(id)
		if par == nil {
			return "", false
		}
		if par.Kind == isa.PBXProject {
			base = joinPath(p.ProjectRoot(), par.Str("projectDirPath"))
			break
		}
		var ok bool
		if base, ok = p.realPath(par.ID, seen); !ok {
			return "", false
		}
	case "SOURCE_ROOT":
		base = p.ProjectRoot()
	case "<absolute>":
	case "":
		return "", false
	default:
		base = "$(" + tree + ")"
	}
	res := joinPath(base, r.Str("path"))
	return res, res != ""
}

func joinPath(base, rel string) string {
	switch {
	case rel == "":
		return base
	case base == "", rel[0] == '/':
		return rel
	case base[len(base)-1] == '/':
		return base + rel
	}
	return base + "/" + rel
}

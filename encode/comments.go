package encode

import (
	"strings"

	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/isa"
)

// Comments derives the annotation written after each identifier from an
// objects table.  Identifiers whose annotation is empty are absent.
func Comments(objects *ir.Node) map[string]string {
	res := map[string]string{}
	if objects == nil || objects.Type != ir.ObjectType {
		return res
	}
	ix := newCommentIndex(objects)
	for i, id := range objects.Fields {
		if c, ok := ix.comment(id, objects.Values[i]); ok && c != "" {
			res[id] = c
		}
	}
	return res
}

type commentIndex struct {
	objects *ir.Node
	// build file id -> phase containing it
	phases map[string]*ir.Node
	// configuration list id -> owning record
	owners   map[string]*ir.Node
	ownerIDs map[string]string
	// container portal id -> remoteInfo of the first proxy into it
	proxies map[string]string
	done    map[string]string
}

func newCommentIndex(objects *ir.Node) *commentIndex {
	ix := &commentIndex{
		objects:  objects,
		phases:   map[string]*ir.Node{},
		owners:   map[string]*ir.Node{},
		ownerIDs: map[string]string{},
		proxies:  map[string]string{},
		done:     map[string]string{},
	}
	for i, id := range objects.Fields {
		obj := objects.Values[i]
		if obj.Type != ir.ObjectType {
			continue
		}
		kind, _ := obj.GetString("isa")
		if strings.HasSuffix(kind, "BuildPhase") {
			for _, f := range obj.Get("files").Strings() {
				ix.phases[f] = obj
			}
		}
		if list, ok := obj.GetString("buildConfigurationList"); ok {
			if _, seen := ix.owners[list]; !seen {
				ix.owners[list] = obj
				ix.ownerIDs[list] = id
			}
		}
		if kind == "PBXContainerItemProxy" {
			portal, _ := obj.GetString("containerPortal")
			info, ok := obj.GetString("remoteInfo")
			if _, seen := ix.proxies[portal]; ok && !seen {
				ix.proxies[portal] = info
			}
		}
	}
	return ix
}

// comment returns false for values which are not records.
func (ix *commentIndex) comment(id string, obj *ir.Node) (string, bool) {
	if c, ok := ix.done[id]; ok {
		return c, true
	}
	if obj.Type != ir.ObjectType {
		return "", false
	}
	kind, ok := obj.GetString("isa")
	if !ok {
		return "", false
	}
	// guards against build files referring to build files
	ix.done[id] = "(null)"
	var c string
	switch {
	case kind == "PBXBuildFile":
		c = ix.buildFile(id, obj)
	case kind == "XCConfigurationList":
		c = ix.configList(id)
	case kind == "XCRemoteSwiftPackageReference":
		c = kind
		if url, ok := obj.GetString("repositoryURL"); ok {
			c = kind + ` "` + RepoName(url) + `"`
		}
	case kind == "XCLocalSwiftPackageReference":
		c = kind
		if p, ok := obj.GetString("relativePath"); ok {
			c = kind + ` "` + p + `"`
		}
	case kind == "PBXProject":
		c = "Project object"
	case strings.HasSuffix(kind, "BuildPhase"):
		c = phaseName(obj)
	case kind == "PBXGroup" && !obj.Has("name") && !obj.Has("path"):
		c = ""
	default:
		c = defaultName(obj, kind)
	}
	ix.done[id] = c
	return c, true
}

func (ix *commentIndex) buildFile(id string, obj *ir.Node) string {
	phase := "[missing build phase]"
	if p := ix.phases[id]; p != nil {
		phase = phaseName(p)
	}
	name := "(null)"
	ref := obj.Get("fileRef")
	if ref == nil {
		ref = obj.Get("productRef")
	}
	if ref != nil && ref.Type == ir.StringType {
		if target := ix.objects.Get(ref.String); target != nil {
			if c, ok := ix.comment(ref.String, target); ok {
				name = c
			}
		}
	}
	return name + " in " + phase
}

func (ix *commentIndex) configList(id string) string {
	owner := ix.owners[id]
	if owner == nil {
		return "Build configuration list for [unknown]"
	}
	kind, _ := owner.GetString("isa")
	prefix := "Build configuration list for " + kind
	for _, k := range []string{"name", "path", "productName"} {
		if s, ok := owner.GetString(k); ok {
			return prefix + ` "` + s + `"`
		}
	}
	if targets := owner.Get("targets").Strings(); len(targets) > 0 {
		if t := ix.objects.Get(targets[0]); t != nil && t.Type == ir.ObjectType {
			for _, k := range []string{"productName", "name"} {
				if s, ok := t.GetString(k); ok {
					return prefix + ` "` + s + `"`
				}
			}
		}
	}
	if info, ok := ix.proxies[ix.ownerIDs[id]]; ok {
		return prefix + ` "` + info + `"`
	}
	return prefix
}

func phaseName(obj *ir.Node) string {
	if s, ok := obj.GetString("name"); ok {
		return s
	}
	kind, _ := obj.GetString("isa")
	if k := isa.Parse(kind); k != isa.Unknown {
		return k.DefaultPhaseName()
	}
	if strings.HasPrefix(kind, "PBX") {
		return isa.DefaultPhaseName(kind)
	}
	return ""
}

func defaultName(obj *ir.Node, kind string) string {
	for _, k := range []string{"name", "productName", "path"} {
		if s, ok := obj.GetString(k); ok {
			return s
		}
	}
	return kind
}

// RepoName extracts the repository name from a GitHub URL, or returns
// the URL unchanged.
func RepoName(url string) string {
	for _, prefix := range []string{"https://github.com/", "http://github.com/"} {
		path, ok := strings.CutPrefix(url, prefix)
		if !ok {
			continue
		}
		name := path[strings.LastIndexByte(path, '/')+1:]
		name = strings.TrimSuffix(name, ".git")
		if name != "" {
			return name
		}
	}
	return url
}

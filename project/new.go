package project

import (
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/isa"
	"github.com/signadot/pbxproj/object"
)

// New creates an empty project with a main group, a Products group and
// Debug and Release project configurations.  Identifiers are minted from
// name, so equal names give equal projects.
func New(name string) *Project {
	objects := ir.NewObject()
	root := ir.FromKeyVals([]ir.KeyVal{
		kv("archiveVersion", ir.FromInt(LastKnownArchiveVersion)),
		kv("classes", ir.NewObject()),
		kv("objectVersion", ir.FromInt(LastKnownObjectVersion)),
		kv("objects", objects),
		kv("rootObject", str("")),
	})
	p := &Project{root: root, objects: objects, records: map[string]*object.Record{}}

	productsID := p.MintID(name + ":products")
	p.insert(productsID, ir.FromKeyVals([]ir.KeyVal{
		kv("isa", str(isa.PBXGroup.String())),
		kv("children", ir.FromSlice(nil)),
		kv("name", str("Products")),
		kv("sourceTree", str("<group>")),
	}))
	mainID := p.MintID(name + ":mainGroup")
	p.insert(mainID, ir.FromKeyVals([]ir.KeyVal{
		kv("isa", str(isa.PBXGroup.String())),
		kv("children", ir.FromStrings([]string{productsID})),
		kv("sourceTree", str("<group>")),
	}))

	var cfgs []string
	for _, c := range []struct {
		name  string
		extra []setting
	}{
		{"Debug", debugSettings},
		{"Release", releaseSettings},
	} {
		bs := map[string]string{}
		for _, s := range defaultSettings {
			bs[s.key] = s.value
		}
		for _, s := range c.extra {
			bs[s.key] = s.value
		}
		id := p.MintID(name + ":config:" + c.name)
		p.insert(id, configProps(c.name, bs))
		cfgs = append(cfgs, id)
	}
	listID := p.MintID(name + ":configList")
	p.insert(listID, configListProps(cfgs))

	rootID := p.MintID(name + ":project")
	p.insert(rootID, ir.FromKeyVals([]ir.KeyVal{
		kv("isa", str(isa.PBXProject.String())),
		kv("attributes", ir.FromKeyVals([]ir.KeyVal{
			kv("BuildIndependentTargetsInParallel", ir.FromInt(1)),
			kv("LastUpgradeCheck", str(LastUpgradeCheck)),
		})),
		kv("buildConfigurationList", str(listID)),
		kv("developmentRegion", str("en")),
		kv("hasScannedForEncodings", ir.FromInt(0)),
		kv("knownRegions", ir.FromStrings([]string{"en", "Base"})),
		kv("mainGroup", str(mainID)),
		kv("minimizedProjectReferenceProxies", ir.FromInt(1)),
		kv("preferredProjectObjectVersion", ir.FromInt(LastKnownObjectVersion)),
		kv("productRefGroup", str(productsID)),
		kv("projectDirPath", str("")),
		kv("projectRoot", str("")),
		kv("targets", ir.FromSlice(nil)),
	}))
	root.Set("rootObject", str(rootID))
	return p
}

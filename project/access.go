package project

import (
	"github.com/signadot/pbxproj/isa"
	"github.com/signadot/pbxproj/object"
)

// Get returns the record with identifier id, or nil.
func (p *Project) Get(id string) *object.Record {
	return p.records[id]
}

func (p *Project) Has(id string) bool {
	_, ok := p.records[id]
	return ok
}

// Len is the number of records.
func (p *Project) Len() int {
	return len(p.records)
}

// IDs lists record identifiers in table order.
func (p *Project) IDs() []string {
	res := make([]string, 0, len(p.records))
	for _, id := range p.objects.Fields {
		if _, ok := p.records[id]; ok {
			res = append(res, id)
		}
	}
	return res
}

// each calls f on every record in table order until f returns false.
func (p *Project) each(f func(r *object.Record) bool) {
	for _, id := range p.objects.Fields {
		if r := p.records[id]; r != nil && !f(r) {
			return
		}
	}
}

// ByKind lists the identifiers of records of kind k in table order.
func (p *Project) ByKind(k isa.Kind) []string {
	var res []string
	p.each(func(r *object.Record) bool {
		if r.Kind == k {
			res = append(res, r.ID)
		}
		return true
	})
	return res
}

// ByISA is ByKind for isa strings, including unknown ones.
func (p *Project) ByISA(s string) []string {
	var res []string
	p.each(func(r *object.Record) bool {
		if r.ISA() == s {
			res = append(res, r.ID)
		}
		return true
	})
	return res
}

func (p *Project) RootID() string {
	s, _ := p.root.GetString("rootObject")
	return s
}

// Root is the PBXProject record.
func (p *Project) Root() *object.Record {
	return p.records[p.RootID()]
}

func (p *Project) MainGroupID() string {
	return p.Root().Str("mainGroup")
}

func (p *Project) ProductsGroupID() string {
	return p.Root().Str("productRefGroup")
}

// TargetIDs lists the project's targets in declaration order.
func (p *Project) TargetIDs() []string {
	return p.Root().List("targets")
}

// NativeTargets lists the PBXNativeTarget records among the project's
// targets.
func (p *Project) NativeTargets() []string {
	var res []string
	for _, id := range p.TargetIDs() {
		if r := p.records[id]; r != nil && r.Kind == isa.PBXNativeTarget {
			res = append(res, id)
		}
	}
	return res
}

func (p *Project) FindTargetByName(name string) (string, bool) {
	for _, id := range p.TargetIDs() {
		if r := p.records[id]; r != nil && r.Str("name") == name {
			return id, true
		}
	}
	return "", false
}

func (p *Project) FindTargetByProductType(productType string) (string, bool) {
	for _, id := range p.NativeTargets() {
		if p.records[id].Str("productType") == productType {
			return id, true
		}
	}
	return "", false
}

var deploymentKeys = map[string]string{
	"ios":      "IPHONEOS_DEPLOYMENT_TARGET",
	"macos":    "MACOSX_DEPLOYMENT_TARGET",
	"tvos":     "TVOS_DEPLOYMENT_TARGET",
	"watchos":  "WATCHOS_DEPLOYMENT_TARGET",
	"visionos": "XROS_DEPLOYMENT_TARGET",
}

// FindMainAppTarget picks the application target for platform: the
// first one whose configurations set the platform's deployment target,
// else the first application target.
func (p *Project) FindMainAppTarget(platform string) (string, bool) {
	key, ok := deploymentKeys[platform]
	if !ok {
		return "", false
	}
	var apps []string
	for _, id := range p.NativeTargets() {
		if p.records[id].Str("productType") == ProductTypeApplication {
			apps = append(apps, id)
		}
	}
	for _, id := range apps {
		for _, cfg := range p.Configurations(p.records[id].Str("buildConfigurationList")) {
			if p.records[cfg].Get("buildSettings").Has(key) {
				return id, true
			}
		}
	}
	if len(apps) == 0 {
		return "", false
	}
	return apps[0], true
}

// FindBuildPhase returns the first phase of kind k in the target's
// buildPhases.
func (p *Project) FindBuildPhase(targetID string, k isa.Kind) (string, bool) {
	t := p.records[targetID]
	if t == nil {
		return "", false
	}
	for _, id := range t.List("buildPhases") {
		if r := p.records[id]; r != nil && r.Kind == k {
			return id, true
		}
	}
	return "", false
}

// Referrers lists the records holding id under a declared reference
// key, in table order.
func (p *Project) Referrers(id string) []string {
	var res []string
	p.each(func(r *object.Record) bool {
		if r.IsReferencing(id) {
			res = append(res, r.ID)
		}
		return true
	})
	return res
}

// Configurations lists the existing configurations of a configuration
// list.
func (p *Project) Configurations(listID string) []string {
	l := p.records[listID]
	if l == nil {
		return nil
	}
	var res []string
	for _, id := range l.List("buildConfigurations") {
		if r := p.records[id]; r != nil && r.Kind == isa.XCBuildConfiguration {
			res = append(res, id)
		}
	}
	return res
}

// DefaultConfiguration is the configuration named by the list's
// defaultConfigurationName, else its first one.
func (p *Project) DefaultConfiguration(listID string) (string, bool) {
	cfgs := p.Configurations(listID)
	if len(cfgs) == 0 {
		return "", false
	}
	name := p.records[listID].Str("defaultConfigurationName")
	for _, id := range cfgs {
		if p.records[id].Str("name") == name {
			return id, true
		}
	}
	return cfgs[0], true
}

// owner returns the first record naming listID as its configuration
// list.
func (p *Project) owner(listID string) *object.Record {
	var res *object.Record
	p.each(func(r *object.Record) bool {
		if s, ok := r.GetString("buildConfigurationList"); ok && s == listID {
			res = r
			return false
		}
		return true
	})
	return res
}

// listOf returns the configuration list holding configID.
func (p *Project) listOf(configID string) *object.Record {
	var res *object.Record
	p.each(func(r *object.Record) bool {
		if r.Kind == isa.XCConfigurationList && r.IsReferencing(configID) {
			res = r
			return false
		}
		return true
	})
	return res
}

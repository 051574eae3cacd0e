package project

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/isa"
	"github.com/signadot/pbxproj/settings"
)

// configsOf lists the configurations of the record's configuration
// list.
func (p *Project) configsOf(op, id string) ([]string, error) {
	r := p.records[id]
	if r == nil {
		return nil, opErr(op, id, ErrNotFound, "")
	}
	listID, ok := r.GetString("buildConfigurationList")
	if !ok {
		return nil, opErr(op, id, ErrWrongKind, "%s has no build configuration list", r.ISA())
	}
	if l := p.records[listID]; l == nil || l.Kind != isa.XCConfigurationList {
		return nil, opErr(op, id, ErrNotFound, "configuration list %s", listID)
	}
	return p.Configurations(listID), nil
}

// BuildSetting returns the unresolved value of key in the default
// configuration of a target or of the project.
func (p *Project) BuildSetting(id, key string) (*ir.Node, bool) {
	r := p.records[id]
	if r == nil {
		return nil, false
	}
	cfg, ok := p.DefaultConfiguration(r.Str("buildConfigurationList"))
	if !ok {
		return nil, false
	}
	v := p.records[cfg].Get("buildSettings").Get(key)
	return v, v != nil
}

// SetBuildSetting sets key in every configuration of a target or of the
// project.
func (p *Project) SetBuildSetting(id, key string, v *ir.Node) error {
	cfgs, err := p.configsOf("set build setting", id)
	if err != nil {
		return err
	}
	for _, cfg := range cfgs {
		r := p.records[cfg]
		bs := r.Get("buildSettings")
		if bs == nil || bs.Type != ir.ObjectType {
			bs = ir.NewObject()
			r.Set("buildSettings", bs)
		}
		bs.Set(key, v.Clone())
	}
	return nil
}

// RemoveBuildSetting deletes key from every configuration of a target
// or of the project.
func (p *Project) RemoveBuildSetting(id, key string) error {
	cfgs, err := p.configsOf("remove build setting", id)
	if err != nil {
		return err
	}
	for _, cfg := range cfgs {
		p.records[cfg].Get("buildSettings").Delete(key)
	}
	return nil
}

// ResolveTargetBuildSetting resolves key in the default configuration of
// a target.
func (p *Project) ResolveTargetBuildSetting(targetID, key string) (string, bool) {
	r := p.records[targetID]
	if r == nil {
		return "", false
	}
	cfg, ok := p.DefaultConfiguration(r.Str("buildConfigurationList"))
	if !ok {
		return "", false
	}
	return p.ResolveBuildSetting(cfg, key)
}

// ResolveBuildSetting looks key up in a configuration, then in the
// project configuration of the same name, then among the values the
// build system provides, and expands the references in what it finds.
// $(inherited) refers to the value key has at the next level down.
// References which cannot be resolved stay as written.
func (p *Project) ResolveBuildSetting(configID, key string) (string, bool) {
	c := p.chain(configID)
	if c == nil {
		return "", false
	}
	return c.value(key, 0)
}

// ProjectName is the name of the .xcodeproj bundle holding the project
// file, or "" when there is no file path.
func (p *Project) ProjectName() string {
	if p.path == "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(filepath.Dir(p.path)), ".xcodeproj")
}

type settingsChain struct {
	levels []*ir.Node
	active map[string]bool
}

func (p *Project) chain(configID string) *settingsChain {
	cfg := p.records[configID]
	if cfg == nil || cfg.Kind != isa.XCBuildConfiguration {
		return nil
	}
	c := &settingsChain{active: map[string]bool{}}
	c.levels = append(c.levels, cfg.Get("buildSettings"))
	name := cfg.Str("name")
	builtins := ir.NewObject()
	if name != "" {
		builtins.Set("CONFIGURATION", ir.FromString(name))
	}
	if list := p.listOf(configID); list != nil {
		if owner := p.owner(list.ID); owner != nil && owner.Kind.IsTarget() {
			for _, id := range p.Configurations(p.Root().Str("buildConfigurationList")) {
				if p.records[id].Str("name") == name {
					c.levels = append(c.levels, p.records[id].Get("buildSettings"))
					break
				}
			}
			builtins.Set("TARGET_NAME", ir.FromString(owner.Str("name")))
			builtins.Set("PRODUCT_NAME", ir.FromString("$(TARGET_NAME)"))
		}
	}
	if s := p.ProjectName(); s != "" {
		builtins.Set("PROJECT_NAME", ir.FromString(s))
	}
	if root := p.ProjectRoot(); root != "" {
		for _, k := range []string{"SRCROOT", "PROJECT_DIR", "SOURCE_ROOT"} {
			builtins.Set(k, ir.FromString(root))
		}
	}
	c.levels = append(c.levels, builtins)
	return c
}

func (c *settingsChain) value(key string, from int) (string, bool) {
	for i := from; i < len(c.levels); i++ {
		v := c.levels[i].Get(key)
		if v == nil {
			continue
		}
		mark := key + "@" + strconv.Itoa(i)
		if c.active[mark] {
			return "", false
		}
		c.active[mark] = true
		raw := settingText(v)
		res := settings.Resolve(raw, func(name string) (string, bool) {
			if name == "inherited" {
				s, _ := c.value(key, i+1)
				return s, true
			}
			return c.value(name, 0)
		})
		delete(c.active, mark)
		if strings.Contains(raw, "inherited") {
			res = strings.TrimSpace(res)
		}
		return res, true
	}
	return "", false
}

// settingText renders a setting as the build system sees it: lists are
// joined with spaces.
func settingText(v *ir.Node) string {
	if v.Type != ir.ArrayType {
		return v.Scalar()
	}
	parts := make([]string, 0, len(v.Values))
	for _, e := range v.Values {
		parts = append(parts, e.Scalar())
	}
	return strings.Join(parts, " ")
}

// TargetFile resolves a path-valued build setting of a target, such as
// INFOPLIST_FILE or CODE_SIGN_ENTITLEMENTS, against the project root.
func (p *Project) TargetFile(targetID, key string) (string, bool) {
	s, ok := p.ResolveTargetBuildSetting(targetID, key)
	if !ok || s == "" {
		return "", false
	}
	if filepath.IsAbs(s) {
		return s, true
	}
	return filepath.Join(p.ProjectRoot(), s), true
}

package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/signadot/pbxproj/isa"
	"github.com/signadot/pbxproj/project"
)

func addFiles(cfg *AddFileConfig, cc *cli.Context, args []string) error {
	args, err := cfg.AddFile.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := nArgs(args, 3, -1, "add-file [-target T] file group path..."); err != nil {
		return err
	}
	p, err := cfg.open(args[0])
	if err != nil {
		return err
	}
	group, err := findGroup(p, args[1])
	if err != nil {
		return err
	}
	var target string
	if cfg.Target != "" {
		if target, err = cfg.target(p, cfg.Target); err != nil {
			return err
		}
	}
	for _, path := range args[2:] {
		id, err := p.AddFile(group, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "%s %s\n", id, path)
		if target == "" {
			continue
		}
		if _, err := buildIn(p, target, id, path); err != nil {
			return err
		}
	}
	return cfg.save(p)
}

// findGroup finds a group by identifier, or the first group with the
// given display name.  "-" is the main group.
func findGroup(p *project.Project, name string) (string, error) {
	if name == "-" {
		return p.MainGroupID(), nil
	}
	if r := p.Get(name); r != nil && r.Kind.IsGroup() {
		return name, nil
	}
	for _, id := range p.ByKind(isa.PBXGroup) {
		if p.Get(id).DisplayName() == name {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: group %q", project.ErrNotFound, name)
}

// buildIn adds a file to the phase of target which builds its type:
// sources are compiled, headers are not built, the rest are resources.
func buildIn(p *project.Project, target, fileID, path string) (string, error) {
	typ := project.FileType(path)
	var kind isa.Kind
	switch {
	case strings.HasSuffix(typ, ".h"):
		return "", nil
	case strings.HasPrefix(typ, "sourcecode."), typ == "wrapper.xcdatamodel":
		kind = isa.PBXSourcesBuildPhase
	default:
		kind = isa.PBXResourcesBuildPhase
	}
	phase, ok := p.FindBuildPhase(target, kind)
	if !ok {
		var err error
		if phase, err = p.AddBuildPhase(target, kind, ""); err != nil {
			return "", err
		}
	}
	return p.AddBuildFile(phase, fileID)
}

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/signadot/pbxproj/encode"
	"github.com/signadot/pbxproj/infoplist"
	"github.com/signadot/pbxproj/project"
)

func plistCmd(cfg *PlistConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Plist.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := nArgs(args, 1, 1, "plist [-target T] [-key K] [-resolve] file"); err != nil {
		return err
	}
	file := projectFile(args[0])
	var (
		doc *infoplist.Document
		p   *project.Project
	)
	if filepath.Ext(file) == ".pbxproj" {
		if p, err = cfg.open(file); err != nil {
			return err
		}
		doc, err = cfg.targetPlist(p)
	} else {
		doc, err = infoplist.Read(file)
	}
	if err != nil {
		return err
	}
	if cfg.Resolve {
		if p == nil {
			return fmt.Errorf("%w: -resolve needs a project", cli.ErrUsage)
		}
		target, err := cfg.target(p, cfg.Target)
		if err != nil {
			return err
		}
		doc.Expand(func(name string) (string, bool) {
			return p.ResolveTargetBuildSetting(target, name)
		})
	}
	opts := append(cfg.encOpts(cc.Out), encode.Fragment())
	if err := encode.Encode(doc.ToNode(), cc.Out, opts...); err != nil {
		return err
	}
	return nil
}

func (cfg *PlistConfig) targetPlist(p *project.Project) (*infoplist.Document, error) {
	target, err := cfg.target(p, cfg.Target)
	if err != nil {
		return nil, err
	}
	key := cfg.Key
	if key == "" {
		key = "INFOPLIST_FILE"
	}
	path, ok := p.TargetFile(target, key)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s", project.ErrNotFound, p.Get(target).Str("name"), key)
	}
	if strings.Contains(path, "$(") {
		return nil, fmt.Errorf("%s: unresolved reference in %q", key, path)
	}
	theLog.Debug("property list", "target", target, "file", path)
	return infoplist.Read(path)
}

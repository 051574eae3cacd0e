package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/pbxproj/encode"
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/project"
	"github.com/signadot/pbxproj/settings"
)

func setting(cfg *SettingConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Setting.Parse(cc, args)
	if err != nil {
		return err
	}
	synopsis := "setting [-resolve] [-d] file target key [value]"
	if err := nArgs(args, 3, 4, synopsis); err != nil {
		return err
	}
	p, err := cfg.open(args[0])
	if err != nil {
		return err
	}
	id := p.RootID()
	if args[1] != "-" {
		if id, err = cfg.target(p, args[1]); err != nil {
			return err
		}
	}
	key := args[2]
	switch {
	case cfg.Delete:
		if len(args) != 3 {
			return fmt.Errorf("%w: usage: pbx %s", cli.ErrUsage, synopsis)
		}
		if err := p.RemoveBuildSetting(id, key); err != nil {
			return err
		}
		return cfg.save(p)
	case len(args) == 4:
		if err := p.SetBuildSetting(id, key, project.SettingValue(args[3])); err != nil {
			return err
		}
		return cfg.save(p)
	case cfg.Resolve:
		v, unresolved, err := resolveSetting(p, id, key)
		if err != nil {
			return err
		}
		if len(unresolved) != 0 {
			theLog.Warn("unresolved references", "setting", key, "refs", unresolved)
		}
		fmt.Fprintln(cc.Out, v)
		return nil
	}
	v, ok := p.BuildSetting(id, key)
	if !ok {
		return fmt.Errorf("%w: setting %s", project.ErrNotFound, key)
	}
	switch v.Type {
	case ir.ArrayType, ir.ObjectType, ir.DataType:
		fmt.Fprintln(cc.Out, encode.MustString(v, encode.Fragment()))
	default:
		fmt.Fprintln(cc.Out, v.Scalar())
	}
	return nil
}

// resolveSetting resolves key for id and lists the references which
// stayed literal in the result.
func resolveSetting(p *project.Project, id, key string) (string, []string, error) {
	v, ok := p.ResolveTargetBuildSetting(id, key)
	if !ok {
		return "", nil, fmt.Errorf("%w: setting %s", project.ErrNotFound, key)
	}
	return v, settings.Refs(v), nil
}

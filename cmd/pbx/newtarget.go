package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/pbxproj/project"
)

var productTypes = map[string]string{
	"app":          project.ProductTypeApplication,
	"app-clip":     project.ProductTypeAppClip,
	"watch-app":    project.ProductTypeWatchApp2,
	"appex":        project.ProductTypeAppExtension,
	"extensionkit": project.ProductTypeExtensionKit,
	"framework":    project.ProductTypeFramework,
	"static":       project.ProductTypeStaticLibrary,
	"dynamic":      project.ProductTypeDynamicLibrary,
	"tool":         project.ProductTypeTool,
	"bundle":       project.ProductTypeBundle,
	"unit-test":    project.ProductTypeUnitTestBundle,
	"ui-test":      project.ProductTypeUITestBundle,
}

func newTarget(cfg *NewTargetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.NewTarget.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := nArgs(args, 3, 3, "new-target [-embed app] file name productType"); err != nil {
		return err
	}
	p, err := cfg.open(args[0])
	if err != nil {
		return err
	}
	pt := args[2]
	if full, ok := productTypes[pt]; ok {
		pt = full
	}
	var app string
	if cfg.Embed != "" {
		if app, err = cfg.target(p, cfg.Embed); err != nil {
			return err
		}
	}
	id, err := p.CreateNativeTarget(project.NativeTargetOptions{Name: args[1], ProductType: pt})
	if err != nil {
		return err
	}
	if app != "" {
		if _, err := p.EmbedExtension(app, id); err != nil {
			return err
		}
	}
	fmt.Fprintln(cc.Out, id)
	return cfg.save(p)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"
	"github.com/signadot/pbxproj/project"
)

func initProject(cfg *InitConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Init.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := nArgs(args, 1, 1, "init name"); err != nil {
		return err
	}
	name := args[0]
	dir := name + ".xcodeproj"
	path := filepath.Join(dir, "project.pbxproj")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, os.ErrExist)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	p := project.New(filepath.Base(name))
	if err := p.SaveAs(path, cfg.saveOpts()...); err != nil {
		return err
	}
	theLog.Info("created", "file", path)
	return nil
}

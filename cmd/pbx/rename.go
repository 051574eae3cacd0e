package main

import (
	"github.com/scott-cotton/cli"
)

func rename(cfg *RenameConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rename.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := nArgs(args, 3, 3, "rename file target newName"); err != nil {
		return err
	}
	p, err := cfg.open(args[0])
	if err != nil {
		return err
	}
	id, err := cfg.target(p, args[1])
	if err != nil {
		return err
	}
	if err := p.RenameTarget(id, args[2]); err != nil {
		return err
	}
	return cfg.save(p)
}

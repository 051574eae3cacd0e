package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := nArgs(args, 2, 2, "patch [-n] file patch.json"); err != nil {
		return err
	}
	p, err := cfg.open(args[0])
	if err != nil {
		return err
	}
	var d []byte
	if args[1] == "-" {
		d, err = io.ReadAll(cc.In)
	} else {
		d, err = os.ReadFile(args[1])
	}
	if err != nil {
		return fmt.Errorf("could not read patch: %w", err)
	}
	if err := p.ApplyJSONPatch(d); err != nil {
		return err
	}
	if cfg.DryRun {
		out, err := p.Bytes(cfg.encOpts(cc.Out)...)
		if err != nil {
			return err
		}
		_, err = cc.Out.Write(out)
		return err
	}
	return cfg.save(p)
}

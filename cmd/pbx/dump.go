package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/pbxproj/encode"
	"github.com/signadot/pbxproj/format"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := nArgs(args, 1, 1, "dump file"); err != nil {
		return err
	}
	p, err := cfg.open(args[0])
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	if cfg.OutFormat == nil {
		opts = append(opts, encode.EncodeFormat(format.JSONFormat))
	}
	d, err := p.Bytes(opts...)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", args[0], err)
	}
	_, err = cc.Out.Write(d)
	return err
}

package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func mintIDs(cfg *IDConfig, cc *cli.Context, args []string) error {
	args, err := cfg.ID.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := nArgs(args, 2, -1, "id file seed..."); err != nil {
		return err
	}
	p, err := cfg.open(args[0])
	if err != nil {
		return err
	}
	for _, seed := range args[1:] {
		fmt.Fprintf(cc.Out, "%s %s\n", p.MintID(seed), seed)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := nArgs(args, 2, 2, "query file expr"); err != nil {
		return err
	}
	p, err := cfg.open(args[0])
	if err != nil {
		return err
	}
	ids, err := p.Query(args[1])
	if err != nil {
		return err
	}
	for _, id := range ids {
		r := p.Get(id)
		fmt.Fprintf(cc.Out, "%s %s %s\n", id, r.ISA(), r.DisplayName())
	}
	return nil
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/scott-cotton/cli"
)

func targets(cfg *TargetsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Targets.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := nArgs(args, 1, 1, "targets file"); err != nil {
		return err
	}
	p, err := cfg.open(args[0])
	if err != nil {
		return err
	}
	main, _ := cfg.target(p, "")
	tw := tabwriter.NewWriter(cc.Out, 0, 8, 2, ' ', 0)
	for _, id := range p.TargetIDs() {
		t := p.Get(id)
		if t == nil {
			continue
		}
		mark := " "
		if id == main {
			mark = "*"
		}
		product, _ := p.FullPath(t.Str("productReference"))
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n", mark, id, t.Str("name"), t.ISA(), product)
	}
	return tw.Flush()
}

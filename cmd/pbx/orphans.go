package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func orphans(cfg *OrphansConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Orphans.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := nArgs(args, 1, -1, "orphans files..."); err != nil {
		return err
	}
	warn := fmt.Sprintf
	if cfg.useColor(cc.Out) {
		warn = color.YellowString
	}
	total := 0
	for _, arg := range args {
		p, err := cfg.open(arg)
		if err != nil {
			return err
		}
		found := p.FindOrphanedReferences()
		for _, o := range found {
			fmt.Fprintf(cc.Out, "%s: %s\n", p.FilePath(), warn("%s", o))
		}
		total += len(found)
	}
	if total != 0 {
		theLog.Warn("orphaned references", "count", total)
		return cli.ExitCodeErr(1)
	}
	return nil
}

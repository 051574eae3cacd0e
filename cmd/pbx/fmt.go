package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/pbxproj"
	"github.com/signadot/pbxproj/libdiff"
	"github.com/signadot/pbxproj/project"
)

func fmtFiles(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && cfg.Check {
		return fmt.Errorf("%w: -w and -check exclude each other", cli.ErrUsage)
	}
	if len(args) == 0 {
		if cfg.Write {
			return fmt.Errorf("%w: -w needs files", cli.ErrUsage)
		}
		in, err := io.ReadAll(cc.In)
		if err != nil {
			return fmt.Errorf("error reading: %w", err)
		}
		err = fmtOne(cfg, cc, "<stdin>", in)
		if errors.Is(err, errNotCanonical) {
			return cli.ExitCodeErr(1)
		}
		return err
	}
	changed := 0
	for _, arg := range args {
		file := projectFile(arg)
		in, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		err = fmtOne(cfg, cc, file, in)
		if errors.Is(err, errNotCanonical) {
			changed++
			continue
		}
		if err != nil {
			return err
		}
	}
	if changed != 0 {
		theLog.Warn("not in canonical form", "files", changed)
		return cli.ExitCodeErr(1)
	}
	return nil
}

var errNotCanonical = errors.New("not in canonical form")

func fmtOne(cfg *FmtConfig, cc *cli.Context, name string, in []byte) error {
	in = bytes.ReplaceAll(in, []byte("\r\n"), []byte("\n"))
	opts := cfg.encOpts(cc.Out)
	if cfg.Write || cfg.Check {
		opts = cfg.saveOpts()
	}
	node, err := pbxproj.Parse(in, cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	out, err := pbxproj.Build(node, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	switch {
	case cfg.Check:
		lines := libdiff.Lines(string(in), string(out))
		if !libdiff.Changed(lines) {
			return nil
		}
		fmt.Fprintf(cc.Out, "%s\n%s", name, libdiff.Format(lines, 3, cfg.useColor(cc.Out)))
		return errNotCanonical
	case cfg.Write:
		if bytes.Equal(in, out) {
			return nil
		}
		if err := project.WriteFile(name, out); err != nil {
			return err
		}
		theLog.Info("formatted", "file", name)
		return nil
	}
	_, err = cc.Out.Write(out)
	return err
}

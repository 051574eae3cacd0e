package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: pbxproj/p, json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "pbx").
		WithSynopsis("pbx [opts] command [opts]").
		WithDescription("pbx reads, rewrites and edits Xcode project files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return pbxMain(cfg, cc, args)
		}).
		WithSubs(
			FmtCommand(cfg),
			DumpCommand(cfg),
			OrphansCommand(cfg),
			TargetsCommand(cfg),
			SettingCommand(cfg),
			RenameCommand(cfg),
			QueryCommand(cfg),
			PatchCommand(cfg),
			IDCommand(cfg),
			AddFileCommand(cfg),
			NewTargetCommand(cfg),
			InitCommand(cfg),
			PlistCommand(cfg))
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis("fmt [-w] [-check] [files]").
		WithDescription("rewrite project files the way Xcode writes them").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fmtFiles(cfg, cc, args)
		})
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump file").
		WithDescription("print a project in the output format, json by default").
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func OrphansCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &OrphansConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Orphans, "orphans").
		WithSynopsis("orphans [files]").
		WithDescription("list references to records which do not exist").
		WithRun(func(cc *cli.Context, args []string) error {
			return orphans(cfg, cc, args)
		})
}

func TargetsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TargetsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Targets, "targets").
		WithAliases("t").
		WithSynopsis("targets file").
		WithDescription("list the targets of a project").
		WithRun(func(cc *cli.Context, args []string) error {
			return targets(cfg, cc, args)
		})
}

func SettingCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SettingConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Setting, "setting").
		WithAliases("s").
		WithSynopsis("setting [-resolve] [-d] file target key [value]").
		WithDescription("show, set or remove a build setting of a target; target - is the project").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return setting(cfg, cc, args)
		})
}

func RenameCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RenameConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Rename, "rename").
		WithSynopsis("rename file target newName").
		WithDescription("rename a target and what is named after it").
		WithRun(func(cc *cli.Context, args []string) error {
			return rename(cfg, cc, args)
		})
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Query, "query").
		WithAliases("q").
		WithSynopsis("query file expr").
		WithDescription("list records for which a boolean expression holds").
		WithRun(func(cc *cli.Context, args []string) error {
			return query(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [-n] file patch.json").
		WithDescription("apply a JSON patch to the JSON form of a project").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func IDCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &IDConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.ID, "id").
		WithSynopsis("id file seed...").
		WithDescription("print the identifiers the project would mint for seeds").
		WithRun(func(cc *cli.Context, args []string) error {
			return mintIDs(cfg, cc, args)
		})
}

func AddFileCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AddFileConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.AddFile, "add-file").
		WithAliases("a").
		WithSynopsis("add-file [-target T] file group path...").
		WithDescription("add file references to a group; group - is the main group").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return addFiles(cfg, cc, args)
		})
}

func NewTargetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NewTargetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.NewTarget, "new-target").
		WithSynopsis("new-target [-embed app] file name productType").
		WithDescription("create a native target with its configurations and phases").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return newTarget(cfg, cc, args)
		})
}

func InitCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InitConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Init, "init").
		WithSynopsis("init name").
		WithDescription("create name.xcodeproj with an empty project").
		WithRun(func(cc *cli.Context, args []string) error {
			return initProject(cfg, cc, args)
		})
}

func PlistCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PlistConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Plist, "plist").
		WithSynopsis("plist [-target T] [-key K] [-resolve] file").
		WithDescription("print a property list, or the Info.plist of a project target").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return plistCmd(cfg, cc, args)
		})
}

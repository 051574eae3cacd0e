package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/pbxproj/encode"
	"github.com/signadot/pbxproj/format"
	"github.com/signadot/pbxproj/parse"
	"github.com/signadot/pbxproj/project"
)

const defaultConfigFile = ".pbx.yaml"

type MainConfig struct {
	Lenient  bool   `cli:"name=lenient desc='pass invalid escapes through'"`
	Sort     bool   `cli:"name=sort desc='order records of a section by identifier'"`
	Color    bool   `cli:"name=color desc='encode with color'"`
	Platform string `cli:"name=platform desc='platform of the main application target: ios, macos, tvos, watchos, visionos'"`
	Config   string `cli:"name=config desc='configuration file (default .pbx.yaml)'"`

	OutFormat     *format.Format
	colorFromFile bool

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// FileConfig is the configuration file.  Options given on the command
// line take precedence.
type FileConfig struct {
	Lenient     bool   `yaml:"lenient"`
	SortObjects bool   `yaml:"sortObjects"`
	Color       *bool  `yaml:"color"`
	Format      string `yaml:"format"`
	Platform    string `yaml:"platform"`
}

func readFileConfig(path string) (*FileConfig, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc := &FileConfig{}
	if err := yaml.Unmarshal(d, fc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fc, nil
}

// applyFile merges the configuration file into cfg.  A missing default
// file is not an error.
func (cfg *MainConfig) applyFile() error {
	path := cfg.Config
	if path == "" {
		path = defaultConfigFile
	}
	fc, err := readFileConfig(path)
	if err != nil {
		if cfg.Config == "" && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if !cfg.optSet("lenient") {
		cfg.Lenient = fc.Lenient
	}
	if !cfg.optSet("sort") {
		cfg.Sort = fc.SortObjects
	}
	if !cfg.optSet("color") && fc.Color != nil {
		cfg.Color = *fc.Color
		cfg.colorFromFile = true
	}
	if !cfg.optSet("platform") && fc.Platform != "" {
		cfg.Platform = fc.Platform
	}
	if cfg.OutFormat == nil && fc.Format != "" {
		f, err := format.ParseFormat(fc.Format)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cfg.OutFormat = &f
	}
	theLog.Debug("config", "file", path, "lenient", cfg.Lenient, "sort", cfg.Sort)
	return nil
}

// optSet reports whether the main option name was given.
func (cfg *MainConfig) optSet(name string) bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.ParseStrict(!cfg.Lenient)}
}

// saveOpts are the options for writing project files: never colored,
// always pbxproj.
func (cfg *MainConfig) saveOpts() []encode.EncodeOption {
	return []encode.EncodeOption{encode.SortObjects(cfg.Sort)}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var f format.Format
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(f),
		encode.SortObjects(cfg.Sort),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color || cfg.optSet("color") || cfg.colorFromFile {
		return cfg.Color
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// projectFile accepts a project file or the .xcodeproj bundle holding it.
func projectFile(arg string) string {
	if fi, err := os.Stat(arg); err == nil && fi.IsDir() {
		return filepath.Join(arg, "project.pbxproj")
	}
	return arg
}

func (cfg *MainConfig) open(arg string) (*project.Project, error) {
	p, err := project.Open(projectFile(arg), cfg.parseOpts()...)
	if err != nil {
		return nil, err
	}
	theLog.Debug("opened", "file", p.FilePath(), "records", p.Len())
	return p, nil
}

func (cfg *MainConfig) save(p *project.Project) error {
	if err := p.Save(cfg.saveOpts()...); err != nil {
		return err
	}
	theLog.Info("saved", "file", p.FilePath())
	return nil
}

// target finds a target by identifier or name.  An empty name means the
// main application target of the configured platform.
func (cfg *MainConfig) target(p *project.Project, name string) (string, error) {
	if name == "" {
		platform := cfg.Platform
		if platform == "" {
			platform = "ios"
		}
		if id, ok := p.FindMainAppTarget(platform); ok {
			return id, nil
		}
		return "", fmt.Errorf("%w: no %s application target", project.ErrNotFound, platform)
	}
	if r := p.Get(name); r != nil && r.Kind.IsTarget() {
		return name, nil
	}
	if id, ok := p.FindTargetByName(name); ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: target %q", project.ErrNotFound, name)
}

type FmtConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result to the file'"`
	Check bool `cli:"name=check desc='report files which are not in canonical form'"`
	Fmt   *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Dump *cli.Command
}

type OrphansConfig struct {
	*MainConfig
	Orphans *cli.Command
}

type TargetsConfig struct {
	*MainConfig
	Targets *cli.Command
}

type SettingConfig struct {
	*MainConfig
	Resolve bool `cli:"name=resolve desc='expand build setting references'"`
	Delete  bool `cli:"name=d desc='remove the setting'"`
	Setting *cli.Command
}

type RenameConfig struct {
	*MainConfig
	Rename *cli.Command
}

type QueryConfig struct {
	*MainConfig
	Query *cli.Command
}

type PatchConfig struct {
	*MainConfig
	DryRun bool `cli:"name=n desc='print the result instead of saving it'"`
	Patch  *cli.Command
}

type IDConfig struct {
	*MainConfig
	ID *cli.Command
}

type AddFileConfig struct {
	*MainConfig
	Target  string `cli:"name=target desc='also build the file in this target'"`
	AddFile *cli.Command
}

type NewTargetConfig struct {
	*MainConfig
	Embed     string `cli:"name=embed desc='embed the product in this application target'"`
	NewTarget *cli.Command
}

type InitConfig struct {
	*MainConfig
	Init *cli.Command
}

type PlistConfig struct {
	*MainConfig
	Target  string `cli:"name=target desc='target whose Info.plist to show'"`
	Key     string `cli:"name=key desc='build setting naming the property list (default INFOPLIST_FILE)'"`
	Resolve bool   `cli:"name=resolve desc='expand build setting references'"`
	Plist   *cli.Command
}

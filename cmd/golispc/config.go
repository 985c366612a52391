package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/sandrolain/golispc/pkg/compiler"
	"github.com/sandrolain/golispc/pkg/functions"
	"github.com/sandrolain/golispc/pkg/parser"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "",
		Category:    "MISCELLANEOUS COMMANDS",
		Description: `The dumpconfig command shows configuration values.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type compilerConfig struct {
	MaxDepth    int
	Caching     bool
	CacheSize   int `toml:",omitempty"`
	Concurrency bool
	MaxParallel int `toml:",omitempty"`
	Debug       bool
}

type calleesConfig struct {
	Strict bool
	Define []calleeConfig `toml:",omitempty"`
}

// calleeConfig is one [[Callees.Define]] entry. An entry without MaxArgs
// takes any number of arguments.
type calleeConfig struct {
	Name    string
	Target  string `toml:",omitempty"`
	MinArgs int
	MaxArgs *int `toml:",omitempty"`
}

func (c calleeConfig) def() functions.CalleeDef {
	def := functions.CalleeDef{
		Name:    c.Name,
		Target:  c.Target,
		MinArgs: c.MinArgs,
		MaxArgs: functions.Variadic,
	}
	if c.MaxArgs != nil {
		def.MaxArgs = *c.MaxArgs
	}
	return def
}

type golispcConfig struct {
	Compiler compilerConfig
	Callees  calleesConfig
}

func defaultConfig() golispcConfig {
	return golispcConfig{
		Compiler: compilerConfig{
			MaxDepth:    parser.DefaultMaxDepth,
			Concurrency: true,
		},
	}
}

func loadConfig(file string, cfg *golispcConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads defaults, then the config file, then command line flags.
func makeConfig(ctx *cli.Context) (golispcConfig, error) {
	cfg := defaultConfig()

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if ctx.GlobalIsSet(maxDepthFlag.Name) {
		cfg.Compiler.MaxDepth = ctx.GlobalInt(maxDepthFlag.Name)
	}
	if ctx.GlobalBool(debugFlag.Name) {
		cfg.Compiler.Debug = true
	}
	if ctx.GlobalBool(strictFlag.Name) {
		cfg.Callees.Strict = true
	}
	return cfg, nil
}

// registry returns the callee registry described by cfg, or nil when no
// callee is configured and strict mode is off.
func (cfg golispcConfig) registry() *functions.Registry {
	if len(cfg.Callees.Define) == 0 && !cfg.Callees.Strict {
		return nil
	}
	defs := make([]functions.CalleeDef, len(cfg.Callees.Define))
	for i, c := range cfg.Callees.Define {
		defs[i] = c.def()
	}
	reg := functions.NewRegistry(defs...)
	reg.SetStrict(cfg.Callees.Strict)
	return reg
}

func makeCompiler(ctx *cli.Context) (*compiler.Compiler, golispcConfig, error) {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return nil, cfg, err
	}

	opts := []compiler.Option{
		compiler.WithLogger(newLogger(ctx)),
		compiler.WithDebug(cfg.Compiler.Debug),
		compiler.WithMaxDepth(cfg.Compiler.MaxDepth),
		compiler.WithCaching(cfg.Compiler.Caching),
		compiler.WithCacheSize(cfg.Compiler.CacheSize),
		compiler.WithConcurrency(cfg.Compiler.Concurrency),
		compiler.WithMaxParallel(cfg.Compiler.MaxParallel),
	}
	if reg := cfg.registry(); reg != nil {
		opts = append(opts, compiler.WithCallees(reg))
	}
	return compiler.New(opts...), cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/sandrolain/golispc"
	"github.com/sandrolain/golispc/pkg/compiler"
	"github.com/sandrolain/golispc/pkg/parser"
	"github.com/sandrolain/golispc/pkg/transformer"
)

var (
	outputFlag = cli.StringFlag{
		Name:  "output, o",
		Usage: "Write the generated code to `FILE` instead of stdout",
	}
	targetFlag = cli.BoolFlag{
		Name:  "target",
		Usage: "Dump the transformed (C-shaped) tree instead of the source tree",
	}

	compileCommand = cli.Command{
		Action:    compileAction,
		Name:      "compile",
		Usage:     "Compile programs to C-style calls",
		ArgsUsage: "[<file> ...]",
		Flags:     []cli.Flag{outputFlag},
		Description: `
Compiles each file and writes the generated code in argument order.
With no file, or with "-", the program is read from stdin.`,
	}
	tokensCommand = cli.Command{
		Action:    tokensAction,
		Name:      "tokens",
		Usage:     "Print the token stream of a program",
		ArgsUsage: "[<file>]",
	}
	astCommand = cli.Command{
		Action:    astAction,
		Name:      "ast",
		Usage:     "Dump the tree of a program",
		ArgsUsage: "[<file>]",
		Flags:     []cli.Flag{targetFlag},
	}
	versionCommand = cli.Command{
		Action:    printVersion,
		Name:      "version",
		Usage:     "Print version numbers",
		ArgsUsage: " ",
		Category:  "MISCELLANEOUS COMMANDS",
	}
)

// source is one program read from a file or stdin.
type source struct {
	name string
	text string
}

func readSource(name string) (source, error) {
	if name == "" || name == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return source{}, fmt.Errorf("read stdin: %w", err)
		}
		return source{name: "<stdin>", text: string(b)}, nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return source{}, err
	}
	return source{name: name, text: string(b)}, nil
}

func readSources(ctx *cli.Context) ([]source, error) {
	if ctx.NArg() == 0 {
		src, err := readSource("")
		if err != nil {
			return nil, err
		}
		return []source{src}, nil
	}
	srcs := make([]source, 0, ctx.NArg())
	for _, name := range ctx.Args() {
		src, err := readSource(name)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, src)
	}
	return srcs, nil
}

func compileAction(ctx *cli.Context) error {
	c, _, err := makeCompiler(ctx)
	if err != nil {
		return err
	}
	srcs, err := readSources(ctx)
	if err != nil {
		return err
	}

	texts := make([]string, len(srcs))
	for i, src := range srcs {
		texts[i] = src.text
	}
	outs, err := c.CompileMany(context.Background(), texts)
	if err != nil {
		var serr *compiler.SourceError
		if errors.As(err, &serr) {
			return fmt.Errorf("%s: %w", srcs[serr.Index].name, serr.Err)
		}
		return err
	}

	w := ctx.App.Writer
	if name := ctx.String("output"); name != "" {
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	for _, out := range outs {
		if out == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	return nil
}

func tokensAction(ctx *cli.Context) error {
	src, err := readSource(ctx.Args().First())
	if err != nil {
		return err
	}
	tokens, err := parser.Tokenize(src.text)
	if err != nil {
		return fmt.Errorf("%s: %w", src.name, err)
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"#", "Type", "Value", "Position"})
	table.SetAutoFormatHeaders(false)
	for i, tok := range tokens {
		table.Append([]string{
			strconv.Itoa(i),
			tok.Type.String(),
			strconv.Quote(tok.Value),
			strconv.Itoa(tok.Position),
		})
	}
	table.Render()
	return nil
}

// dumper prints trees without pointer addresses so dumps are stable.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

func astAction(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	src, err := readSource(ctx.Args().First())
	if err != nil {
		return err
	}
	unit, err := parser.ParseString(src.text, parser.WithMaxDepth(cfg.Compiler.MaxDepth))
	if err != nil {
		return fmt.Errorf("%s: %w", src.name, err)
	}

	if !ctx.Bool(targetFlag.Name) {
		dumper.Fdump(ctx.App.Writer, unit.AST())
		return nil
	}

	var topts []transformer.Option
	if reg := cfg.registry(); reg != nil {
		topts = append(topts, transformer.WithCallees(reg))
	}
	target, err := transformer.TransformUnit(unit, topts...)
	if err != nil {
		return fmt.Errorf("%s: %w", src.name, err)
	}
	dumper.Fdump(ctx.App.Writer, target)
	return nil
}

func printVersion(ctx *cli.Context) error {
	fmt.Fprintln(ctx.App.Writer, "golispc", golispc.Version())
	return nil
}

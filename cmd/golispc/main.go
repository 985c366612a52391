// Command golispc compiles Lisp-style call programs into C-style call
// statements.
//
//	golispc compile prog.lisp          # write C-style code to stdout
//	echo '(add 1 2)' | golispc         # read the program from stdin
//	golispc tokens prog.lisp           # show the token stream
//	golispc ast --target prog.lisp     # dump the target tree
//	golispc repl                       # interactive session
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/sandrolain/golispc"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug",
		Value: 3,
	}
	debugFlag = cli.BoolFlag{
		Name:  "debug",
		Usage: "Log every compiler stage (implies --verbosity 4)",
	}
	maxDepthFlag = cli.IntFlag{
		Name:  "maxdepth",
		Usage: "Maximum call nesting depth (0 disables the limit)",
	}
	strictFlag = cli.BoolFlag{
		Name:  "strict",
		Usage: "Reject callees missing from the configured registry",
	}

	globalFlags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		debugFlag,
		maxDepthFlag,
		strictFlag,
	}
)

// stdin is the program source when no file is given.
var stdin io.Reader = os.Stdin

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "golispc"
	app.Usage = "compile Lisp-style calls into C-style calls"
	app.Version = golispc.Version()
	app.Flags = globalFlags
	app.Commands = []cli.Command{
		compileCommand,
		tokensCommand,
		astCommand,
		replCommand,
		dumpConfigCommand,
		versionCommand,
	}
	app.Action = compileAction
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	return app
}

// newLogger builds the process logger from the verbosity flags.
func newLogger(ctx *cli.Context) *slog.Logger {
	verbosity := ctx.GlobalInt(verbosityFlag.Name)
	if ctx.GlobalBool(debugFlag.Name) {
		verbosity = 4
	}
	if verbosity <= 0 {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	level := slog.LevelDebug
	switch verbosity {
	case 1:
		level = slog.LevelError
	case 2:
		level = slog.LevelWarn
	case 3:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}

func main() {
	color.NoColor = !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd())

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(colorable.NewColorableStderr(), color.RedString("%v", err))
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/sandrolain/golispc"
	"github.com/sandrolain/golispc/pkg/compiler"
	"github.com/sandrolain/golispc/pkg/types"
)

const (
	historyFile = ".golispc_history"
	promptMain  = "> "
	promptCont  = "... "
)

var replCommand = cli.Command{
	Action: repl,
	Name:   "repl",
	Usage:  "Start an interactive compile session",
	Description: `
Each entered program is compiled and the generated code is printed.
Input continues on the next line while a call or string is still open.
Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.`,
}

// incomplete reports whether err only means the program is not finished yet.
func incomplete(err error) bool {
	var cerr *types.Error
	if !errors.As(err, &cerr) {
		return false
	}
	return cerr.Code == types.ErrUnexpectedEnd || cerr.Code == types.ErrStringNotClosed
}

// evalLine compiles src. more is true when src needs another line.
func evalLine(c *compiler.Compiler, src string) (out string, more bool, err error) {
	out, err = c.Compile(context.Background(), src)
	if err != nil && incomplete(err) {
		return "", true, nil
	}
	return out, false, err
}

func repl(ctx *cli.Context) error {
	c, _, err := makeCompiler(ctx)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "golispc %s\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", golispc.Version())

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	var buf strings.Builder
	for {
		prompt := promptMain
		if buf.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(w)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			buf.Reset()
			continue
		case err != nil:
			return err
		}

		if buf.Len() == 0 {
			switch strings.TrimSpace(line) {
			case "":
				continue
			case ":quit", ":q":
				return nil
			}
		} else {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		src := buf.String()
		out, more, err := evalLine(c, src)
		if more {
			continue
		}
		buf.Reset()
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if err != nil {
			fmt.Fprintln(ctx.App.ErrWriter, color.RedString("%v", err))
			continue
		}
		if out != "" {
			fmt.Fprintln(w, color.GreenString("%s", out))
		}
	}
}

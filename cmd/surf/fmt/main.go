package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-surfdoc/cmd/surf/internal/bootstrap"
	surfcmd "github.com/goliatone/go-surfdoc/internal/commands/surf"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	err := runFmt(os.Args[1:])
	if err == nil {
		return
	}
	if errors.Is(err, surfcmd.ErrNotFormatted) {
		os.Exit(1)
	}
	log.Fatalf("surf fmt: %v", err)
}

func runFmt(args []string) error {
	fs := flag.NewFlagSet("surf-fmt", flag.ExitOnError)
	check := fs.Bool("check", false, "Report non-canonical files without rewriting them")
	logLevel := fs.String("log-level", "", "Enable console logging at this level (silent when empty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	path := strings.TrimSpace(fs.Arg(0))
	if path == "" {
		return fmt.Errorf("file is required: surf-fmt [flags] <file>")
	}

	module, err := moduleBuilder(bootstrap.Options{
		LogLevel: *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	handler := surfcmd.NewFmtHandler(os.Stdout, module.Logger)
	cmd := surfcmd.FmtCommand{
		Path:  path,
		Check: *check,
	}
	return handler.Execute(context.Background(), cmd)
}

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
	err := runLint(os.Args[1:])
	if err == nil {
		return
	}
	if errors.Is(err, surfcmd.ErrLintFindings) {
		os.Exit(1)
	}
	log.Fatalf("surf lint: %v", err)
}

func runLint(args []string) error {
	fs := flag.NewFlagSet("surf-lint", flag.ExitOnError)
	logLevel := fs.String("log-level", "", "Enable console logging at this level (silent when empty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	path := strings.TrimSpace(fs.Arg(0))
	if path == "" {
		return fmt.Errorf("path is required: surf-lint [flags] <path>")
	}

	module, err := moduleBuilder(bootstrap.Options{
		LogLevel: *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	handler := surfcmd.NewLintHandler(os.Stdout, module.Logger)
	cmd := surfcmd.LintCommand{
		Path: path,
	}
	return handler.Execute(context.Background(), cmd)
}

package main

import (
	"context"
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
	if err := runExport(os.Args[1:]); err != nil {
		log.Fatalf("surf export: %v", err)
	}
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("surf-export", flag.ExitOnError)
	baseDir := fs.String("base-dir", ".", "Path to the SurfDoc content root")
	patterns := fs.String("patterns", "", "Comma separated glob patterns applied when discovering documents")
	recursive := fs.Bool("recursive", true, "Recurse into sub directories while discovering documents")
	outDir := fs.String("out", "", "Destination directory for the rendered markdown tree")
	logLevel := fs.String("log-level", "", "Enable console logging at this level (silent when empty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	dir := strings.TrimSpace(fs.Arg(0))
	if dir == "" {
		dir = "."
	}
	if strings.TrimSpace(*outDir) == "" {
		return fmt.Errorf("out is required: surf-export -out <dir> [flags] [directory]")
	}

	module, err := moduleBuilder(bootstrap.Options{
		BaseDir:   *baseDir,
		Patterns:  bootstrap.SplitPatterns(*patterns),
		Recursive: *recursive,
		LogLevel:  *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Loader == nil {
		return fmt.Errorf("document loader not configured")
	}

	handler := surfcmd.NewExportHandler(module.Loader, nil, module.Logger)
	cmd := surfcmd.ExportCommand{
		Directory: dir,
		OutDir:    *outDir,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute export command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "surf export command executed successfully")

	return nil
}

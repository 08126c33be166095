package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/3-lines-studio/jsx2mp/internal/adapters/cli"
	"github.com/3-lines-studio/jsx2mp/internal/adapters/env"
	"github.com/3-lines-studio/jsx2mp/internal/adapters/fs"
	"github.com/3-lines-studio/jsx2mp/internal/templates"
	"github.com/3-lines-studio/jsx2mp/internal/usecase"
)

func findConfigRoot(startDir string) string {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, env.ConfigFile)); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return startDir
}

func main() {
	platform := flag.String("platform", "", "target platform (overrides jsx2mp.yaml)")
	strict := flag.Bool("strict", false, "fail when a component package has no entry for the platform")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = printUsage
	flag.Parse()

	output := cli.NewOutput()
	output.PrintHeader("jsx2mp build")

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	startDir := "."
	if flag.NArg() > 0 {
		startDir = flag.Arg(0)
	}
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		output.PrintError("Failed to resolve project directory: %v", err)
		os.Exit(1)
	}
	projectDir := findConfigRoot(absDir)

	fsys := fs.NewOSFileSystem()
	cfg, err := env.Load(fsys, projectDir)
	if err != nil {
		output.PrintError("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	if *platform != "" {
		cfg.Platform = *platform
	}
	if *strict {
		cfg.StrictPlatformEntries = true
	}
	if !templates.ValidPlatform(cfg.Platform) {
		output.PrintError("Unknown platform %q (expected one of %v)", cfg.Platform, templates.Platforms())
		os.Exit(1)
	}

	service, err := usecase.NewCompileService(fsys, logger)
	if err != nil {
		output.PrintError("Failed to initialize compiler: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result := service.CompileProject(ctx, output, usecase.CompileInput{
		Options:     cfg.Options(),
		Concurrency: cfg.Concurrency,
	})
	if !result.Success {
		if result.Error != nil && len(result.Results) == 0 {
			output.PrintError("%v", result.Error)
		}
		os.Exit(1)
	}

	output.PrintDone("Build completed successfully")
}

func printUsage() {
	fmt.Println("Usage: jsx2mp-build [options] [project-dir]")
	fmt.Println()
	fmt.Println("Compiles every *.ast.json document under the configured source directory.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}

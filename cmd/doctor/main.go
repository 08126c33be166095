package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/3-lines-studio/jsx2mp/internal/adapters/cli"
	"github.com/3-lines-studio/jsx2mp/internal/initcmd"
)

func main() {
	projectDir := "."
	if len(os.Args) > 1 {
		projectDir = os.Args[1]
	}

	output := cli.NewOutput()

	absProjectDir, err := filepath.Abs(projectDir)
	if err != nil {
		output.PrintHeader("jsx2mp doctor")
		output.PrintError("Failed to resolve project directory: %v", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := initcmd.Doctor(context.Background(), output, logger, absProjectDir); err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
}

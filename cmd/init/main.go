package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/jsx2mp/internal/adapters/cli"
	"github.com/3-lines-studio/jsx2mp/internal/core"
	"github.com/3-lines-studio/jsx2mp/internal/initcmd"
	"github.com/3-lines-studio/jsx2mp/internal/templates"
)

func main() {
	platform := core.DefaultPlatform
	var projectDir string
	output := cli.NewOutput()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if os.Args[1] == "--help" || os.Args[1] == "-h" {
		printUsage()
		os.Exit(0)
	}

	argIdx := 1
	for argIdx < len(os.Args) {
		arg := os.Args[argIdx]

		if arg == "--platform" {
			if argIdx+1 >= len(os.Args) {
				output.PrintHeader("jsx2mp init")
				output.PrintError("--platform requires a value")
				os.Exit(1)
			}
			platform = os.Args[argIdx+1]
			argIdx += 2
			continue
		}

		if projectDir == "" && !isFlag(arg) {
			projectDir = arg
		}
		argIdx++
	}

	if projectDir == "" {
		printUsage()
		os.Exit(1)
	}

	absProjectDir, err := filepath.Abs(projectDir)
	if err != nil {
		output.PrintHeader("jsx2mp init")
		output.PrintError("Failed to resolve project directory: %v", err)
		os.Exit(1)
	}

	if err := initcmd.Run(output, absProjectDir, platform); err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
}

func isFlag(arg string) bool {
	return len(arg) > 0 && arg[0] == '-'
}

func printUsage() {
	fmt.Println("jsx2mp init")
	fmt.Println()
	fmt.Println("Usage: jsx2mp-init [options] <project-dir>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Printf("  --platform <name>  Target platform (%s). Default: %s\n", strings.Join(templates.Platforms(), ", "), core.DefaultPlatform)
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  jsx2mp-init myapp")
	fmt.Println("  jsx2mp-init --platform wechat myapp")
	fmt.Println()
	fmt.Println("To check an existing project, use: jsx2mp-doctor <dir>")
}

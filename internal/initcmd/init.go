package initcmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/3-lines-studio/jsx2mp/internal/adapters/env"
	osfs "github.com/3-lines-studio/jsx2mp/internal/adapters/fs"
	"github.com/3-lines-studio/jsx2mp/internal/templates"
	"github.com/3-lines-studio/jsx2mp/internal/usecase"
)

func Run(out usecase.CLIOutput, projectDir string, platform string) error {
	out.PrintHeader("jsx2mp init")

	if !templates.ValidPlatform(platform) {
		return fmt.Errorf("invalid platform '%s'", platform)
	}

	if _, err := os.Stat(projectDir); err == nil {
		entries, err := os.ReadDir(projectDir)
		if err != nil {
			return fmt.Errorf("failed to read directory: %w", err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("directory '%s' already exists and is not empty", projectDir)
		}
	}

	scaffold, err := templates.Scaffold()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	data := templates.TemplateData{
		Platform: platform,
	}

	createdCount := 0

	err = fs.WalkDir(scaffold, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			targetDir := filepath.Join(projectDir, path)
			if err := os.MkdirAll(targetDir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", targetDir, err)
			}
			return nil
		}

		content, err := fs.ReadFile(scaffold, path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		targetPath, isTemplate := templates.ProcessFilename(path, data)
		targetPath = filepath.Join(projectDir, targetPath)

		processedContent := templates.ProcessContent(content, isTemplate, data)

		if err := os.WriteFile(targetPath, processedContent, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetPath, err)
		}

		if isTemplate {
			out.PrintFile(targetPath + " (generated)")
		} else {
			out.PrintFile(targetPath)
		}
		createdCount++

		return nil
	})

	if err != nil {
		return err
	}

	if err := ensureOutputDir(out, osfs.NewOSFileSystem(), projectDir); err != nil {
		return err
	}

	out.PrintDone(fmt.Sprintf("Created %d files for the '%s' platform", createdCount, platform))
	out.PrintStep("", "Next steps:")
	out.PrintStep("", "  cd %s", projectDir)
	out.PrintStep("", "  npm install rax rax-view rax-text")
	out.PrintStep("", "  parse src/**/*.jsx into *.ast.json, then run jsx2mp-build")

	return nil
}

// Doctor checks a project without writing any output. Every component package
// must carry an entry for the configured platform.
func Doctor(ctx context.Context, out usecase.CLIOutput, logger *slog.Logger, projectDir string) error {
	out.PrintHeader("jsx2mp doctor")

	fsys := osfs.NewOSFileSystem()
	cfg, err := env.Load(fsys, projectDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if !templates.ValidPlatform(cfg.Platform) {
		return fmt.Errorf("invalid platform '%s' in %s", cfg.Platform, env.ConfigFile)
	}
	if info, err := os.Stat(cfg.SourcePath); err != nil || !info.IsDir() {
		return fmt.Errorf("source directory %s does not exist", cfg.SourcePath)
	}
	if err := ensureOutputDir(out, fsys, projectDir); err != nil {
		return err
	}

	files, err := usecase.DiscoverFiles(fsys, cfg.SourcePath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		out.PrintWarning("No %s files found in %s", usecase.ASTSuffix, cfg.SourcePath)
		out.PrintDone("Nothing to check")
		return nil
	}

	service, err := usecase.NewCompileService(fsys, logger)
	if err != nil {
		return err
	}
	opts := cfg.Options()
	opts.StrictPlatformEntries = true
	result := service.CompileProject(ctx, out, usecase.CompileInput{
		Files:       files,
		Options:     opts,
		Concurrency: cfg.Concurrency,
		DryRun:      true,
	})
	if result.Error != nil {
		return fmt.Errorf("project has problems: %w", result.Error)
	}

	out.PrintDone("No problems found")
	return nil
}

func ensureOutputDir(out usecase.CLIOutput, fsys usecase.FileSystem, projectDir string) error {
	cfg, err := env.Load(fsys, projectDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := os.Stat(cfg.OutputPath); os.IsNotExist(err) {
		if err := os.MkdirAll(cfg.OutputPath, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		out.PrintSuccess("Created %s", cfg.OutputPath)
	}

	return nil
}

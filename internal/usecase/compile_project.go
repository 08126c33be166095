package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/jsx2mp/internal/adapters/cli"
	"github.com/3-lines-studio/jsx2mp/internal/core"
)

type CompileInput struct {
	// Files are AST documents; when empty they are discovered under
	// Options.SourcePath.
	Files       []string
	Options     core.Options
	Concurrency int
	// DryRun compiles without writing outputs.
	DryRun bool
}

type FileResult struct {
	File   string
	Output *core.Output
	Err    error
}

type CompileOutput struct {
	Success bool
	Results []FileResult
	Error   error
}

// DiscoverFiles lists the AST documents below dir in lexical order.
func DiscoverFiles(fsys FileSystem, dir string) ([]string, error) {
	var files []string
	var walk func(string) error
	walk = func(cur string) error {
		entries, err := fsys.ReadDir(cur)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			p := filepath.Join(cur, entry.Name())
			if entry.IsDir() {
				if entry.Name() == "node_modules" || strings.HasPrefix(entry.Name(), ".") {
					continue
				}
				if err := walk(p); err != nil {
					return err
				}
				continue
			}
			if entry.Type()&fs.ModeType == 0 && strings.HasSuffix(entry.Name(), ASTSuffix) {
				files = append(files, p)
			}
		}
		return nil
	}
	if err := walk(dir); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	slices.Sort(files)
	return files, nil
}

// CompileProject compiles every file independently. A failing file is
// reported and does not stop the others.
func (s *CompileService) CompileProject(ctx context.Context, reporter CLIOutput, input CompileInput) CompileOutput {
	files := input.Files
	if len(files) == 0 {
		var err error
		files, err = DiscoverFiles(s.fs, input.Options.SourcePath)
		if err != nil {
			return CompileOutput{Error: err}
		}
	}
	if len(files) == 0 {
		return CompileOutput{Error: fmt.Errorf("no %s files found in %s", ASTSuffix, input.Options.SourcePath)}
	}

	report := cli.NewBuildReport(reporter, input.Options.OutputPath)
	report.SetFileCount(len(files))
	if w, ok := reporter.(interface{ Writers() (io.Writer, io.Writer) }); ok {
		report.SetWriters(w.Writers())
	}

	limit := input.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	step := report.StartStep(fmt.Sprintf("Compiling templates for %s", input.Options.PlatformType()))
	results := make([]FileResult, len(files))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, file := range files {
		g.Go(func() error {
			results[i] = FileResult{File: file}
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			out, err := s.compileOne(ctx, file, input)
			results[i].Output = out
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		name := displayName(input.Options.SourcePath, r.File)
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, r.Err))
			report.AddError(name, "Compilation failed", []string{r.Err.Error()})
			continue
		}
		if len(r.Output.Warnings) > 0 {
			report.AddWarning(name, "Components omitted from usingComponents", r.Output.Warnings)
		}
	}
	report.EndStep(step, len(errs) == 0, "")
	report.Render()

	return CompileOutput{
		Success: !report.HasFailures(),
		Results: results,
		Error:   errors.Join(errs...),
	}
}

func (s *CompileService) compileOne(ctx context.Context, file string, input CompileInput) (*core.Output, error) {
	if !input.DryRun {
		return s.CompileFile(ctx, file, input.Options)
	}
	mod, err := s.ParseFile(file)
	if err != nil {
		return nil, err
	}
	opts := input.Options
	opts.ResourcePath = mod.ResourcePath
	return s.Compile(ctx, mod, opts)
}

func displayName(root, file string) string {
	if rel, err := filepath.Rel(root, file); err == nil && !strings.HasPrefix(rel, "..") {
		return strings.TrimSuffix(rel, ASTSuffix)
	}
	return strings.TrimSuffix(file, ASTSuffix)
}

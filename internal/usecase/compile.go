package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/3-lines-studio/jsx2mp/internal/adapters/codec"
	"github.com/3-lines-studio/jsx2mp/internal/ast"
	"github.com/3-lines-studio/jsx2mp/internal/core"
	"github.com/3-lines-studio/jsx2mp/internal/resolve"
	"github.com/3-lines-studio/jsx2mp/internal/template"
	"github.com/3-lines-studio/jsx2mp/internal/transform"
)

// ASTSuffix is appended by the host parser to the file it parsed.
const ASTSuffix = ".ast.json"

type CompileService struct {
	fs      FileSystem
	logger  *slog.Logger
	counter *core.TagCounter
	configs *resolve.Configs
	paths   *resolve.Paths
}

func NewCompileService(fs FileSystem, logger *slog.Logger) (*CompileService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	modules := resolve.NewModules(fs)
	configs, err := resolve.NewConfigs(fs, modules)
	if err != nil {
		return nil, fmt.Errorf("failed to create package config cache: %w", err)
	}
	return &CompileService{
		fs:      fs,
		logger:  logger,
		counter: core.NewTagCounter(),
		configs: configs,
		paths:   resolve.NewPaths(modules, configs),
	}, nil
}

// Counter is the tag id counter shared by every file this service compiles.
func (s *CompileService) Counter() *core.TagCounter {
	return s.counter
}

// Compile runs one parsed component through the pipeline. mod is mutated in
// place and referenced by the returned output.
func (s *CompileService) Compile(ctx context.Context, mod *ast.Module, opts core.Options) (*core.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.ResourcePath == "" {
		opts.ResourcePath = mod.ResourcePath
	}
	logger := s.logger.With("file", opts.ResourcePath)

	builder := template.NewBuilder()
	built, err := builder.Build(mod)
	if err != nil {
		return nil, err
	}

	res, err := transform.Components(mod, built.Template, opts, transform.Deps{
		Configs: s.configs,
		Counter: s.counter,
		Builder: builder,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	transform.PruneImports(mod, res.Consumed)

	using, warnings, err := s.resolvePaths(logger, res.Aliases, opts)
	if err != nil {
		return nil, err
	}
	if opts.PlatformType() == core.PlatformQuickApp {
		transform.InjectTemplateImports(built.Template, using)
	}

	dynamicValue := builder.Bind(built.Template, "")
	out := Emit(built.Template, mod, using, res, dynamicValue)
	out.Warnings = warnings
	return out, nil
}

func (s *CompileService) resolvePaths(logger *slog.Logger, aliases map[string]core.ComponentAlias, opts core.Options) (core.UsingComponents, []string, error) {
	tags := make([]string, 0, len(aliases))
	for tag := range aliases {
		tags = append(tags, tag)
	}
	slices.Sort(tags)

	using := core.UsingComponents{}
	var warnings []string
	for _, tag := range tags {
		alias := aliases[tag]
		ref, err := s.paths.ComponentPath(alias, opts)
		if errors.Is(err, core.ErrUnmappedPlatformEntry) && !opts.StrictPlatformEntries {
			logger.Warn("component omitted from usingComponents", "tag", tag, "package", alias.From, "error", err)
			warnings = append(warnings, err.Error())
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve component <%s>: %w", tag, err)
		}
		using[tag] = ref
	}
	return using, warnings, nil
}

// ParseFile decodes the AST document at astPath. The resource path defaults
// to astPath without its suffix.
func (s *CompileService) ParseFile(astPath string) (*ast.Module, error) {
	data, err := s.fs.ReadFile(astPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", astPath, err)
	}
	mod, err := codec.DecodeModule(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", astPath, err)
	}
	if mod.ResourcePath == "" {
		mod.ResourcePath = strings.TrimSuffix(astPath, ASTSuffix)
	}
	return mod, nil
}

// CompileFile compiles the AST document at astPath and writes its outputs.
func (s *CompileService) CompileFile(ctx context.Context, astPath string, opts core.Options) (*core.Output, error) {
	mod, err := s.ParseFile(astPath)
	if err != nil {
		return nil, err
	}
	opts.ResourcePath = mod.ResourcePath

	out, err := s.Compile(ctx, mod, opts)
	if err != nil {
		return nil, err
	}
	if err := WriteOutput(s.fs, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

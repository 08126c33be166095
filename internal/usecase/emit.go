package usecase

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/3-lines-studio/jsx2mp/internal/adapters/codec"
	"github.com/3-lines-studio/jsx2mp/internal/ast"
	"github.com/3-lines-studio/jsx2mp/internal/core"
	"github.com/3-lines-studio/jsx2mp/internal/transform"
)

// Emit assembles the compiled output record. Slot dynamic values collected by
// the resolver are merged with the ones bound on the template itself.
func Emit(tpl *ast.Element, mod *ast.Module, using core.UsingComponents, res *transform.Result, dynamicValue core.DynamicValues) *core.Output {
	out := &core.Output{
		Template:                tpl,
		Module:                  mod,
		UsingComponents:         maps.Clone(using),
		ContextList:             slices.Clone(res.ContextList),
		DynamicValue:            core.DynamicValues{},
		ComponentDependentProps: maps.Clone(res.DependentProps),
	}
	if out.UsingComponents == nil {
		out.UsingComponents = core.UsingComponents{}
	}
	out.DynamicValue.Merge(res.DynamicValue)
	out.DynamicValue.Merge(dynamicValue)
	return out
}

var sjsonKeyEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`)

// WriteOutput writes the template, component json and binding metadata of out
// next to each other under the output directory.
func WriteOutput(fs FileSystem, out *core.Output, opts core.Options) error {
	if opts.SourcePath == "" || opts.OutputPath == "" {
		return fmt.Errorf("%w: `sourcePath` and `outputPath` are required to write %s", core.ErrMissingConfig, opts.ResourcePath)
	}
	base, err := core.OutputBaseForPath(opts.SourcePath, opts.OutputPath, opts.ResourcePath)
	if err != nil {
		return fmt.Errorf("failed to compute output path for %s: %w", opts.ResourcePath, err)
	}
	if err := fs.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tplPath := base + core.TemplateExt(opts.PlatformType())
	if err := fs.WriteFile(tplPath, []byte(ast.Source(out.Template)), 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	config, err := ComponentConfig(fs, opts.ResourcePath, out.UsingComponents)
	if err != nil {
		return err
	}
	if err := fs.WriteFile(base+".json", config, 0644); err != nil {
		return fmt.Errorf("failed to write component config: %w", err)
	}

	meta, err := codec.EncodeMeta(out)
	if err != nil {
		return fmt.Errorf("failed to encode binding metadata: %w", err)
	}
	if err := fs.WriteFile(base+".meta.json", meta, 0644); err != nil {
		return fmt.Errorf("failed to write binding metadata: %w", err)
	}
	return nil
}

// ComponentConfig merges using into the json config that sits next to the
// source file, if there is one.
func ComponentConfig(fs FileSystem, resourcePath string, using core.UsingComponents) ([]byte, error) {
	configPath := strings.TrimSuffix(resourcePath, filepath.Ext(resourcePath)) + ".json"
	data := []byte("{}")
	if fs.IsFile(configPath) {
		existing, err := fs.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
		}
		data = existing
	}

	var err error
	for _, tag := range slices.Sorted(maps.Keys(using)) {
		data, err = sjson.SetBytes(data, "usingComponents."+sjsonKeyEscaper.Replace(tag), using[tag])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", configPath, err)
		}
	}
	return data, nil
}

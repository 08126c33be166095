package env

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/3-lines-studio/jsx2mp/internal/adapters/fs"
	"github.com/3-lines-studio/jsx2mp/internal/core"
)

const (
	ConfigFile = "jsx2mp.yaml"
	EnvFile    = ".env"

	DefaultSourceDir = "src"
	DefaultOutputDir = "dist"
)

type Config struct {
	SourcePath            string            `yaml:"sourcePath"`
	OutputPath            string            `yaml:"outputPath"`
	Platform              string            `yaml:"platform"`
	DisableCopyNpm        bool              `yaml:"disableCopyNpm"`
	StrictPlatformEntries bool              `yaml:"strictPlatformEntries"`
	VendorPrefixes        []string          `yaml:"vendorPrefixes"`
	BaseComponents        []string          `yaml:"baseComponents"`
	NativeComponents      map[string]string `yaml:"nativeComponents"`
	Concurrency           int               `yaml:"concurrency"`
}

// Load reads <projectDir>/jsx2mp.yaml when present, then applies JSX2MP_*
// environment overrides. A .env file in projectDir is loaded first and never
// overrides variables already set.
func Load(fsys fs.FileSystem, projectDir string) (*Config, error) {
	if err := loadDotEnv(fsys, filepath.Join(projectDir, EnvFile)); err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := fsys.ReadFile(filepath.Join(projectDir, ConfigFile))
	switch {
	case err == nil:
		if cfg, err = Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", ConfigFile, err)
		}
	case !errors.Is(err, iofs.ErrNotExist):
		return nil, err
	}

	applyEnv(cfg)
	cfg.resolve(projectDir)
	return cfg, nil
}

func loadDotEnv(fsys fs.FileSystem, path string) error {
	if !fsys.IsFile(path) {
		return nil
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return err
	}
	vars, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", EnvFile, err)
	}
	for key, value := range vars {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("JSX2MP_PLATFORM")); v != "" {
		cfg.Platform = v
	}
	if v := strings.TrimSpace(os.Getenv("JSX2MP_SOURCE")); v != "" {
		cfg.SourcePath = v
	}
	if v := strings.TrimSpace(os.Getenv("JSX2MP_OUTPUT")); v != "" {
		cfg.OutputPath = v
	}
	if v, ok := boolEnv("JSX2MP_DISABLE_COPY_NPM"); ok {
		cfg.DisableCopyNpm = v
	}
	if v, ok := boolEnv("JSX2MP_STRICT"); ok {
		cfg.StrictPlatformEntries = v
	}
	if v := strings.TrimSpace(os.Getenv("JSX2MP_CONCURRENCY")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Concurrency = n
		}
	}
}

func boolEnv(key string) (bool, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func (c *Config) resolve(projectDir string) {
	if c.SourcePath == "" {
		c.SourcePath = DefaultSourceDir
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputDir
	}
	if !filepath.IsAbs(c.SourcePath) {
		c.SourcePath = filepath.Join(projectDir, c.SourcePath)
	}
	if !filepath.IsAbs(c.OutputPath) {
		c.OutputPath = filepath.Join(projectDir, c.OutputPath)
	}
	if c.Platform == "" {
		c.Platform = core.DefaultPlatform
	}
}

// Options converts the project configuration into compile options. The
// resource path is set per file.
func (c *Config) Options() core.Options {
	opts := core.DefaultOptions()
	opts.SourcePath = c.SourcePath
	opts.OutputPath = c.OutputPath
	opts.Platform = core.Platform{Type: c.Platform}
	opts.DisableCopyNpm = c.DisableCopyNpm
	opts.StrictPlatformEntries = c.StrictPlatformEntries
	if len(c.VendorPrefixes) > 0 {
		opts.VendorPrefixes = c.VendorPrefixes
	}
	if len(c.BaseComponents) > 0 {
		opts.BaseComponents = c.BaseComponents
	}
	opts.NativeComponents = c.NativeComponents
	return opts
}

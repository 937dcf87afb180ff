package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName = "clientlibs.yaml"
	EnvFileName    = ".env"

	EnvRoot    = "CLIENTLIBS_ROOT"
	EnvOutput  = "CLIENTLIBS_OUTPUT"
	EnvVerbose = "CLIENTLIBS_VERBOSE"
)

// ProjectConfig mirrors clientlibs.yaml. Unset keys stay nil so they do
// not override defaults during Apply.
type ProjectConfig struct {
	Root            *string                        `yaml:"root"`
	ClientLibPath   *string                        `yaml:"clientLibPath"`
	FullSuffix      *string                        `yaml:"fullSuffix"`
	MinSuffix       *string                        `yaml:"minSuffix"`
	CSSDependPrefix *string                        `yaml:"cssDependPrefix"`
	JSDependPrefix  *string                        `yaml:"jsDependPrefix"`
	Includes        map[string]clientlibs.Includes `yaml:"includes"`
	CompressCSS     *bool                          `yaml:"compressCSS"`
	CompressJS      *bool                          `yaml:"compressJS"`
	MinSettings     map[string]interface{}         `yaml:"minSettings"`
	WriteRetries    *int                           `yaml:"writeRetries"`
	Verbose         *bool                          `yaml:"verbose"`
}

// Load reads clientlibs.yaml from the project directory.
func Load(projectPath string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(projectPath, ConfigFileName))
}

// LoadFile reads a config file from an explicit path.
func LoadFile(configPath string) (*ProjectConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", configPath, clientlibs.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// Apply overlays every set value onto cfg. Relative root and output
// paths are resolved against projectPath.
func (p *ProjectConfig) Apply(cfg *clientlibs.BuildConfig, projectPath string) {
	if p == nil {
		return
	}
	if p.Root != nil {
		cfg.Root = resolvePath(projectPath, *p.Root)
	}
	if p.ClientLibPath != nil {
		cfg.ClientLibPath = resolvePath(projectPath, *p.ClientLibPath)
	}
	if p.FullSuffix != nil {
		cfg.FullSuffix = *p.FullSuffix
	}
	if p.MinSuffix != nil {
		cfg.MinSuffix = *p.MinSuffix
	}
	if p.CSSDependPrefix != nil {
		cfg.CSSDependPrefix = *p.CSSDependPrefix
	}
	if p.JSDependPrefix != nil {
		cfg.JSDependPrefix = *p.JSDependPrefix
	}
	if len(p.Includes) > 0 {
		if cfg.Includes == nil {
			cfg.Includes = make(map[string]clientlibs.Includes, len(p.Includes))
		}
		for name, inc := range p.Includes {
			cfg.Includes[name] = inc
		}
	}
	if p.CompressCSS != nil {
		cfg.CompressCSS = *p.CompressCSS
	}
	if p.CompressJS != nil {
		cfg.CompressJS = *p.CompressJS
	}
	if len(p.MinSettings) > 0 {
		if cfg.MinSettings == nil {
			cfg.MinSettings = make(map[string]interface{}, len(p.MinSettings))
		}
		for k, v := range p.MinSettings {
			cfg.MinSettings[k] = v
		}
	}
	if p.WriteRetries != nil {
		cfg.WriteRetries = *p.WriteRetries
	}
	if p.Verbose != nil {
		cfg.Verbose = *p.Verbose
	}
}

// LoadEnv loads the project's .env file into the process environment.
// A missing file is not an error. Existing variables are not overridden.
func LoadEnv(projectPath string) error {
	envPath := filepath.Join(projectPath, EnvFileName)
	if _, err := os.Stat(envPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", envPath, err)
	}
	return nil
}

// ApplyEnv overlays CLIENTLIBS_* variables onto cfg using lookup.
func ApplyEnv(cfg *clientlibs.BuildConfig, projectPath string, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRoot); ok && strings.TrimSpace(v) != "" {
		cfg.Root = resolvePath(projectPath, v)
	}
	if v, ok := lookup(EnvOutput); ok && strings.TrimSpace(v) != "" {
		cfg.ClientLibPath = resolvePath(projectPath, v)
	}
	if v, ok := lookup(EnvVerbose); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s=%q is not a boolean: %w", EnvVerbose, v, clientlibs.ErrInvalidConfig)
		}
		cfg.Verbose = b
	}
	return nil
}

// Resolve builds the effective configuration for a project: defaults,
// then clientlibs.yaml (or configPath when non-empty), then environment.
// A missing config file is not an error.
func Resolve(projectPath, configPath string) (clientlibs.BuildConfig, error) {
	if abs, err := filepath.Abs(projectPath); err == nil {
		projectPath = abs
	}

	cfg := clientlibs.DefaultBuildConfig()
	cfg.Root = resolvePath(projectPath, cfg.Root)
	cfg.ClientLibPath = resolvePath(projectPath, cfg.ClientLibPath)

	if err := LoadEnv(projectPath); err != nil {
		return cfg, err
	}

	var (
		projectCfg *ProjectConfig
		err        error
	)
	if configPath != "" {
		projectCfg, err = LoadFile(configPath)
	} else {
		projectCfg, err = Load(projectPath)
		if errors.Is(err, ErrConfigNotFound) {
			err = nil
		}
	}
	if err != nil {
		return cfg, err
	}
	projectCfg.Apply(&cfg, projectPath)

	if err := ApplyEnv(&cfg, projectPath, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func resolvePath(projectPath, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, filepath.FromSlash(p))
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "exposeparity.yaml"

// Load loads configuration from the specified file, which must exist.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return nil, perrors.ConfigNotFound(configPath)
	}
	return load(configPath)
}

// LoadOrDefault loads configPath when it exists and otherwise returns the
// defaults rooted at the working directory.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		if envErr := loadEnvFiles(); envErr != nil {
			slog.Warn("Failed to load .env file", "error", envErr)
		}
		wd, err := os.Getwd()
		if err != nil {
			return nil, perrors.InternalError("resolve working directory", err)
		}
		slog.Debug("No configuration file, using defaults", "path", configPath)
		cfg := Default(wd)
		return cfg, cfg.Validate()
	}
	return load(configPath)
}

func load(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}

	// #nosec G304 -- configuration path is supplied by the operator
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, perrors.ConfigInvalid(configPath, fmt.Errorf("read: %w", err))
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, perrors.ConfigInvalid(configPath, fmt.Errorf("unmarshal: %w", err))
	}

	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return nil, perrors.InternalError("resolve config path", err)
	}
	baseDir := filepath.Dir(absConfig)
	switch {
	case cfg.Root == "":
		cfg.Root = baseDir
	case !filepath.IsAbs(cfg.Root):
		cfg.Root = filepath.Join(baseDir, cfg.Root)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolvePath returns p unchanged when absolute, otherwise joined to Root.
// Empty stays empty.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Argv returns the command line for an implementation: command, the
// resolved script (if any), then the configured arguments.
func (c *Config) Argv(impl Implementation) []string {
	argv := []string{impl.Command}
	if impl.Script != "" {
		argv = append(argv, c.ResolvePath(impl.Script))
	}
	return append(argv, impl.Args...)
}

// Init creates a new configuration file with the default content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return perrors.New(perrors.CategoryConfig, perrors.SeverityFatal,
			"configuration file already exists (use --force to overwrite)").WithContext("path", configPath)
	}

	example := Default("")
	example.History.Path = ".exposeparity/history.db"
	example.Notify.Retries = 2
	example.Notify.Backoff = "linear"

	data, err := yaml.Marshal(example)
	if err != nil {
		return perrors.InternalError("marshal example configuration", err)
	}

	header := "# exposeparity configuration. Relative paths resolve against root\n" +
		"# (default: the directory containing this file).\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o600); err != nil {
		return perrors.WrapError(err, perrors.CategoryFileSystem, "write configuration file").
			WithContext("path", configPath)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Paths    PathsConfig    `yaml:"paths"`
}

// DefaultsConfig holds default values
type DefaultsConfig struct {
	Format   string `yaml:"format"`
	Workers  int    `yaml:"workers"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
}

// PathsConfig holds custom path overrides
type PathsConfig struct {
	DownloadDir string `yaml:"download_dir"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Format:   "best",
			Workers:  4,
			Model:    "small",
			Language: "en",
		},
		Paths: PathsConfig{
			DownloadDir: "mediagrab_downloads",
		},
	}
}

// AppDir returns the application directory (~/.mediagrab)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mediagrab"
	}
	return filepath.Join(home, ".mediagrab")
}

// ModelsDir returns the whisper models directory
func ModelsDir() string {
	return filepath.Join(AppDir(), "models")
}

// BinDir returns the bundled binaries directory
func BinDir() string {
	return filepath.Join(AppDir(), "bin")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	dirs := []string{AppDir(), ModelsDir(), BinDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadDefault loads config from default path
func LoadDefault() (*Config, error) {
	return Load(ConfigPath())
}

// Save writes config to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ResolveDownloadDir turns the configured download directory into a usable,
// writable absolute path. Relative paths live under the home directory;
// when that is not writable it falls back to the working directory, then to
// the system temp directory.
func ResolveDownloadDir(specified string) (string, error) {
	if specified == "" {
		specified = DefaultConfig().Paths.DownloadDir
	}

	var candidate string
	if filepath.IsAbs(specified) {
		candidate = specified
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, specified)
	} else {
		candidate = specified
	}

	if dir, err := ensureWritable(candidate); err == nil {
		return dir, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		if dir, err := ensureWritable(filepath.Join(cwd, filepath.Base(specified))); err == nil {
			return dir, nil
		}
	}

	return ensureWritable(filepath.Join(os.TempDir(), "mediagrab_downloads"))
}

func ensureWritable(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	probe := filepath.Join(dir, ".write_probe")
	if err := os.WriteFile(probe, []byte("probe"), 0644); err != nil {
		return "", err
	}
	os.Remove(probe)
	return dir, nil
}

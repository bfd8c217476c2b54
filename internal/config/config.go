// Package config manages YAML-based configuration and the folders served by dirpager.
package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Folder represents a served root with an alias used in request paths
type Folder struct {
	Path    string   `yaml:"path" json:"path" validate:"required"`
	Alias   string   `yaml:"alias" json:"alias"`
	GitRef  string   `yaml:"git_ref,omitempty" json:"git_ref,omitempty"`
	SubPath string   `yaml:"sub_path,omitempty" json:"sub_path,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// Config holds all configuration options for dirpager
type Config struct {
	// Legacy single path
	Path string `yaml:"path,omitempty"`

	// Multiple folders with aliases
	Folders []Folder `yaml:"folders,omitempty" json:"folders" validate:"dive"`

	Port int `yaml:"port" validate:"min=1,max=65535"`

	// DefaultLimit is the page size used when a request gives none.
	// Negative means unlimited.
	DefaultLimit int `yaml:"default_limit"`

	// SafeMode skips entries that cannot be stat'ed
	SafeMode bool `yaml:"safe_mode"`

	Exclude  []string `yaml:"exclude"`
	LogLevel string   `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Internal: path of the loaded config file
	configPath string
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Path:         ".",
		Port:         8080,
		DefaultLimit: 50,
		SafeMode:     true,
		Exclude:      []string{".git", ".svn"},
		LogLevel:     "info",
	}
}

// GetConfigDir returns the config directory path
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/dirpager"
	}
	return filepath.Join(home, ".config", "dirpager")
}

// GetConfigPath returns the full path to the global config file
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Load builds the configuration from defaults and the first config file
// found. An explicit configFile must exist and parse; the implicit
// locations (~/.config/dirpager/config.yaml, then ./dirpager.yaml) are
// skipped when missing.
func Load(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	cfgPath := configFile
	if cfgPath == "" {
		for _, candidate := range []string{GetConfigPath(), "dirpager.yaml"} {
			if _, err := os.Stat(candidate); err == nil {
				cfgPath = candidate
				break
			}
		}
	}

	if cfgPath != "" {
		if err := cfg.loadFromFile(cfgPath); err != nil {
			if configFile != "" {
				return nil, fmt.Errorf("load config %s: %w", cfgPath, err)
			}
		} else {
			cfg.configPath = cfgPath
		}
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Finalize resolves folder paths and fills in aliases, then validates the
// result. Call it once flags have been applied.
func (c *Config) Finalize() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.migrateLegacyPath()
	return Validate(c)
}

// migrateLegacyPath converts single Path to Folders if Folders is empty
func (c *Config) migrateLegacyPath() {
	if len(c.Folders) == 0 && c.Path != "" {
		absPath, err := filepath.Abs(c.Path)
		if err != nil {
			absPath = c.Path
		}
		c.Folders = []Folder{{
			Path:  absPath,
			Alias: filepath.Base(absPath),
		}}
	}

	// Resolve all folder paths to absolute
	for i := range c.Folders {
		absPath, err := filepath.Abs(c.Folders[i].Path)
		if err == nil {
			c.Folders[i].Path = absPath
		}
		if c.Folders[i].SubPath != "" {
			c.Folders[i].SubPath = strings.Trim(path.Clean("/"+c.Folders[i].SubPath), "/")
		}
		// Set alias to folder name if not specified
		if c.Folders[i].Alias == "" {
			c.Folders[i].Alias = filepath.Base(c.Folders[i].Path)
			if c.Folders[i].GitRef != "" {
				c.Folders[i].Alias += "@" + c.Folders[i].GitRef
			}
		}
	}
}

// UseSinglePath replaces every configured folder with path, as the
// --path flag does.
func (c *Config) UseSinglePath(path string) {
	c.Path = path
	c.Folders = nil
}

// FolderByAlias returns the folder whose alias is alias.
func (c *Config) FolderByAlias(alias string) (Folder, bool) {
	for _, f := range c.Folders {
		if f.Alias == alias {
			return f, true
		}
	}
	return Folder{}, false
}

// IsFolderExcluded checks if a relative path should be excluded by folder-level excludes
func (c *Config) IsFolderExcluded(relPath string, folderExcludes []string) bool {
	if len(folderExcludes) == 0 {
		return false
	}
	for _, pattern := range folderExcludes {
		if matched, _ := filepath.Match(pattern, relPath); matched {
			return true
		}
		base := filepath.Base(relPath)
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		clean := filepath.Clean(pattern)
		if relPath == clean || strings.HasPrefix(relPath, clean+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// GetConfigFilePath returns the path to the loaded config file, or "" when
// running on defaults.
func (c *Config) GetConfigFilePath() string {
	return c.configPath
}

// IsExcluded checks if a path should be excluded by the global patterns
func (c *Config) IsExcluded(path string) bool {
	base := filepath.Base(path)
	for _, exclude := range c.Exclude {
		if matched, _ := filepath.Match(exclude, base); matched {
			return true
		}
	}
	return false
}

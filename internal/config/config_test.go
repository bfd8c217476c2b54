package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.DefaultLimit != 50 {
		t.Errorf("expected default limit 50, got %d", cfg.DefaultLimit)
	}
	if !cfg.SafeMode {
		t.Error("expected safe mode to be true")
	}
}

func TestMigrateLegacyPath(t *testing.T) {
	cfg := &Config{
		Path: "./test_docs",
	}
	cfg.migrateLegacyPath()

	if len(cfg.Folders) != 1 {
		t.Fatalf("expected 1 folder after migration, got %d", len(cfg.Folders))
	}

	absExpected, _ := filepath.Abs("./test_docs")
	if cfg.Folders[0].Path != absExpected {
		t.Errorf("expected path %s, got %s", absExpected, cfg.Folders[0].Path)
	}
	if cfg.Folders[0].Alias != "test_docs" {
		t.Errorf("expected alias test_docs, got %s", cfg.Folders[0].Alias)
	}
}

func TestMigrateGitAlias(t *testing.T) {
	cfg := &Config{Folders: []Folder{{Path: "/srv/repo", GitRef: "v1.0"}}}
	cfg.migrateLegacyPath()

	if cfg.Folders[0].Alias != "repo@v1.0" {
		t.Errorf("expected alias repo@v1.0, got %s", cfg.Folders[0].Alias)
	}
}

func TestUseSinglePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Folders = []Folder{{Path: "/a", Alias: "a"}, {Path: "/b", Alias: "b"}}

	cfg.UseSinglePath("./docs")
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if len(cfg.Folders) != 1 || cfg.Folders[0].Alias != "docs" {
		t.Errorf("expected only the docs folder, got %+v", cfg.Folders)
	}
	if _, ok := cfg.FolderByAlias("docs"); !ok {
		t.Error("expected to find folder by alias docs")
	}
	if _, ok := cfg.FolderByAlias("a"); ok {
		t.Error("expected folder a to be gone")
	}
}

func TestIsExcluded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude = []string{".git", "node_modules", "*.tmp"}

	if !cfg.IsExcluded("/path/to/.git") {
		t.Error("expected .git to be excluded")
	}
	if !cfg.IsExcluded("/path/to/node_modules") {
		t.Error("expected node_modules to be excluded")
	}
	if !cfg.IsExcluded("scratch.tmp") {
		t.Error("expected scratch.tmp to be excluded")
	}
	if cfg.IsExcluded("/path/to/README.md") {
		t.Error("expected README.md NOT to be excluded")
	}
}

func TestIsFolderExcluded(t *testing.T) {
	cfg := DefaultConfig()
	excludes := []string{"build", "docs/private"}

	tests := []struct {
		path string
		want bool
	}{
		{"build", true},
		{"src/build", true},
		{"docs/private", true},
		{"docs/private/notes", true},
		{"docs/public", false},
	}
	for _, tt := range tests {
		if got := cfg.IsFolderExcluded(tt.path, excludes); got != tt.want {
			t.Errorf("IsFolderExcluded(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	data := "port: 9999\ndefault_limit: -1\nsafe_mode: false\nfolders:\n  - path: /tmp\n    alias: Temp\n"
	if err := os.WriteFile(tmpFile, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Port)
	}
	if cfg.DefaultLimit != -1 {
		t.Errorf("expected default limit -1, got %d", cfg.DefaultLimit)
	}
	if cfg.SafeMode {
		t.Error("expected safe mode to be false")
	}
	if len(cfg.Folders) != 1 || cfg.Folders[0].Alias != "Temp" {
		t.Errorf("folder loading failed")
	}
	if cfg.GetConfigFilePath() != tmpFile {
		t.Errorf("expected config path %s, got %s", tmpFile, cfg.GetConfigFilePath())
	}
	// Unset keys keep their defaults.
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Folders = []Folder{{Path: "/tmp", Alias: "tmp"}}
		return cfg
	}

	if err := Validate(valid()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Port = 70000 }, "max"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "oneof"},
		{"missing folder path", func(c *Config) { c.Folders[0].Path = "" }, "required"},
		{"no folders", func(c *Config) { c.Folders = nil }, "at least one folder"},
		{"duplicate alias", func(c *Config) {
			c.Folders = append(c.Folders, Folder{Path: "/var", Alias: "tmp"})
		}, "duplicate alias"},
	}
	for _, tt := range tests {
		cfg := valid()
		tt.mutate(cfg)
		err := Validate(cfg)
		if err == nil {
			t.Errorf("%s: expected validation error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}

func TestMigrateCleansSubPath(t *testing.T) {
	cfg := &Config{Folders: []Folder{
		{Path: "/srv/a", Alias: "a", SubPath: "./docs/"},
		{Path: "/srv/b", Alias: "b", SubPath: "/guides//api"},
		{Path: "/srv/c", Alias: "c"},
	}}
	cfg.migrateLegacyPath()

	want := []string{"docs", "guides/api", ""}
	for i, w := range want {
		if got := cfg.Folders[i].SubPath; got != w {
			t.Errorf("folder %d: expected sub_path %q, got %q", i, w, got)
		}
	}
}

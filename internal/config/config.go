package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/alanmeadows/issuepr/internal/repo"
)

const (
	// RepoConfigDir and RepoConfigFile locate the repo-level JSONC config.
	RepoConfigDir  = ".issuepr"
	RepoConfigFile = "issuepr.jsonc"

	// RepoYAMLFile is the repo-level YAML config, next to the workflows.
	RepoYAMLFile = ".github/issuepr.yml"
)

// Load reads and merges configuration.
// Resolution order: defaults → user config (~/.config/issuepr/issuepr.jsonc)
// → repo config (.issuepr/issuepr.jsonc, then .github/issuepr.yml) →
// overridePath, if set → environment.
func Load(overridePath string) (*Config, error) {
	cfg := DefaultConfig()

	// Load user-level config
	if userPath := UserPath(); userPath != "" {
		if userMap, err := loadFile(userPath); err == nil {
			if err := mergeIntoConfig(&cfg, userMap); err != nil {
				return nil, fmt.Errorf("merging user config: %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// Load repo-level configs
	if repoRoot := RepoRoot(); repoRoot != "" {
		for _, rel := range []string{filepath.Join(RepoConfigDir, RepoConfigFile), RepoYAMLFile} {
			repoMap, err := loadFile(filepath.Join(repoRoot, rel))
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if err := mergeIntoConfig(&cfg, repoMap); err != nil {
				return nil, fmt.Errorf("merging repo config %s: %w", rel, err)
			}
		}
	}

	// An explicit --config must exist.
	if overridePath != "" {
		m, err := loadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", overridePath, err)
		}
		if err := mergeIntoConfig(&cfg, m); err != nil {
			return nil, fmt.Errorf("merging config %s: %w", overridePath, err)
		}
	}

	// Environment variable overrides
	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// UserPath returns the user-level config file path, or "" when the user
// config directory cannot be determined.
func UserPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "issuepr", "issuepr.jsonc")
}

// loadFile reads a JSONC or YAML file, chosen by extension, into a map.
func loadFile(path string) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return loadYAML(path)
	default:
		return loadJSONC(path)
	}
}

// loadJSONC reads a JSONC file and returns it as a map.
func loadJSONC(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jsonData := jsonc.ToJSON(data)
	var m map[string]any
	if err := json.Unmarshal(jsonData, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// loadYAML reads a YAML file and returns it as a map.
func loadYAML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// mergeIntoConfig marshals the config to a map, deep-merges the source map over it,
// then unmarshals back to the Config struct.
func mergeIntoConfig(cfg *Config, src map[string]any) error {
	cfgBytes, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	var dst map[string]any
	if err := json.Unmarshal(cfgBytes, &dst); err != nil {
		return err
	}

	if err := mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
		return err
	}

	merged, err := json.Marshal(dst)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, cfg)
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
}

// RepoRoot returns the root of the git repository containing the working
// directory, or "" when not in a repository.
func RepoRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	local, err := repo.Open(wd)
	if err != nil {
		return ""
	}
	root, err := local.Root()
	if err != nil {
		return ""
	}
	return root
}

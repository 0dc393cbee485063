// Package config holds the per-user repository mapping: application
// names referenced by spec metadata mapped to folder paths on this
// machine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvHome overrides the directory holding config.yaml.
const EnvHome = "SPECDECK_HOME"

// Config is the persisted user configuration.
type Config struct {
	Repositories map[string]string `yaml:"repositories"`
}

// Path returns the config file location: $SPECDECK_HOME/config.yaml
// when set, otherwise ~/.specdeck/config.yaml.
func Path() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return filepath.Join(dir, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".specdeck", "config.yaml"), nil
}

// Load reads the config at path. A missing file is an empty config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Repositories: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if c.Repositories == nil {
		c.Repositories = map[string]string{}
	}
	return &c, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Set maps an application name to a folder path.
func (c *Config) Set(name, folder string) {
	if c.Repositories == nil {
		c.Repositories = map[string]string{}
	}
	c.Repositories[name] = folder
}

// Remove drops a mapping, erroring when the name is unknown.
func (c *Config) Remove(name string) error {
	if _, ok := c.Repositories[name]; !ok {
		return fmt.Errorf("repository %q not found in config", name)
	}
	delete(c.Repositories, name)
	return nil
}

// Names lists the mapped application names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Repositories))
	for name := range c.Repositories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveApplications maps the given application names to their
// configured folder paths. Any unmapped name fails the whole call so
// a partially substituted document is never produced.
func (c *Config) ResolveApplications(apps []string) (map[string]string, error) {
	resolved := make(map[string]string, len(apps))
	var missing []string
	for _, app := range apps {
		if folder, ok := c.Repositories[app]; ok {
			resolved[app] = folder
		} else {
			missing = append(missing, app)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"spec references applications not found in config: %s\nadd them with: specdeck config set <repo-name> <path>",
			strings.Join(missing, ", "))
	}
	return resolved, nil
}

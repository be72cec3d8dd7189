// Package config loads the ambient run configuration a GeneratorContext
// is constructed from: project/asset/mapset paths and default
// contributor settings.
//
// RunConfig is decoded from YAML with gopkg.in/yaml.v3 rather than a
// hand-rolled parser.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RunConfig is the ambient configuration for one editor session.
type RunConfig struct {
	ProjectPath string `yaml:"project_path"`
	AssetPath   string `yaml:"asset_path"`
	MapsetPath  string `yaml:"mapset_path"`

	DefaultContributorName     string `yaml:"default_contributor_name"`
	DefaultContributorPriority int    `yaml:"default_contributor_priority"`

	Multithreaded bool `yaml:"multithreaded"`
}

// Load reads and decodes a YAML run configuration file.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	return &cfg, nil
}

// Validate checks that MapsetPath exists on disk, returning
// ErrMapsetMissing wrapped with the checked path if it does not.
func (c *RunConfig) Validate() error {
	if c.MapsetPath == "" {
		return nil
	}
	if _, err := os.Stat(c.MapsetPath); err != nil {
		return errors.Wrapf(ErrMapsetMissing, "path %q", c.MapsetPath)
	}
	return nil
}

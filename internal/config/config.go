// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"versebook/internal/poem"
)

// SiteConfig holds the configuration from the site.yaml file.
type SiteConfig struct {
	Title         string   `yaml:"title"`
	Author        string   `yaml:"author"`
	BaseURL       string   `yaml:"baseurl"`
	Description   string   `yaml:"description"`
	Template      string   `yaml:"template"`
	Language      string   `yaml:"language"`
	TheatreLabels []string `yaml:"theatre_labels"`
}

// Default returns the configuration used when no site.yaml exists.
func Default() SiteConfig {
	return SiteConfig{
		Title:         "Poèmes",
		BaseURL:       "/",
		Template:      "simple",
		Language:      "fr",
		TheatreLabels: append([]string(nil), poem.DefaultTheatreLabels...),
	}
}

// LoadSiteConfig reads path on top of Default. A missing file is not an
// error; a malformed one is.
func LoadSiteConfig(path string) (SiteConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return SiteConfig{}, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	if cfg.Template == "" {
		cfg.Template = Default().Template
	}
	if len(cfg.TheatreLabels) == 0 {
		cfg.TheatreLabels = Default().TheatreLabels
	}
	return cfg, nil
}

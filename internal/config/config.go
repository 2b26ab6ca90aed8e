// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Link is a labelled external link shown in the index hero.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Assets lists the external stylesheet and highlighting scripts that every
// day page references.
type Assets struct {
	Stylesheet string   `yaml:"stylesheet"`
	Scripts    []string `yaml:"scripts"`
}

// SiteConfig holds the configuration from the site.yaml file.
// The `yaml` tags are used by the parser to map file keys to struct fields.
type SiteConfig struct {
	Title   string   `yaml:"title"`
	Tagline string   `yaml:"tagline"`
	Heading string   `yaml:"heading"`
	Links   []Link   `yaml:"links"`
	Footer  []string `yaml:"footer"`

	Readme     string `yaml:"readme"`      // the day log
	SourceRoot string `yaml:"source_root"` // parent of the "day NN" directories
	Output     string `yaml:"output"`
	Days       int    `yaml:"days"`

	Markdown  bool   `yaml:"markdown"`  // render descriptions through goldmark
	Unsafe    bool   `yaml:"unsafe"`    // skip sanitizing markdown output
	Templates string `yaml:"templates"` // override directory; empty means built-in

	Assets Assets `yaml:"assets"`
}

const prismBase = "https://cdnjs.cloudflare.com/ajax/libs/prism/1.29.0/"

// Default returns the configuration used when no site.yaml exists.
func Default() SiteConfig {
	return SiteConfig{
		Title:      "GPU Kernels Learning Journey",
		Tagline:    "A 100-day journey of learning GPU programming and parallel computing with CUDA, HIP, and more",
		Heading:    "100 Days of GPU Programming",
		Footer:     []string{"Created as part of the 100 Days GPU Programming Challenge"},
		Readme:     "README.md",
		SourceRoot: ".",
		Output:     "docs",
		Days:       100,
		Assets: Assets{
			Stylesheet: prismBase + "themes/prism-tomorrow.min.css",
			Scripts: []string{
				prismBase + "prism.min.js",
				prismBase + "components/prism-c.min.js",
				prismBase + "components/prism-cpp.min.js",
				prismBase + "components/prism-python.min.js",
				prismBase + "components/prism-markdown.min.js",
			},
		},
	}
}

// LoadSiteConfig reads site.yaml on top of the defaults. A missing file is
// not an error: the defaults are returned unchanged.
func LoadSiteConfig(path string) (SiteConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return SiteConfig{}, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports settings that cannot produce a site.
func (c SiteConfig) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1, got %d", c.Days)
	}
	if c.Output == "" {
		return errors.New("output directory must not be empty")
	}
	return nil
}

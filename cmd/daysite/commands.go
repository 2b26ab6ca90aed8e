package main

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"daysite/internal/builder"
	"daysite/internal/config"
	"daysite/internal/scaffold"
	"daysite/internal/watch"
)

// GenCmd is the "gen" subcommand.
type GenCmd struct {
	Clean  bool   `help:"Remove everything in the output directory first."`
	Output string `short:"o" help:"Override the output directory from site.yaml."`
}

func (c *GenCmd) Run(deps *Dependencies) error {
	site, tmpl, err := loadSite(deps.ConfigPath)
	if err != nil {
		return err
	}
	if c.Output != "" {
		site.Output = c.Output
	}

	fmt.Fprintln(deps.Stdout, "--- Generating site ---")
	return generate(deps.Ctx, deps, site, tmpl, c.Clean)
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct{}

func (c *WatchCmd) Run(deps *Dependencies) error {
	site, err := config.LoadSiteConfig(deps.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load site config: %w", err)
	}
	targets := watch.Targets{
		SourceRoot: site.SourceRoot,
		Files:      []string{site.Readme, deps.ConfigPath},
	}
	if site.Templates != "" {
		targets.Dirs = append(targets.Dirs, site.Templates)
	}

	// Each build reloads the config and templates so edits to them apply.
	build := func(ctx context.Context) error {
		fmt.Fprintln(deps.Stdout, "--- Building site ---")
		site, tmpl, err := loadSite(deps.ConfigPath)
		if err != nil {
			return err
		}
		return generate(ctx, deps, site, tmpl, false)
	}
	fmt.Fprintln(deps.Stdout, "Watching for changes. Press Ctrl+C to stop")
	return watch.Run(deps.Ctx, targets, build, deps.Logger)
}

// InitCmd is the "init" subcommand.
type InitCmd struct {
	Dir       string `arg:"" help:"Directory to create the site in."`
	Templates bool   `help:"Copy the built-in page templates for customisation."`
}

func (c *InitCmd) Run(deps *Dependencies) error {
	return scaffold.CreateNewSite(c.Dir, c.Templates)
}

// NewCmd is the "new" subcommand.
type NewCmd struct {
	Day   int      `arg:"" help:"Day number."`
	Title []string `arg:"" help:"Title of the day."`
}

func (c *NewCmd) Run(deps *Dependencies) error {
	site, err := config.LoadSiteConfig(deps.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load site config: %w", err)
	}
	return scaffold.CreateNewDay(site, c.Day, strings.Join(c.Title, " "))
}

func loadSite(configPath string) (config.SiteConfig, *template.Template, error) {
	site, err := config.LoadSiteConfig(configPath)
	if err != nil {
		return config.SiteConfig{}, nil, fmt.Errorf("failed to load site config: %w", err)
	}
	tmpl, err := builder.LoadTemplates(site.Templates)
	if err != nil {
		return config.SiteConfig{}, nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return site, tmpl, nil
}

func generate(ctx context.Context, deps *Dependencies, site config.SiteConfig, tmpl *template.Template, clean bool) error {
	if clean {
		fmt.Fprintln(deps.Stdout, "Cleaning destination directory...")
	}
	report, err := builder.BuildSite(ctx, site, tmpl, builder.BuildOptions{
		CleanDestination: clean,
		Logger:           deps.Logger,
	})
	if err != nil {
		return fmt.Errorf("site generation failed: %w", err)
	}
	printReport(deps.Stdout, report, site.Output)
	return nil
}

func printReport(w io.Writer, report builder.Report, outputDir string) {
	fmt.Fprintf(w, "Found descriptions for %d days\n", report.Descriptions)
	fmt.Fprintf(w, "✓ Generated %s\n", filepath.Base(report.Index))
	for _, d := range report.Days {
		fmt.Fprintf(w, "✓ Generated %s (%d files)\n", filepath.Base(d.Path), d.Files)
	}
	fmt.Fprintf(w, "✅ Success! Generated %d pages in %s/\n", len(report.Days)+1, outputDir)
}

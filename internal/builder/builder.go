// internal/builder/builder.go
package builder

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"daysite/internal/config"
	"daysite/internal/journal"
	"daysite/internal/source"
	"daysite/internal/util"

	"golang.org/x/sync/errgroup"
)

type BuildOptions struct {
	CleanDestination bool
	Logger           *slog.Logger
}

// DayResult describes one written day page.
type DayResult struct {
	Day   int
	Files int
	Path  string
}

// Report summarises a build for progress output.
type Report struct {
	Descriptions int
	Index        string
	Days         []DayResult // ordered by day
}

// BuildSite extracts the day log, renders the index and every day page and
// writes them to site.Output. Missing inputs degrade to placeholders; only
// failures to create or write the output are returned.
func BuildSite(ctx context.Context, site config.SiteConfig, tmpl *template.Template, opts BuildOptions) (Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := os.MkdirAll(site.Output, 0755); err != nil {
		return Report{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	if opts.CleanDestination {
		if err := cleanDir(site.Output); err != nil {
			return Report{}, fmt.Errorf("failed to clean output directory: %w", err)
		}
	}

	descriptions, err := journal.ParseFile(site.Readme)
	if err != nil {
		logger.Warn("day log unreadable, continuing without descriptions", "path", site.Readme, "err", err)
		descriptions = map[int]string{}
	}
	logger.Debug("day log parsed", "path", site.Readme, "descriptions", len(descriptions))

	renderer := NewRenderer(site, tmpl)
	report := Report{
		Descriptions: len(descriptions),
		Index:        filepath.Join(site.Output, util.IndexPageName),
		Days:         make([]DayResult, site.Days),
	}

	index, err := renderer.RenderIndex(descriptions)
	if err != nil {
		return Report{}, err
	}
	if err := writePage(report.Index, index); err != nil {
		return Report{}, err
	}

	collector := source.NewCollector(site.SourceRoot, logger)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for day := 1; day <= site.Days; day++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files := collector.Collect(day)
			page, err := renderer.RenderDay(day, descriptions[day], files)
			if err != nil {
				return err
			}
			outPath := filepath.Join(site.Output, util.DayPageName(day))
			if err := writePage(outPath, page); err != nil {
				return err
			}
			report.Days[day-1] = DayResult{Day: day, Files: len(files), Path: outPath}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return report, nil
}

// cleanDir removes everything inside dir but keeps dir itself.
func cleanDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// writePage writes a rendered page, reporting close errors as well.
func writePage(outPath string, page []byte) (err error) {
	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer func() {
		if cerr := outFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", outPath, cerr)
		}
	}()
	if _, err := outFile.Write(page); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}

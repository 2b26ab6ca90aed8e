package builder_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"daysite/internal/builder"
	"daysite/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSite(t *testing.T) config.SiteConfig {
	t.Helper()
	root := t.TempDir()
	site := config.Default()
	site.Readme = filepath.Join(root, "README.md")
	site.SourceRoot = root
	site.Output = filepath.Join(root, "docs")
	return site
}

func TestBuildSite(t *testing.T) {
	t.Parallel()

	t.Run("end to end", func(t *testing.T) {
		t.Parallel()

		site := testSite(t)
		require.NoError(t, os.WriteFile(site.Readme, []byte("## Day 1: Intro\nHello world\n## Day 2\nMore text\n"), 0644))
		dayDir := filepath.Join(site.SourceRoot, "day 02")
		require.NoError(t, os.MkdirAll(dayDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dayDir, "kernel.cu"), []byte("a & b"), 0644))

		tmpl, err := builder.LoadTemplates("")
		require.NoError(t, err)
		report, err := builder.BuildSite(context.Background(), site, tmpl, builder.BuildOptions{})
		require.NoError(t, err)

		assert.Equal(t, 2, report.Descriptions)
		assert.Equal(t, filepath.Join(site.Output, "index.html"), report.Index)
		require.Len(t, report.Days, 100)
		for i, d := range report.Days {
			assert.Equal(t, i+1, d.Day)
		}
		assert.Equal(t, 0, report.Days[0].Files)
		assert.Equal(t, 1, report.Days[1].Files)

		entries, err := os.ReadDir(site.Output)
		require.NoError(t, err)
		assert.Len(t, entries, 101)

		day1, err := os.ReadFile(filepath.Join(site.Output, "day-1.html"))
		require.NoError(t, err)
		doc := parse(t, day1)
		assert.Contains(t, doc.Find(".desc-content").Text(), "Intro\nHello world")
		assert.Equal(t, "No code files found for this day.", doc.Find(".no-files").Text())

		day2, err := os.ReadFile(filepath.Join(site.Output, "day-2.html"))
		require.NoError(t, err)
		assert.Contains(t, string(day2), `<code class="language-cuda">a &amp; b</code>`)

		index, err := os.ReadFile(report.Index)
		require.NoError(t, err)
		assert.Equal(t, "Intro", parse(t, index).Find(".day-preview").First().Text())
	})

	t.Run("missing inputs still produce every page", func(t *testing.T) {
		t.Parallel()

		site := testSite(t)
		site.Days = 5
		tmpl, err := builder.LoadTemplates("")
		require.NoError(t, err)

		report, err := builder.BuildSite(context.Background(), site, tmpl, builder.BuildOptions{})

		require.NoError(t, err)
		assert.Equal(t, 0, report.Descriptions)
		for day := 1; day <= 5; day++ {
			assert.FileExists(t, filepath.Join(site.Output, "day-"+strconv.Itoa(day)+".html"))
		}
		assert.NoFileExists(t, filepath.Join(site.Output, "day-6.html"))
	})

	t.Run("clean destination removes stale files", func(t *testing.T) {
		t.Parallel()

		site := testSite(t)
		site.Days = 1
		require.NoError(t, os.MkdirAll(site.Output, 0755))
		stale := filepath.Join(site.Output, "day-50.html")
		require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))
		tmpl, err := builder.LoadTemplates("")
		require.NoError(t, err)

		_, err = builder.BuildSite(context.Background(), site, tmpl, builder.BuildOptions{CleanDestination: true})

		require.NoError(t, err)
		assert.NoFileExists(t, stale)
		assert.FileExists(t, filepath.Join(site.Output, "day-1.html"))
	})

	t.Run("output that cannot be created is fatal", func(t *testing.T) {
		t.Parallel()

		site := testSite(t)
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
		site.Output = filepath.Join(blocker, "docs")
		tmpl, err := builder.LoadTemplates("")
		require.NoError(t, err)

		_, err = builder.BuildSite(context.Background(), site, tmpl, builder.BuildOptions{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create output directory")
	})
}

func TestLoadTemplates_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range builder.TemplateFiles {
		data, err := fs.ReadFile(builder.DefaultTemplates(), name)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}

	tmpl, err := builder.LoadTemplates(dir)
	require.NoError(t, err)
	page, err := builder.NewRenderer(config.Default(), tmpl).RenderDay(1, "", nil)
	require.NoError(t, err)
	assert.Contains(t, string(page), "No code files found for this day.")

	_, err = builder.LoadTemplates(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

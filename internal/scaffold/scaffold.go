// internal/scaffold/scaffold.go
package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"daysite/internal/builder"
	"daysite/internal/config"
	"daysite/internal/journal"
	"daysite/internal/util"
)

// TemplatesDir is where CreateNewSite copies the built-in templates.
const TemplatesDir = "templates"

// CreateNewSite writes a starter project into dir: a site.yaml, a day log
// with a first entry and its code directory. With withTemplates the built-in
// page templates are copied as well and referenced from site.yaml.
func CreateNewSite(dir string, withTemplates bool) error {
	fmt.Println("Scaffolding new site in:", dir)
	mkdir := func(path string) error { return os.MkdirAll(filepath.Join(dir, path), 0755) }
	writeFile := func(path, content string) error {
		return os.WriteFile(filepath.Join(dir, path), []byte(content), 0644)
	}

	if err := mkdir(util.DayDirName(1)); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", util.DayDirName(1), err)
	}

	siteYaml, err := renderSiteYaml(withTemplates)
	if err != nil {
		return err
	}
	files := map[string]string{
		"site.yaml": siteYaml,
		"README.md": readmeContent,
		filepath.Join(util.DayDirName(1), "vector_add.cu"): vectorAddContent,
	}
	for path, content := range files {
		if err := writeFile(path, content); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
	}

	if withTemplates {
		if err := mkdir(TemplatesDir); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", TemplatesDir, err)
		}
		for _, name := range builder.TemplateFiles {
			data, err := fs.ReadFile(builder.DefaultTemplates(), name)
			if err != nil {
				return err
			}
			if err := writeFile(filepath.Join(TemplatesDir, name), string(data)); err != nil {
				return fmt.Errorf("failed to write file %s: %w", name, err)
			}
		}
	}

	fmt.Println("Site scaffolded. You can now:")
	fmt.Println("  cd", dir)
	fmt.Println("  daysite gen")
	fmt.Println("  daysite watch")
	return nil
}

func renderSiteYaml(withTemplates bool) (string, error) {
	tmpl, err := template.New("site.yaml").Parse(siteYamlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse site.yaml template: %w", err)
	}
	data := struct {
		Site      config.SiteConfig
		Templates string
	}{
		Site: config.Default(),
	}
	if withTemplates {
		data.Templates = TemplatesDir
	}

	var output bytes.Buffer
	if err := tmpl.Execute(&output, data); err != nil {
		return "", fmt.Errorf("failed to execute site.yaml template: %w", err)
	}
	return output.String(), nil
}

// CreateNewDay appends a "## Day N: title" entry to the site's day log and
// creates the day's code directory. It refuses to add a day that the log
// already describes.
func CreateNewDay(site config.SiteConfig, day int, title string) error {
	if day < 1 {
		return fmt.Errorf("day must be at least 1, got %d", day)
	}
	existing, err := journal.ParseFile(site.Readme)
	if err != nil {
		return err
	}
	if _, ok := existing[day]; ok {
		return fmt.Errorf("day %d already exists in %s", day, site.Readme)
	}

	dir := util.DayDir(site.SourceRoot, day)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	entry := fmt.Sprintf("## Day %d: %s\n\nWrite something meaningful here.\n", day, strings.TrimSpace(title))
	data, err := os.ReadFile(site.Readme)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if len(data) > 0 {
		sep := "\n"
		if !bytes.HasSuffix(data, []byte("\n")) {
			sep = "\n\n"
		}
		entry = sep + entry
	}

	f, err := os.OpenFile(site.Readme, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(entry); err != nil {
		return err
	}

	fmt.Println("Created:", dir)
	return nil
}

const siteYamlTemplate = `title: {{ .Site.Title }}
tagline: {{ .Site.Tagline }}
heading: {{ .Site.Heading }}
links:
  - label: GitHub Repository
    url: https://github.com/you/your-repo
footer:
{{- range .Site.Footer }}
  - {{ . }}
{{- end }}
readme: {{ .Site.Readme }}
source_root: {{ .Site.SourceRoot }}
output: {{ .Site.Output }}
days: {{ .Site.Days }}
markdown: false
unsafe: false
{{- if .Templates }}
templates: {{ .Templates }}
{{- end }}
`

const readmeContent = `# 100 Days of GPU Programming

Notes for each day live under a "## Day N" header; code lives in "day NN/".

## Day 1: Vector addition

First CUDA kernel: one thread per element.
`

const vectorAddContent = `__global__ void vectorAdd(const float *a, const float *b, float *c, int n) {
    int i = blockIdx.x * blockDim.x + threadIdx.x;
    if (i < n) {
        c[i] = a[i] + b[i];
    }
}
`

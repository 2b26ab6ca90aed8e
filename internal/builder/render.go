// internal/builder/render.go
package builder

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path/filepath"
	"strings"

	"daysite/internal/config"
	"daysite/internal/journal"
	"daysite/internal/source"
	dayutil "daysite/internal/util"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateFiles are the files a template directory must provide.
var TemplateFiles = []string{"style.html", "day.html", "index.html"}

// DefaultTemplates exposes the built-in templates, e.g. for scaffolding.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadTemplates parses the page templates from dir, or the built-in ones
// when dir is empty.
func LoadTemplates(dir string) (*template.Template, error) {
	if dir == "" {
		return template.ParseFS(templateFS, "templates/*.html")
	}
	paths := make([]string, len(TemplateFiles))
	for i, name := range TemplateFiles {
		paths[i] = filepath.Join(dir, name)
	}
	return template.ParseFiles(paths...)
}

const (
	noDescription = "<p>No description available for this day.</p>"
	noPreview     = "Click to view details"
)

// Renderer turns days into complete HTML documents. Rendering is a pure
// function of its inputs and safe for concurrent use.
type Renderer struct {
	site      config.SiteConfig
	tmpl      *template.Template
	markdown  goldmark.Markdown  // nil keeps descriptions verbatim
	sanitizer *bluemonday.Policy // nil when unsafe
}

// NewRenderer returns a Renderer for site using the parsed page templates.
func NewRenderer(site config.SiteConfig, tmpl *template.Template) *Renderer {
	r := &Renderer{site: site, tmpl: tmpl}
	if site.Markdown {
		r.markdown = newMarkdown()
		if !site.Unsafe {
			r.sanitizer = bluemonday.UGCPolicy()
		}
	}
	return r
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(newDayLinkTransformer(), 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// RenderDay renders the page of a single day.
func (r *Renderer) RenderDay(day int, description string, files []source.File) ([]byte, error) {
	desc, err := r.description(description)
	if err != nil {
		return nil, fmt.Errorf("day %d: %w", day, err)
	}

	page := DayPage{
		Site:        r.site,
		Day:         day,
		Description: desc,
		Files:       make([]FileBlock, 0, len(files)),
	}
	if day > 1 {
		page.PrevDay = day - 1
		page.PrevPage = dayutil.DayPageName(day - 1)
	}
	if day < r.site.Days {
		page.NextDay = day + 1
		page.NextPage = dayutil.DayPageName(day + 1)
	}
	for _, f := range files {
		page.Files = append(page.Files, FileBlock{
			Path:     f.Path,
			Language: f.Language(),
			Code:     template.HTML(EscapeCode(f.Content)),
		})
	}
	return r.execute("day", page)
}

// RenderIndex renders the index page with one card per configured day,
// whether or not the day has a description.
func (r *Renderer) RenderIndex(descriptions map[int]string) ([]byte, error) {
	page := IndexPage{
		Site:  r.site,
		Cards: make([]Card, 0, r.site.Days),
	}
	for day := 1; day <= r.site.Days; day++ {
		preview := journal.Preview(descriptions[day])
		if preview == "" {
			preview = noPreview
		}
		page.Cards = append(page.Cards, Card{
			Day:     day,
			Page:    dayutil.DayPageName(day),
			Preview: template.HTML(preview),
		})
	}
	for _, line := range r.site.Footer {
		page.Footer = append(page.Footer, template.HTML(line))
	}
	return r.execute("index", page)
}

// description prepares the description block. In the default mode the text
// is inserted as is; Markdown mode renders it and sanitizes the result.
func (r *Renderer) description(text string) (template.HTML, error) {
	if text == "" {
		return noDescription, nil
	}
	if r.markdown == nil {
		return template.HTML(text), nil
	}

	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}
	if r.sanitizer != nil {
		return template.HTML(r.sanitizer.SanitizeBytes(buf.Bytes())), nil
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to execute %s template: %w", name, err)
	}
	return buf.Bytes(), nil
}

// EscapeCode substitutes the entities for code content. The ampersand goes
// first so the entities added afterwards are not escaped again.
func EscapeCode(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

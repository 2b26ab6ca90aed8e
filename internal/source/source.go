// Package source collects the code files that belong to a single day.
package source

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"daysite/internal/util"

	"github.com/gomarkdown/markdown"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// languages maps the recognized extensions to Prism language identifiers.
var languages = map[string]string{
	".cu":  "cuda",
	".cuh": "cuda",
	".cpp": "cpp",
	".c":   "c",
	".h":   "c",
	".py":  "python",
	".md":  "markdown",
}

// FallbackLanguage is used for extensions outside the table.
const FallbackLanguage = "clike"

// Language returns the highlighting identifier for a file name.
func Language(name string) string {
	if lang, ok := languages[filepath.Ext(name)]; ok {
		return lang
	}
	return FallbackLanguage
}

// Recognized reports whether a file's extension is one the collector reads.
func Recognized(name string) bool {
	_, ok := languages[filepath.Ext(name)]
	return ok
}

// File is one code file of a day.
type File struct {
	Path    string // relative to the day directory, slash separated
	Content string
}

// Language returns the highlighting identifier for the file.
func (f File) Language() string {
	return Language(f.Path)
}

// Collector reads day directories below Root.
type Collector struct {
	Root   string
	Logger *slog.Logger
}

// NewCollector returns a Collector rooted at root. A nil logger discards.
func NewCollector(root string, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Collector{Root: root, Logger: logger}
}

// Collect returns the recognized files of a day in lexical path order.
// A missing directory yields no files. Files that cannot be read are
// logged and skipped.
func (c *Collector) Collect(day int) []File {
	dir := util.DayDir(c.Root, day)
	if _, err := os.Stat(dir); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.Logger.Warn("cannot open day directory", "day", day, "dir", dir, "err", err)
		}
		return nil
	}

	var files []File
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			c.Logger.Warn("skipping unreadable path", "day", day, "path", path, "err", err)
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !Recognized(d.Name()) || !isRegular(path, d) {
			return nil
		}

		content, err := readText(path)
		if err != nil {
			c.Logger.Warn("skipping unreadable file", "day", day, "path", path, "err", err)
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		files = append(files, File{Path: filepath.ToSlash(rel), Content: content})
		return nil
	})
	return files
}

// readText decodes a file as UTF-8, replacing invalid bytes with U+FFFD and
// dropping a leading byte order mark.
func readText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	dec := unicode.UTF8BOM.NewDecoder()
	data, err := io.ReadAll(transform.NewReader(f, dec))
	if err != nil {
		return "", err
	}
	return string(markdown.NormalizeNewlines(data)), nil
}

// isRegular follows symlinks so that linked sources are collected too.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// internal/builder/goldmark_extensions.go
package builder

import (
	"regexp"
	"strconv"

	"daysite/internal/util"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// dayDirLinkRe matches links into a day's source directory, e.g.
// "day 03/kernel.cu", "./day%2003" or "day 3/".
var dayDirLinkRe = regexp.MustCompile(`^(?:\./)?day(?: |%20)(\d+)(?:/.*)?$`)

// dayLinkTransformer points links at day directories to the generated day
// page instead, since the directories are not part of the output.
type dayLinkTransformer struct{}

func newDayLinkTransformer() parser.ASTTransformer {
	return &dayLinkTransformer{}
}

func (t *dayLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		if dest, ok := dayPageFor(link.Destination); ok {
			link.Destination = dest
		}
		return ast.WalkContinue, nil
	})
}

// dayPageFor returns the page a day directory link should point to.
func dayPageFor(dest []byte) ([]byte, bool) {
	m := dayDirLinkRe.FindSubmatch(dest)
	if m == nil {
		return nil, false
	}
	day, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return nil, false
	}
	return []byte(util.DayPageName(day)), true
}

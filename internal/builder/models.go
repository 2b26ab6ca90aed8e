// internal/builder/models.go
package builder

import (
	"html/template"

	"daysite/internal/config"
)

// DayPage is the data passed to the "day" template.
type DayPage struct {
	Site        config.SiteConfig
	Day         int
	PrevPage    string // empty on the first day
	PrevDay     int
	NextPage    string // empty on the last day
	NextDay     int
	Description template.HTML // inserted verbatim; empty renders a placeholder
	Files       []FileBlock
}

// FileBlock is one code file on a day page.
type FileBlock struct {
	Path     string
	Language string
	Code     template.HTML // already entity-escaped
}

// IndexPage is the data passed to the "index" template.
type IndexPage struct {
	Site   config.SiteConfig
	Cards  []Card
	Footer []template.HTML
}

// Card is one day on the index page.
type Card struct {
	Day     int
	Page    string
	Preview template.HTML
}

// internal/util/util.go
package util

import (
	"fmt"
	"path/filepath"
)

// DayDirName returns the conventional directory name holding a day's code,
// e.g. "day 07" for day 7.
func DayDirName(day int) string {
	return fmt.Sprintf("day %02d", day)
}

// DayDir joins the source root with the day's directory name.
func DayDir(root string, day int) string {
	return filepath.Join(root, DayDirName(day))
}

// DayPageName returns the output file name of a day page, e.g. "day-7.html".
// Pages are not zero padded, unlike the source directories.
func DayPageName(day int) string {
	return fmt.Sprintf("day-%d.html", day)
}

// IndexPageName is the output file name of the index page.
const IndexPageName = "index.html"

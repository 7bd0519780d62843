package exercise

import (
	"regexp"
	"strings"

	"github.com/faizmokh/liftlog/internal/files"
)

// space widens RE2's \s to every Unicode space separator plus U+2028, U+2029 and the BOM.
const space = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	nonWordPattern   = regexp.MustCompile(`[^\w` + space + `-]`)
	separatorPattern = regexp.MustCompile(`[` + space + `_-]+`)
	edgeHyphens      = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives the file name stem for an exercise title. Titles that differ only
// in case or punctuation map to the same slug and therefore the same file.
// Degenerate titles such as "!!!" produce an empty slug.
func Slugify(title string) string {
	slug := strings.TrimSpace(strings.ToLower(title))
	slug = nonWordPattern.ReplaceAllString(slug, "")
	slug = separatorPattern.ReplaceAllString(slug, "-")
	return edgeHyphens.ReplaceAllString(slug, "")
}

// ValidateSlug reports whether slug can name an exercise document. The empty slug
// and the index file's own stem are rejected.
func ValidateSlug(slug string) error {
	switch slug {
	case "":
		return ErrEmptySlug
	case files.SlugFromFile(files.IndexFileName):
		return ErrReservedSlug
	}
	return nil
}

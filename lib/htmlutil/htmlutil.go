package htmlutil

import (
	"regexp"
	"strings"
	"unicode"
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// collapses scraped text into a single printable line. vendor pages pad
// theme titles with newlines, tabs and zero width characters.
func CleanText(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	cleaned := strings.Trim(newStr.String(), " \t\n")
	return innerWhitespace.ReplaceAllString(cleaned, " ")
}

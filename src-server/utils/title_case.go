package utils

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var spanishTitle = cases.Title(language.Spanish)

// TitleCase uppercases the first letter of each word the Spanish way; used
// for weekday labels in headers.
func TitleCase(s string) string {
	return spanishTitle.String(s)
}

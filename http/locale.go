package http

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var localeMatcher = language.NewMatcher([]language.Tag{
	language.English, // default
	language.Spanish,
})

// printerFor returns a message printer for the request's Accept-Language, so
// the rendered prediction uses the visitor's number format.
func printerFor(r *http.Request) *message.Printer {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return message.NewPrinter(language.English)
	}
	tag, _, _ := localeMatcher.Match(tags...)
	return message.NewPrinter(tag)
}

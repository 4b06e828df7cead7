// Package sanitize owns the HTML allow-list policies applied to all
// user-supplied text before it is persisted. Repositories store what they
// are given; every write path goes through here first.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var (
	// richPolicy covers admin-authored page content: the UGC defaults plus
	// headings, images and styled containers so basic page layout survives.
	richPolicy = newRichPolicy()

	// strictPolicy covers plain prose fields (titles, applicant free text):
	// all markup stripped, text content kept.
	strictPolicy = bluemonday.StrictPolicy()
)

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img", "h1", "h2")
	p.AllowAttrs("src", "alt", "title", "width", "height", "loading", "class").OnElements("img")
	p.AllowAttrs("href", "name", "target", "class").OnElements("a")
	p.AllowAttrs("class", "id", "style").OnElements("div", "span")
	p.AllowStandardURLs()
	return p
}

// Rich sanitizes rich-text page content (the ContentBlock content field).
func Rich(s string) string {
	return richPolicy.Sanitize(s)
}

// Strict sanitizes plain prose fields: titles, subtitles, applicant
// experience/message text and admin notes.
func Strict(s string) string {
	return strictPolicy.Sanitize(s)
}

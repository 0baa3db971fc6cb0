package sanitizer

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags removes markup from s and leaves everything else untouched.
// Tags, comments, doctypes and processing instructions are dropped. A '>'
// inside a quoted attribute or a comment does not end the markup early, an
// unterminated tag runs to the end of the input, and a '<' that cannot start
// a tag is plain text. Entities are not decoded, so "&amp;" stays "&amp;" and
// the text between tags, including script bodies, is kept.
func StripTags(s string) string {
	if s == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Raw())
		case html.StartTagToken:
			// Tags inside script, style, title and similar elements are
			// markup too.
			z.NextIsNotRawText()
		}
	}
}

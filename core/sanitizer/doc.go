// Package sanitizer cleans user supplied strings.
//
// StripTags turns an HTML fragment into its text content by dropping markup
// only, the way a plain-text alternative for an HTML email is produced:
//
//	sanitizer.StripTags("<p>Hello <b>there</b></p>") // "Hello there"
package sanitizer

// Package naming repairs names that are not valid OAS 3.0 component keys.
//
// OAS 3.0 restricts the keys of components maps to ^[a-zA-Z0-9.\-_]+$.
// Swagger 2.0 definitions carry no such restriction, so third-party
// generators frequently produce names like "Response[User]" or
// "Page<Item>". When such a name is carried into components during upgrade
// it must be rewritten, and every reference to it rewritten to match.
package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titler capitalizes the first rune of each word without lowering the rest,
// so acronym-heavy names like "HTTPError" survive intact.
var titler = cases.Title(language.English, cases.NoLower)

// IsValidComponentKey reports whether name is a legal OAS 3.0 components
// map key, i.e. matches ^[a-zA-Z0-9.\-_]+$.
func IsValidComponentKey(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !isComponentKeyRune(r) {
			return false
		}
	}
	return true
}

// SanitizeComponentKey rewrites name into a valid component key. Runs of
// invalid runes split the name into words; each word after the first is
// title-cased and the words are concatenated:
//
//	Response[User]  -> ResponseUser
//	Page<Item,int>  -> PageItemInt
//	my schema       -> mySchema
//
// A name that is already valid is returned unchanged. If nothing survives
// sanitization the placeholder "Schema" is returned.
func SanitizeComponentKey(name string) string {
	if IsValidComponentKey(name) {
		return name
	}

	var words []string
	var current strings.Builder
	for _, r := range name {
		if isComponentKeyRune(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	if len(words) == 0 {
		return "Schema"
	}

	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(titler.String(w))
	}
	return b.String()
}

func isComponentKeyRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '-' || r == '_':
		return true
	}
	return false
}

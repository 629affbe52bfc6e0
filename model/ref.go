package model

import "strings"

// Reference is a parsed $ref pointer. It represents the pointer only; it
// holds no link to the referenced value and is never resolved by this
// package.
//
// Pointers rooted at "#/" are split into document-root-relative segments,
// e.g. "#/components/schemas/Pet" becomes ["components", "schemas", "Pet"].
// Anything else (external files, URLs, malformed strings) is retained as an
// opaque foreign reference so documents with external refs still round-trip.
type Reference struct {
	// Raw is the reference string exactly as it appeared in the document
	Raw string
	// Segments are the path segments for local references, nil for foreign ones
	Segments []string
	// Foreign is true when the pointer is not rooted at "#/"
	Foreign bool
}

// ParseReference parses a $ref string. It never fails: non-local pointers
// come back with Foreign set.
func ParseReference(raw string) Reference {
	if !strings.HasPrefix(raw, "#/") {
		return Reference{Raw: raw, Foreign: true}
	}
	return Reference{
		Raw:      raw,
		Segments: strings.Split(raw[2:], "/"),
	}
}

// String returns the raw reference string for serialization.
func (r Reference) String() string {
	return r.Raw
}

// IsZero reports whether the reference is unset.
func (r Reference) IsZero() bool {
	return r.Raw == ""
}

// Name returns the last path segment of a local reference, or "" for
// foreign references. For "#/components/schemas/Pet" this is "Pet".
func (r Reference) Name() string {
	if len(r.Segments) == 0 {
		return ""
	}
	return r.Segments[len(r.Segments)-1]
}

// InComponents reports whether a local reference points into the named
// components section, e.g. r.InComponents("schemas").
func (r Reference) InComponents(section string) bool {
	return len(r.Segments) == 3 && r.Segments[0] == "components" && r.Segments[1] == section
}

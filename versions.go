package oasdoc

import (
	"strconv"
	"strings"
)

// OASVersion represents each canonical version of the OpenAPI Specification
// this module models. Only the 2.0 and 3.0.x releases are supported; the
// 3.1.x and later series use a different schema dialect.
type OASVersion int

const (
	// Unknown represents an unknown or unsupported OAS version
	Unknown OASVersion = iota
	// OASVersion20 OpenAPI Specification Version 2.0 (Swagger)
	OASVersion20
	// OASVersion300 OpenAPI Specification Version 3.0.0
	OASVersion300
	// OASVersion301 OpenAPI Specification Version 3.0.1
	OASVersion301
	// OASVersion302 OpenAPI Specification Version 3.0.2
	OASVersion302
	// OASVersion303 OpenAPI Specification Version 3.0.3
	OASVersion303
	// OASVersion304 OpenAPI Specification Version 3.0.4
	OASVersion304
)

// maxPatch30 is the highest known patch release in the 3.0.x series.
const maxPatch30 = 4

var (
	versionToString = map[OASVersion]string{
		OASVersion20:  "2.0",
		OASVersion300: "3.0.0",
		OASVersion301: "3.0.1",
		OASVersion302: "3.0.2",
		OASVersion303: "3.0.3",
		OASVersion304: "3.0.4",
	}

	stringToVersion = func() map[string]OASVersion {
		m := make(map[string]OASVersion, len(versionToString))
		for k, v := range versionToString {
			m[v] = k
		}
		return m
	}()
)

func (v OASVersion) String() string {
	if s, ok := versionToString[v]; ok {
		return s
	}
	return "unknown"
}

// IsValid returns true if this is a supported version
func (v OASVersion) IsValid() bool {
	_, ok := versionToString[v]
	return ok
}

// IsLegacy returns true for OAS 2.0, the only version parsed through the
// legacy document model.
func (v OASVersion) IsLegacy() bool {
	return v == OASVersion20
}

// ParseVersion attempts to parse the string s into an OASVersion, and
// returns false if s names no supported version. This function supports:
//  1. Exact version matches (e.g., "2.0", "3.0.3")
//  2. Future patch versions in the 3.0.x series, which clamp to the
//     latest known patch (e.g., "3.0.7" maps to "3.0.4")
//  3. Pre-release suffixes, which are stripped (e.g., "3.0.0-rc1" maps
//     to "3.0.0")
//
// Versions in the 3.1.x and later series are not supported and return
// false.
func ParseVersion(s string) (OASVersion, bool) {
	if v, ok := stringToVersion[s]; ok {
		return v, true
	}

	major, minor, patch, ok := splitVersion(s)
	if !ok {
		return Unknown, false
	}

	if major == 2 {
		if minor == 0 {
			return OASVersion20, true
		}
		return Unknown, false
	}
	if major == 3 && minor == 0 {
		if patch > maxPatch30 {
			patch = maxPatch30
		}
		return OASVersion300 + OASVersion(patch), true
	}
	return Unknown, false
}

// splitVersion breaks "major.minor.patch[-prerelease]" into its numeric
// segments. A missing patch segment defaults to zero.
func splitVersion(s string) (major, minor, patch int, ok bool) {
	if idx := strings.IndexAny(s, "-+"); idx >= 0 {
		s = s[:idx]
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, false
	}
	segs := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, 0, 0, false
		}
		segs[i] = n
	}
	return segs[0], segs[1], segs[2], true
}

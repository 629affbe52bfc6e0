package oasdoc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/specmorph/oasdoc/legacy"
	"github.com/specmorph/oasdoc/model"
	"github.com/specmorph/oasdoc/specerrors"
	"github.com/specmorph/oasdoc/upgrade"
)

// Logger is the structured logging interface accepted throughout the
// module. See [model.Logger].
type Logger = model.Logger

// ParseResult holds a parsed document together with the version it was
// detected as. The document is always a 3.0 model; 2.0 input is run
// through the upgrade engine and its notes are carried on the result.
type ParseResult struct {
	// Document is the parsed (and possibly upgraded) 3.0 document
	Document *model.Document
	// Version is the version detected from the source tree
	Version OASVersion
	// Upgraded is true when the source was a 2.0 document
	Upgraded bool
	// Notes lists upgrade decisions, empty for 3.0 input
	Notes []upgrade.Note
}

// DetectVersion inspects the top-level version tag of a document tree.
// A "swagger" key selects the 2.0 series and an "openapi" key selects
// the 3.0.x series; anything else is an unsupported version error.
func DetectVersion(tree map[string]any) (OASVersion, error) {
	if raw, ok := tree["swagger"]; ok {
		if v, ok := ParseVersion(versionTag(raw)); ok && v.IsLegacy() {
			return v, nil
		}
		return Unknown, &specerrors.UnsupportedVersionError{Value: versionTag(raw)}
	}
	if raw, ok := tree["openapi"]; ok {
		if v, ok := ParseVersion(versionTag(raw)); ok && !v.IsLegacy() {
			return v, nil
		}
		return Unknown, &specerrors.UnsupportedVersionError{Value: versionTag(raw)}
	}
	return Unknown, &specerrors.UnsupportedVersionError{}
}

// versionTag renders a raw version tag value as a string. YAML decodes
// an unquoted tag like 2.0 as a float, so numeric values are
// stringified with their trailing zero restored instead of being
// reported as a missing key.
func versionTag(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatFloat(v, 'f', 1, 64)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Parse decodes a document tree into the 3.0 model, dispatching on the
// detected version tag. A 2.0 document is parsed through the legacy
// model and upgraded; opts configure the upgrade engine and are ignored
// for 3.0 input.
func Parse(tree map[string]any, opts ...upgrade.Option) (*ParseResult, error) {
	version, err := DetectVersion(tree)
	if err != nil {
		return nil, err
	}

	if version.IsLegacy() {
		src, err := legacy.ParseDocument(tree)
		if err != nil {
			return nil, err
		}
		upgraded, err := upgrade.Upgrade(src, opts...)
		if err != nil {
			return nil, err
		}
		return &ParseResult{
			Document: upgraded.Document,
			Version:  version,
			Upgraded: true,
			Notes:    upgraded.Notes,
		}, nil
	}

	doc, err := model.ParseDocument(tree)
	if err != nil {
		return nil, err
	}
	return &ParseResult{Document: doc, Version: version}, nil
}

// Package httputil provides HTTP-related validation utilities and constants.
package httputil

import (
	"strconv"
	"strings"
)

// HTTP status code constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
)

// HTTP method constants, lowercase as they appear as path item keys
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0 only
)

// Wildcard boundary characters for validation
const (
	minWildcardBoundary = '1'
	maxWildcardBoundary = '5'
)

// Methods2 lists the path item keys OAS 2.0 recognizes as operations.
var Methods2 = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete, MethodOptions, MethodHead, MethodPatch,
}

// Methods3 lists the path item keys OAS 3.0 recognizes as operations.
var Methods3 = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete, MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// ValidateStatusCode checks if a responses key is valid according to the
// OpenAPI spec. Valid values are:
//   - "default" for the default response
//   - extension fields starting with "x-"
//   - wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" {
		return true
	}

	if strings.HasPrefix(code, "x-") {
		return true
	}

	if len(code) == StatusCodeLength {
		// Wildcard patterns (e.g., "2XX", "4XX")
		if code[1] == WildcardChar && code[2] == WildcardChar {
			return code[0] >= minWildcardBoundary && code[0] <= maxWildcardBoundary
		}

		// Numeric codes
		if statusCode, err := strconv.Atoi(code); err == nil {
			return statusCode >= MinStatusCode && statusCode <= MaxStatusCode
		}
	}

	return false
}

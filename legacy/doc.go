// Package legacy models OpenAPI 2.0 (Swagger) documents.
//
// The types mirror the 2.0 object layout: flat host/basePath/schemes
// fields instead of servers, body and formData parameter locations,
// definitions instead of component schemas. Schema nodes reuse the
// variant engine from the model package, since 2.0 schema objects are
// the same JSON Schema subset.
//
// Documents parsed here are typically fed to the upgrade package, which
// rewrites them as OpenAPI 3.0.
package legacy

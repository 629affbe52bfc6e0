// Package model provides the typed in-memory representation of an OpenAPI
// 3.0 document, built from and serialized back to a schema-less tree
// (map[string]any, the shape produced by standard JSON or YAML parsing).
//
// The central type is [Schema], a closed tagged union over the shapes the
// Schema Object can take: a reference, a composition (allOf/anyOf/oneOf/not),
// one of the concrete type facets, or the untyped catch-all. Exactly one
// variant is populated per schema; variant selection follows fixed
// precedence rules rather than ad hoc field inspection.
//
// Every modeled object carries an [Extensions] map preserving vendor x-*
// fields and any keys the model does not name, so a parse/serialize
// round-trip does not discard unknown data.
//
// The package does not resolve $ref pointers and does not validate documents
// against the OpenAPI meta-schema; [Reference] only represents the pointer.
package model

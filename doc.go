// Package oasdoc provides a typed in-memory model of OpenAPI Specification
// documents, covering OAS 2.0 (Swagger) and the OAS 3.0.x series.
//
// The library consists of three primary packages:
//
//   - model: the 3.0 document model, parsed from and serialized to
//     schema-less trees (map[string]any)
//   - legacy: the 2.0 document model with the same tree interface
//   - upgrade: a deterministic 2.0 to 3.0 transformation that reports
//     every lossy or approximated mapping as a note
//
// # Quick Start
//
// Parse a document of either version:
//
//	import "github.com/specmorph/oasdoc"
//
//	result, err := oasdoc.ParseYAML(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Version: %s\n", result.Version)
//	// result.Document is always a 3.0 model; 2.0 input is upgraded.
//
// Work with the 3.0 model directly:
//
//	import "github.com/specmorph/oasdoc/model"
//
//	doc, err := model.ParseDocument(tree)
//	if err != nil {
//		log.Fatal(err)
//	}
//	schema, err := doc.SchemaByName("Pet")
//
// Upgrade a 2.0 document explicitly:
//
//	import (
//		"github.com/specmorph/oasdoc/legacy"
//		"github.com/specmorph/oasdoc/upgrade"
//	)
//
//	swagger, err := legacy.ParseDocument(tree)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := upgrade.Upgrade(swagger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, note := range result.Notes {
//		fmt.Println(note.String())
//	}
//
// # Error Handling
//
// All packages report failure through the specerrors package, which
// provides sentinel errors for errors.Is and structured types for
// errors.As. Parse errors carry the dotted tree path of the offending
// node. Upgrade degradations are never errors; they are accumulated as
// notes on the result so a caller can audit exactly what was
// approximated.
//
// # Version Support
//
//   - OAS 2.0 (Swagger): https://spec.openapis.org/oas/v2.0.html
//   - OAS 3.0.x (3.0.0 - 3.0.4): https://spec.openapis.org/oas/v3.0.0.html
//
// Future patch releases in the 3.0.x series are accepted and clamped to
// the latest known patch. The 3.1.x and later series use a different
// schema dialect and are rejected as unsupported.
package oasdoc

// Package upgrade rewrites OpenAPI 2.0 documents as OpenAPI 3.0.
//
// The transformation is total: any well-formed 2.0 document produces a
// 3.0 document. Constructs without a 3.0 equivalent degrade to the
// nearest representation and the loss is reported as a Note rather than
// an error. Errors are reserved for inputs the engine cannot represent
// at all, such as an operation mixing body and formData parameters.
//
// The same input always produces the same output and the same notes.
package upgrade

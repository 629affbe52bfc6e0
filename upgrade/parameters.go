package upgrade

import (
	"fmt"

	"github.com/specmorph/oasdoc/legacy"
	"github.com/specmorph/oasdoc/model"
	"github.com/specmorph/oasdoc/specerrors"
)

// ExtensionKeyCollectionFormat preserves a collectionFormat value that
// has no 3.0 style equivalent.
const ExtensionKeyCollectionFormat = "x-oasdoc-collection-format"

// convertParameter converts a non-body, non-formData 2.0 parameter.
func (c *converter) convertParameter(src *legacy.Parameter, path string) *model.Parameter {
	dst := &model.Parameter{
		Name:        src.Name,
		In:          src.In,
		Description: src.Description,
		Required:    src.Required,
		Extra:       src.Extra.Clone(),
	}
	if src.AllowEmptyValue {
		dst.AllowEmptyValue = true
		c.addNote(path, "allowEmptyValue is deprecated in 3.0", SeverityInfo)
	}

	dst.Schema = c.simpleSchemaToSchema(&src.SimpleSchema, path)

	if src.Type == "array" {
		c.applyCollectionFormat(dst, src.CollectionFormat, path)
	}
	return dst
}

// applyCollectionFormat maps a 2.0 collectionFormat onto 3.0 style and
// explode. Formats without an equivalent are preserved verbatim under a
// vendor extension so no information is discarded.
func (c *converter) applyCollectionFormat(dst *model.Parameter, format, path string) {
	formLocation := dst.In == model.ParamInQuery

	switch format {
	case "", legacy.CollectionCSV:
		if formLocation {
			// 2.0 defaults to csv; the 3.0 query default is
			// form with explode, so csv must be spelled out.
			dst.Style = "form"
			dst.Explode = boolPtr(false)
		}
	case legacy.CollectionMulti:
		if formLocation {
			dst.Style = "form"
			dst.Explode = boolPtr(true)
		} else {
			c.degradeCollectionFormat(dst, format, path)
		}
	case legacy.CollectionPipes:
		if formLocation {
			dst.Style = "pipeDelimited"
			dst.Explode = boolPtr(false)
		} else {
			c.degradeCollectionFormat(dst, format, path)
		}
	case legacy.CollectionSSV:
		if formLocation {
			dst.Style = "spaceDelimited"
			dst.Explode = boolPtr(false)
		} else {
			c.degradeCollectionFormat(dst, format, path)
		}
	default:
		c.degradeCollectionFormat(dst, format, path)
	}
}

func (c *converter) degradeCollectionFormat(dst *model.Parameter, format, path string) {
	if dst.Extra == nil {
		dst.Extra = make(model.Extensions)
	}
	dst.Extra[ExtensionKeyCollectionFormat] = format
	c.addNoteWithContext(path,
		fmt.Sprintf("collectionFormat %q for %s parameters has no 3.0 style equivalent", format, dst.In),
		"original value preserved under "+ExtensionKeyCollectionFormat, SeverityWarning)
}

// bodyToRequestBody turns a 2.0 body parameter into a request body with
// one media type entry per consumed type.
func (c *converter) bodyToRequestBody(src *legacy.Parameter, op *legacy.Operation, path string) *model.RequestBody {
	rb := &model.RequestBody{
		Description: src.Description,
		Required:    src.Required,
		Extra:       src.Extra.Clone(),
	}
	consumes := c.consumes(op)
	rb.Content = make(map[string]*model.MediaType, len(consumes))
	for _, mediaType := range consumes {
		rb.Content[mediaType] = &model.MediaType{Schema: src.Schema.Clone()}
	}
	if src.Name != "" {
		c.addNote(path, fmt.Sprintf("body parameter name %q has no 3.0 equivalent, dropped", src.Name), SeverityInfo)
	}
	return rb
}

// formToRequestBody aggregates formData parameters into a single object
// schema. Each parameter becomes a one-property object and the objects
// are folded together, so duplicate names surface as merge conflicts.
func (c *converter) formToRequestBody(form []*legacy.Parameter, path string) (*model.RequestBody, error) {
	var (
		merged      *model.Schema
		hasFile     bool
		anyRequired bool
	)
	for i, param := range form {
		paramPath := fmt.Sprintf("%s.parameters[%d]", path, i)
		if param.Type == "file" {
			hasFile = true
		}
		if param.Required {
			anyRequired = true
		}

		prop := c.simpleSchemaToSchema(&param.SimpleSchema, paramPath)
		if param.Description != "" {
			prop.Description = param.Description
		}

		single := &model.Schema{}
		kind := model.ObjectKind{
			Properties: map[string]*model.Schema{param.Name: prop},
		}
		if param.Required {
			kind.Required = []string{param.Name}
		}
		single.Kind = kind

		var err error
		if merged, err = model.Merge(merged, single); err != nil {
			return nil, &specerrors.UpgradeError{
				Path:    paramPath,
				Message: fmt.Sprintf("cannot aggregate formData parameter %q", param.Name),
				Cause:   err,
			}
		}
	}

	mediaType := "application/x-www-form-urlencoded"
	if hasFile {
		mediaType = "multipart/form-data"
	}
	c.addNote(path, fmt.Sprintf("formData parameters aggregated into a %s request body", mediaType), SeverityInfo)

	return &model.RequestBody{
		Required: anyRequired,
		Content: map[string]*model.MediaType{
			mediaType: {Schema: merged},
		},
	}, nil
}

// convertHeader converts a 2.0 response header.
func (c *converter) convertHeader(src *legacy.Header, path string) *model.Header {
	dst := &model.Header{
		Description: src.Description,
		Extra:       src.Extra.Clone(),
	}
	dst.Schema = c.simpleSchemaToSchema(&src.SimpleSchema, path)
	if src.Type == "array" && src.CollectionFormat != "" && src.CollectionFormat != legacy.CollectionCSV {
		if dst.Extra == nil {
			dst.Extra = make(model.Extensions)
		}
		dst.Extra[ExtensionKeyCollectionFormat] = src.CollectionFormat
		c.addNote(path,
			fmt.Sprintf("header collectionFormat %q has no 3.0 equivalent, preserved as an extension", src.CollectionFormat),
			SeverityWarning)
	}
	return dst
}

func boolPtr(b bool) *bool {
	return &b
}

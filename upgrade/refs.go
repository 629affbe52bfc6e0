package upgrade

import (
	"strings"

	"github.com/specmorph/oasdoc/internal/maputil"
	"github.com/specmorph/oasdoc/internal/naming"
	"github.com/specmorph/oasdoc/model"
)

// refSectionMap maps 2.0 reference roots to their components sections.
var refSectionMap = map[string]string{
	"definitions":         "schemas",
	"parameters":          "parameters",
	"responses":           "responses",
	"securityDefinitions": "securitySchemes",
}

func sanitizeComponentKey(name string) string {
	if naming.IsValidComponentKey(name) {
		return name
	}
	return naming.SanitizeComponentKey(name)
}

// rewriteRef rewrites a 2.0-rooted local reference to its components
// location, applying any definition key renames. Foreign references and
// references already in 3.0 form pass through unchanged.
func (c *converter) rewriteRef(ref model.Reference) model.Reference {
	if ref.IsZero() || ref.Foreign || len(ref.Segments) < 2 {
		return ref
	}
	section, ok := refSectionMap[ref.Segments[0]]
	if !ok {
		return ref
	}
	name := strings.Join(ref.Segments[1:], "/")
	if section == "schemas" {
		if renamed, ok := c.renamedDefs[name]; ok {
			name = renamed
		}
	}
	return model.ParseReference("#/components/" + section + "/" + name)
}

// rewriteRefString rewrites a raw reference string, used for
// discriminator mappings which carry refs outside Reference cells.
func (c *converter) rewriteRefString(raw string) string {
	return c.rewriteRef(model.ParseReference(raw)).String()
}

// rewriteRefs walks the whole upgraded document rewriting references.
func (c *converter) rewriteRefs(doc *model.Document) {
	if doc.Components != nil {
		comp := doc.Components
		for name, s := range comp.Schemas {
			comp.Schemas[name] = c.rewriteSchema(s)
		}
		for _, r := range comp.Responses {
			c.rewriteResponse(r)
		}
		for _, p := range comp.Parameters {
			c.rewriteParameter(p)
		}
		for _, rb := range comp.RequestBodies {
			c.rewriteRequestBody(rb)
		}
		for _, h := range comp.Headers {
			c.rewriteHeader(h)
		}
		for _, s := range comp.SecuritySchemes {
			if !s.Ref.IsZero() {
				s.Ref = c.rewriteRef(s.Ref)
			}
		}
	}
	if doc.Paths != nil {
		for _, pattern := range maputil.SortedKeys(doc.Paths.Items) {
			c.rewritePathItem(doc.Paths.Items[pattern])
		}
	}
}

func (c *converter) rewritePathItem(item *model.PathItem) {
	if item == nil {
		return
	}
	if !item.Ref.IsZero() {
		item.Ref = c.rewriteRef(item.Ref)
	}
	for _, p := range item.Parameters {
		c.rewriteParameter(p)
	}
	for _, op := range []*model.Operation{
		item.Get, item.Put, item.Post, item.Delete, item.Options, item.Head, item.Patch, item.Trace,
	} {
		if op == nil {
			continue
		}
		for _, p := range op.Parameters {
			c.rewriteParameter(p)
		}
		c.rewriteRequestBody(op.RequestBody)
		if op.Responses != nil {
			c.rewriteResponse(op.Responses.Default)
			for _, r := range op.Responses.Codes {
				c.rewriteResponse(r)
			}
		}
	}
}

func (c *converter) rewriteParameter(p *model.Parameter) {
	if p == nil {
		return
	}
	if !p.Ref.IsZero() {
		p.Ref = c.rewriteRef(p.Ref)
		return
	}
	p.Schema = c.rewriteSchema(p.Schema)
	c.rewriteContent(p.Content)
}

func (c *converter) rewriteHeader(h *model.Header) {
	if h == nil {
		return
	}
	if !h.Ref.IsZero() {
		h.Ref = c.rewriteRef(h.Ref)
		return
	}
	h.Schema = c.rewriteSchema(h.Schema)
	c.rewriteContent(h.Content)
}

func (c *converter) rewriteResponse(r *model.Response) {
	if r == nil {
		return
	}
	if !r.Ref.IsZero() {
		r.Ref = c.rewriteRef(r.Ref)
		return
	}
	for _, h := range r.Headers {
		c.rewriteHeader(h)
	}
	c.rewriteContent(r.Content)
}

func (c *converter) rewriteRequestBody(rb *model.RequestBody) {
	if rb == nil {
		return
	}
	if !rb.Ref.IsZero() {
		rb.Ref = c.rewriteRef(rb.Ref)
		return
	}
	c.rewriteContent(rb.Content)
}

func (c *converter) rewriteContent(content map[string]*model.MediaType) {
	for _, mt := range content {
		if mt != nil {
			mt.Schema = c.rewriteSchema(mt.Schema)
		}
	}
}

// rewriteSchema returns a copy of the schema tree with every reference
// rewritten.
func (c *converter) rewriteSchema(s *model.Schema) *model.Schema {
	if s == nil {
		return nil
	}
	out := &model.Schema{SchemaData: s.SchemaData}

	switch kind := s.Kind.(type) {
	case model.ReferenceKind:
		out.Kind = model.ReferenceKind{Ref: c.rewriteRef(kind.Ref)}
	case model.CompositionKind:
		next := model.CompositionKind{
			AllOf: c.rewriteSchemaList(kind.AllOf),
			AnyOf: c.rewriteSchemaList(kind.AnyOf),
			OneOf: c.rewriteSchemaList(kind.OneOf),
			Not:   c.rewriteSchema(kind.Not),
		}
		if kind.Discriminator != nil {
			d := &model.Discriminator{
				PropertyName: kind.Discriminator.PropertyName,
				Extra:        kind.Discriminator.Extra,
			}
			if kind.Discriminator.Mapping != nil {
				d.Mapping = make(map[string]string, len(kind.Discriminator.Mapping))
				for key, target := range kind.Discriminator.Mapping {
					d.Mapping[key] = c.rewriteRefString(target)
				}
			}
			next.Discriminator = d
		}
		out.Kind = next
	case model.ArrayKind:
		kind.Items = c.rewriteSchema(kind.Items)
		out.Kind = kind
	case model.ObjectKind:
		if kind.Properties != nil {
			props := make(map[string]*model.Schema, len(kind.Properties))
			for name, prop := range kind.Properties {
				props[name] = c.rewriteSchema(prop)
			}
			kind.Properties = props
		}
		if kind.AdditionalProperties != nil && kind.AdditionalProperties.Schema != nil {
			kind.AdditionalProperties = &model.AdditionalProperties{
				Schema: c.rewriteSchema(kind.AdditionalProperties.Schema),
			}
		}
		out.Kind = kind
	default:
		out.Kind = s.Kind
	}
	return out
}

func (c *converter) rewriteSchemaList(schemas []*model.Schema) []*model.Schema {
	if schemas == nil {
		return nil
	}
	out := make([]*model.Schema, len(schemas))
	for i, s := range schemas {
		out[i] = c.rewriteSchema(s)
	}
	return out
}

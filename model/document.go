package model

import "fmt"

// Document is the root of an OpenAPI 3.0 description.
type Document struct {
	OpenAPI      string
	Info         *Info
	Servers      []*Server
	Paths        *Paths
	Components   *Components
	Security     []SecurityRequirement
	Tags         []*Tag
	ExternalDocs *ExternalDocs
	Extra        Extensions
}

// Components holds reusable objects addressable from the rest of the
// document via "#/components/..." references.
type Components struct {
	Schemas         map[string]*Schema
	Responses       map[string]*Response
	Parameters      map[string]*Parameter
	Examples        map[string]*Example
	RequestBodies   map[string]*RequestBody
	Headers         map[string]*Header
	SecuritySchemes map[string]*SecurityScheme
	Extra           Extensions
}

var documentKeys = map[string]bool{
	"openapi": true, "info": true, "servers": true, "paths": true,
	"components": true, "security": true, "tags": true, "externalDocs": true,
}

// ParseDocument builds a Document from a decoded document tree, as
// produced by a YAML or JSON parser. The tree is read, never mutated.
func ParseDocument(tree map[string]any) (*Document, error) {
	version := mapGetString(tree, "openapi")
	if version == "" {
		return nil, malformed("", "openapi", "missing openapi version field")
	}
	doc := &Document{
		OpenAPI: version,
		Extra:   extractExtra(tree, documentKeys),
	}

	var err error
	if raw, ok := tree["info"]; ok {
		if doc.Info, err = DecodeInfo(raw, "info"); err != nil {
			return nil, err
		}
	}
	if rawServers, ok := tree["servers"].([]any); ok {
		for i, node := range rawServers {
			server, err := decodeServer(node, indexPath("servers", i))
			if err != nil {
				return nil, err
			}
			doc.Servers = append(doc.Servers, server)
		}
	}
	if raw, ok := tree["paths"]; ok {
		if doc.Paths, err = decodePaths(raw, "paths"); err != nil {
			return nil, err
		}
	}
	if raw, ok := tree["components"]; ok {
		if doc.Components, err = decodeComponents(raw, "components"); err != nil {
			return nil, err
		}
	}
	if sec, ok := tree["security"].([]any); ok {
		doc.Security = DecodeSecurityRequirements(sec)
	}
	if rawTags, ok := tree["tags"].([]any); ok {
		for _, node := range rawTags {
			if tm, ok := node.(map[string]any); ok {
				doc.Tags = append(doc.Tags, DecodeTag(tm))
			}
		}
	}
	if ed, ok := tree["externalDocs"].(map[string]any); ok {
		doc.ExternalDocs = DecodeExternalDocs(ed)
	}
	return doc, nil
}

// ToTree serializes the document back into a plain tree of maps,
// slices and scalars. Zero-valued optional fields are omitted, so
// parse followed by serialize is a fixpoint on well-formed input.
func (d *Document) ToTree() map[string]any {
	m := make(map[string]any, 6+len(d.Extra))
	m["openapi"] = d.OpenAPI
	if d.Info != nil {
		m["info"] = d.Info.ToTree()
	}
	if len(d.Servers) > 0 {
		servers := make([]any, len(d.Servers))
		for i, s := range d.Servers {
			servers[i] = s.toTree()
		}
		m["servers"] = servers
	}
	if d.Paths != nil {
		m["paths"] = d.Paths.toTree()
	}
	if d.Components != nil {
		m["components"] = d.Components.toTree()
	}
	if d.Security != nil {
		m["security"] = SecurityRequirementsTree(d.Security)
	}
	if len(d.Tags) > 0 {
		tags := make([]any, len(d.Tags))
		for i, t := range d.Tags {
			tags[i] = t.ToTree()
		}
		m["tags"] = tags
	}
	if d.ExternalDocs != nil {
		m["externalDocs"] = d.ExternalDocs.ToTree()
	}
	mergeExtra(m, d.Extra)
	return m
}

// links and callbacks are not modeled; leaving them out of the
// recognized set routes them through Extra so they still round-trip.
var componentsKeys = map[string]bool{
	"schemas": true, "responses": true, "parameters": true,
	"examples": true, "requestBodies": true, "headers": true,
	"securitySchemes": true,
}

func decodeComponents(v any, path string) (*Components, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	c := &Components{Extra: extractExtra(m, componentsKeys)}

	if raw, ok := m["schemas"].(map[string]any); ok {
		c.Schemas = make(map[string]*Schema, len(raw))
		for name, node := range raw {
			s, err := ParseSchema(node, joinPath(joinPath(path, "schemas"), name))
			if err != nil {
				return nil, err
			}
			c.Schemas[name] = s
		}
	}
	if raw, ok := m["responses"].(map[string]any); ok {
		c.Responses = make(map[string]*Response, len(raw))
		for name, node := range raw {
			r, err := decodeResponse(node, joinPath(joinPath(path, "responses"), name))
			if err != nil {
				return nil, err
			}
			c.Responses[name] = r
		}
	}
	if raw, ok := m["parameters"].(map[string]any); ok {
		c.Parameters = make(map[string]*Parameter, len(raw))
		for name, node := range raw {
			p, err := decodeParameter(node, joinPath(joinPath(path, "parameters"), name))
			if err != nil {
				return nil, err
			}
			c.Parameters[name] = p
		}
	}
	if c.Examples, err = decodeExampleMap(m, "examples", path); err != nil {
		return nil, err
	}
	if raw, ok := m["requestBodies"].(map[string]any); ok {
		c.RequestBodies = make(map[string]*RequestBody, len(raw))
		for name, node := range raw {
			rb, err := decodeRequestBody(node, joinPath(joinPath(path, "requestBodies"), name))
			if err != nil {
				return nil, err
			}
			c.RequestBodies[name] = rb
		}
	}
	if c.Headers, err = decodeHeaderMap(m, "headers", path); err != nil {
		return nil, err
	}
	if raw, ok := m["securitySchemes"].(map[string]any); ok {
		c.SecuritySchemes = make(map[string]*SecurityScheme, len(raw))
		for name, node := range raw {
			s, err := decodeSecurityScheme(node, joinPath(joinPath(path, "securitySchemes"), name))
			if err != nil {
				return nil, err
			}
			c.SecuritySchemes[name] = s
		}
	}
	return c, nil
}

func (c *Components) toTree() map[string]any {
	m := make(map[string]any, 4+len(c.Extra))
	if len(c.Schemas) > 0 {
		schemas := make(map[string]any, len(c.Schemas))
		for name, s := range c.Schemas {
			schemas[name] = s.ToTree()
		}
		m["schemas"] = schemas
	}
	if len(c.Responses) > 0 {
		responses := make(map[string]any, len(c.Responses))
		for name, r := range c.Responses {
			responses[name] = r.toTree()
		}
		m["responses"] = responses
	}
	if len(c.Parameters) > 0 {
		params := make(map[string]any, len(c.Parameters))
		for name, p := range c.Parameters {
			params[name] = p.toTree()
		}
		m["parameters"] = params
	}
	if len(c.Examples) > 0 {
		m["examples"] = examplesToTree(c.Examples)
	}
	if len(c.RequestBodies) > 0 {
		bodies := make(map[string]any, len(c.RequestBodies))
		for name, rb := range c.RequestBodies {
			bodies[name] = rb.toTree()
		}
		m["requestBodies"] = bodies
	}
	if len(c.Headers) > 0 {
		m["headers"] = headersToTree(c.Headers)
	}
	if len(c.SecuritySchemes) > 0 {
		schemes := make(map[string]any, len(c.SecuritySchemes))
		for name, s := range c.SecuritySchemes {
			schemes[name] = s.toTree()
		}
		m["securitySchemes"] = schemes
	}
	mergeExtra(m, c.Extra)
	return m
}

// SchemaByName returns a named schema from components, or an error
// naming the missing entry.
func (d *Document) SchemaByName(name string) (*Schema, error) {
	if d.Components == nil || d.Components.Schemas == nil {
		return nil, fmt.Errorf("no component schemas defined")
	}
	s, ok := d.Components.Schemas[name]
	if !ok {
		return nil, fmt.Errorf("schema %q not found in components", name)
	}
	return s, nil
}

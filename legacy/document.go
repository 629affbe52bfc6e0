package legacy

import (
	"github.com/specmorph/oasdoc/internal/maputil"
	"github.com/specmorph/oasdoc/model"
)

// Document is the root of an OpenAPI 2.0 (Swagger) description.
type Document struct {
	Swagger  string
	Info     *model.Info
	Host     string
	BasePath string
	Schemes  []string
	Consumes []string
	Produces []string
	Paths    *Paths

	Definitions         map[string]*model.Schema
	Parameters          map[string]*Parameter
	Responses           map[string]*Response
	SecurityDefinitions map[string]*SecurityScheme

	Security     []model.SecurityRequirement
	Tags         []*model.Tag
	ExternalDocs *model.ExternalDocs
	Extra        model.Extensions
}

var documentKeys = map[string]bool{
	"swagger": true, "info": true, "host": true, "basePath": true,
	"schemes": true, "consumes": true, "produces": true, "paths": true,
	"definitions": true, "parameters": true, "responses": true,
	"securityDefinitions": true, "security": true, "tags": true,
	"externalDocs": true,
}

// ParseDocument builds a 2.0 Document from a decoded document tree. The
// tree is read, never mutated.
func ParseDocument(tree map[string]any) (*Document, error) {
	version := maputil.GetString(tree, "swagger")
	if version == "" {
		return nil, malformed("", "swagger", "missing swagger version field")
	}
	doc := &Document{
		Swagger:  version,
		Host:     maputil.GetString(tree, "host"),
		BasePath: maputil.GetString(tree, "basePath"),
		Schemes:  maputil.GetStringSlice(tree, "schemes"),
		Consumes: maputil.GetStringSlice(tree, "consumes"),
		Produces: maputil.GetStringSlice(tree, "produces"),
		Extra:    extractExtra(tree, documentKeys),
	}

	var err error
	if raw, ok := tree["info"]; ok {
		if doc.Info, err = model.DecodeInfo(raw, "info"); err != nil {
			return nil, err
		}
	}
	if raw, ok := tree["paths"]; ok {
		if doc.Paths, err = decodePaths(raw, "paths"); err != nil {
			return nil, err
		}
	}
	if raw, ok := tree["definitions"].(map[string]any); ok {
		doc.Definitions = make(map[string]*model.Schema, len(raw))
		for name, node := range raw {
			s, err := model.ParseSchema(node, joinPath("definitions", name))
			if err != nil {
				return nil, err
			}
			doc.Definitions[name] = s
		}
	}
	if raw, ok := tree["parameters"].(map[string]any); ok {
		doc.Parameters = make(map[string]*Parameter, len(raw))
		for name, node := range raw {
			p, err := decodeParameter(node, joinPath("parameters", name))
			if err != nil {
				return nil, err
			}
			doc.Parameters[name] = p
		}
	}
	if raw, ok := tree["responses"].(map[string]any); ok {
		doc.Responses = make(map[string]*Response, len(raw))
		for name, node := range raw {
			r, err := decodeResponse(node, joinPath("responses", name))
			if err != nil {
				return nil, err
			}
			doc.Responses[name] = r
		}
	}
	if raw, ok := tree["securityDefinitions"].(map[string]any); ok {
		doc.SecurityDefinitions = make(map[string]*SecurityScheme, len(raw))
		for name, node := range raw {
			s, err := decodeSecurityScheme(node, joinPath("securityDefinitions", name))
			if err != nil {
				return nil, err
			}
			doc.SecurityDefinitions[name] = s
		}
	}
	if sec, ok := tree["security"].([]any); ok {
		doc.Security = model.DecodeSecurityRequirements(sec)
	}
	if rawTags, ok := tree["tags"].([]any); ok {
		for _, node := range rawTags {
			if tm, ok := node.(map[string]any); ok {
				doc.Tags = append(doc.Tags, model.DecodeTag(tm))
			}
		}
	}
	if ed, ok := tree["externalDocs"].(map[string]any); ok {
		doc.ExternalDocs = model.DecodeExternalDocs(ed)
	}
	return doc, nil
}

// ToTree serializes the document back into a plain tree.
func (d *Document) ToTree() map[string]any {
	m := make(map[string]any, 8+len(d.Extra))
	m["swagger"] = d.Swagger
	if d.Info != nil {
		m["info"] = d.Info.ToTree()
	}
	if d.Host != "" {
		m["host"] = d.Host
	}
	if d.BasePath != "" {
		m["basePath"] = d.BasePath
	}
	if len(d.Schemes) > 0 {
		m["schemes"] = stringsToTree(d.Schemes)
	}
	if len(d.Consumes) > 0 {
		m["consumes"] = stringsToTree(d.Consumes)
	}
	if len(d.Produces) > 0 {
		m["produces"] = stringsToTree(d.Produces)
	}
	if d.Paths != nil {
		m["paths"] = d.Paths.toTree()
	}
	if len(d.Definitions) > 0 {
		defs := make(map[string]any, len(d.Definitions))
		for name, s := range d.Definitions {
			defs[name] = s.ToTree()
		}
		m["definitions"] = defs
	}
	if len(d.Parameters) > 0 {
		params := make(map[string]any, len(d.Parameters))
		for name, p := range d.Parameters {
			params[name] = p.toTree()
		}
		m["parameters"] = params
	}
	if len(d.Responses) > 0 {
		responses := make(map[string]any, len(d.Responses))
		for name, r := range d.Responses {
			responses[name] = r.toTree()
		}
		m["responses"] = responses
	}
	if len(d.SecurityDefinitions) > 0 {
		defs := make(map[string]any, len(d.SecurityDefinitions))
		for name, s := range d.SecurityDefinitions {
			defs[name] = s.toTree()
		}
		m["securityDefinitions"] = defs
	}
	if d.Security != nil {
		m["security"] = model.SecurityRequirementsTree(d.Security)
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

package legacy

import (
	"fmt"

	"github.com/specmorph/oasdoc/internal/httputil"
	"github.com/specmorph/oasdoc/internal/maputil"
	"github.com/specmorph/oasdoc/model"
)

// Paths holds the relative endpoint paths of a 2.0 document.
type Paths struct {
	Items map[string]*PathItem
	Extra model.Extensions
}

// PathItem describes the operations available on a single path. 2.0 has
// no trace method and no per-path servers.
type PathItem struct {
	Ref model.Reference

	Get     *Operation
	Put     *Operation
	Post    *Operation
	Delete  *Operation
	Options *Operation
	Head    *Operation
	Patch   *Operation

	Parameters []*Parameter
	Extra      model.Extensions
}

// Operation describes a single 2.0 API operation.
type Operation struct {
	Tags         []string
	Summary      string
	Description  string
	ExternalDocs *model.ExternalDocs
	OperationID  string
	Consumes     []string
	Produces     []string
	Parameters   []*Parameter
	Responses    *Responses
	Schemes      []string
	Deprecated   bool
	Security     []model.SecurityRequirement
	Extra        model.Extensions
}

// Responses maps response status codes to their definitions.
type Responses struct {
	Default *Response
	Codes   map[string]*Response
	Extra   model.Extensions
}

// Response describes a single 2.0 response. The schema describes the
// whole body; 2.0 has no per-media-type content.
type Response struct {
	Ref model.Reference

	Description string
	Schema      *model.Schema
	Headers     map[string]*Header
	Examples    map[string]any
	Extra       model.Extensions
}

func decodePaths(v any, path string) (*Paths, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	p := &Paths{}
	for key, node := range m {
		if model.IsExtensionKey(key) {
			if p.Extra == nil {
				p.Extra = make(model.Extensions)
			}
			p.Extra[key] = node
			continue
		}
		if len(key) == 0 || key[0] != '/' {
			continue
		}
		item, err := decodePathItem(node, joinPath(path, key))
		if err != nil {
			return nil, err
		}
		if p.Items == nil {
			p.Items = make(map[string]*PathItem, len(m))
		}
		p.Items[key] = item
	}
	return p, nil
}

func (p *Paths) toTree() map[string]any {
	m := make(map[string]any, len(p.Items)+len(p.Extra))
	for key, item := range p.Items {
		m[key] = item.toTree()
	}
	mergeExtra(m, p.Extra)
	return m
}

var pathItemKeys = func() map[string]bool {
	keys := map[string]bool{"$ref": true, "parameters": true}
	for _, method := range httputil.Methods2 {
		keys[method] = true
	}
	return keys
}()

func decodePathItem(v any, path string) (*PathItem, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	item := &PathItem{Extra: extractExtra(m, pathItemKeys)}
	if refStr, ok := m["$ref"].(string); ok {
		item.Ref = model.ParseReference(refStr)
	}

	ops := map[string]**Operation{
		httputil.MethodGet:     &item.Get,
		httputil.MethodPut:     &item.Put,
		httputil.MethodPost:    &item.Post,
		httputil.MethodDelete:  &item.Delete,
		httputil.MethodOptions: &item.Options,
		httputil.MethodHead:    &item.Head,
		httputil.MethodPatch:   &item.Patch,
	}
	for method, target := range ops {
		raw, ok := m[method]
		if !ok {
			continue
		}
		op, err := decodeOperation(raw, joinPath(path, method))
		if err != nil {
			return nil, err
		}
		*target = op
	}

	if item.Parameters, err = decodeParameterList(m, "parameters", path); err != nil {
		return nil, err
	}
	return item, nil
}

func decodeParameterList(m map[string]any, key, path string) ([]*Parameter, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, malformed(path, key, fmt.Sprintf("expected an array, got %T", raw))
	}
	params := make([]*Parameter, 0, len(arr))
	for i, node := range arr {
		p, err := decodeParameter(node, indexPath(joinPath(path, key), i))
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func (p *PathItem) toTree() map[string]any {
	m := make(map[string]any, 8+len(p.Extra))
	if !p.Ref.IsZero() {
		m["$ref"] = p.Ref.String()
	}
	ops := map[string]*Operation{
		httputil.MethodGet:     p.Get,
		httputil.MethodPut:     p.Put,
		httputil.MethodPost:    p.Post,
		httputil.MethodDelete:  p.Delete,
		httputil.MethodOptions: p.Options,
		httputil.MethodHead:    p.Head,
		httputil.MethodPatch:   p.Patch,
	}
	for method, op := range ops {
		if op != nil {
			m[method] = op.toTree()
		}
	}
	if len(p.Parameters) > 0 {
		m["parameters"] = parametersToTree(p.Parameters)
	}
	mergeExtra(m, p.Extra)
	return m
}

func parametersToTree(params []*Parameter) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = p.toTree()
	}
	return out
}

// Operations yields the path item's operations keyed by lowercase HTTP
// method. Nil operations are skipped.
func (p *PathItem) Operations() map[string]*Operation {
	out := make(map[string]*Operation, 7)
	ops := map[string]*Operation{
		httputil.MethodGet:     p.Get,
		httputil.MethodPut:     p.Put,
		httputil.MethodPost:    p.Post,
		httputil.MethodDelete:  p.Delete,
		httputil.MethodOptions: p.Options,
		httputil.MethodHead:    p.Head,
		httputil.MethodPatch:   p.Patch,
	}
	for method, op := range ops {
		if op != nil {
			out[method] = op
		}
	}
	return out
}

var operationKeys = map[string]bool{
	"tags": true, "summary": true, "description": true, "externalDocs": true,
	"operationId": true, "consumes": true, "produces": true,
	"parameters": true, "responses": true, "schemes": true,
	"deprecated": true, "security": true,
}

func decodeOperation(v any, path string) (*Operation, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	op := &Operation{
		Tags:        maputil.GetStringSlice(m, "tags"),
		Summary:     maputil.GetString(m, "summary"),
		Description: maputil.GetString(m, "description"),
		OperationID: maputil.GetString(m, "operationId"),
		Consumes:    maputil.GetStringSlice(m, "consumes"),
		Produces:    maputil.GetStringSlice(m, "produces"),
		Schemes:     maputil.GetStringSlice(m, "schemes"),
		Deprecated:  maputil.GetBool(m, "deprecated"),
		Extra:       extractExtra(m, operationKeys),
	}
	if ed, ok := m["externalDocs"].(map[string]any); ok {
		op.ExternalDocs = model.DecodeExternalDocs(ed)
	}
	if op.Parameters, err = decodeParameterList(m, "parameters", path); err != nil {
		return nil, err
	}
	if raw, ok := m["responses"]; ok {
		if op.Responses, err = decodeResponses(raw, joinPath(path, "responses")); err != nil {
			return nil, err
		}
	}
	if sec, ok := m["security"].([]any); ok {
		op.Security = model.DecodeSecurityRequirements(sec)
	}
	return op, nil
}

func (o *Operation) toTree() map[string]any {
	m := make(map[string]any, 8+len(o.Extra))
	if len(o.Tags) > 0 {
		m["tags"] = stringsToTree(o.Tags)
	}
	if o.Summary != "" {
		m["summary"] = o.Summary
	}
	if o.Description != "" {
		m["description"] = o.Description
	}
	if o.ExternalDocs != nil {
		m["externalDocs"] = o.ExternalDocs.ToTree()
	}
	if o.OperationID != "" {
		m["operationId"] = o.OperationID
	}
	if len(o.Consumes) > 0 {
		m["consumes"] = stringsToTree(o.Consumes)
	}
	if len(o.Produces) > 0 {
		m["produces"] = stringsToTree(o.Produces)
	}
	if len(o.Parameters) > 0 {
		m["parameters"] = parametersToTree(o.Parameters)
	}
	if o.Responses != nil {
		m["responses"] = o.Responses.toTree()
	}
	if len(o.Schemes) > 0 {
		m["schemes"] = stringsToTree(o.Schemes)
	}
	if o.Deprecated {
		m["deprecated"] = true
	}
	if o.Security != nil {
		m["security"] = model.SecurityRequirementsTree(o.Security)
	}
	mergeExtra(m, o.Extra)
	return m
}

func stringsToTree(strs []string) []any {
	out := make([]any, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}

func decodeResponses(v any, path string) (*Responses, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	r := &Responses{}
	for code, node := range m {
		if model.IsExtensionKey(code) {
			if r.Extra == nil {
				r.Extra = make(model.Extensions)
			}
			r.Extra[code] = node
			continue
		}
		if !httputil.ValidateStatusCode(code) {
			return nil, malformed(path, code, fmt.Sprintf("invalid response code %q", code))
		}
		resp, err := decodeResponse(node, joinPath(path, code))
		if err != nil {
			return nil, err
		}
		if code == "default" {
			r.Default = resp
			continue
		}
		if r.Codes == nil {
			r.Codes = make(map[string]*Response, len(m))
		}
		r.Codes[code] = resp
	}
	return r, nil
}

func (r *Responses) toTree() map[string]any {
	m := make(map[string]any, 1+len(r.Codes)+len(r.Extra))
	if r.Default != nil {
		m["default"] = r.Default.toTree()
	}
	for code, resp := range r.Codes {
		m[code] = resp.toTree()
	}
	mergeExtra(m, r.Extra)
	return m
}

var responseKeys = map[string]bool{
	"description": true, "schema": true, "headers": true, "examples": true,
}

func decodeResponse(v any, path string) (*Response, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	if refStr, ok := m["$ref"].(string); ok {
		return &Response{Ref: model.ParseReference(refStr)}, nil
	}
	r := &Response{
		Description: maputil.GetString(m, "description"),
		Extra:       extractExtra(m, responseKeys),
	}
	if raw, ok := m["schema"]; ok {
		if r.Schema, err = model.ParseSchema(raw, joinPath(path, "schema")); err != nil {
			return nil, err
		}
	}
	if raw, ok := m["headers"].(map[string]any); ok {
		r.Headers = make(map[string]*Header, len(raw))
		for name, node := range raw {
			h, err := decodeHeader(node, joinPath(joinPath(path, "headers"), name))
			if err != nil {
				return nil, err
			}
			r.Headers[name] = h
		}
	}
	if examples, ok := m["examples"].(map[string]any); ok {
		r.Examples = examples
	}
	return r, nil
}

func (r *Response) toTree() map[string]any {
	if !r.Ref.IsZero() {
		return map[string]any{"$ref": r.Ref.String()}
	}
	m := make(map[string]any, 4+len(r.Extra))
	m["description"] = r.Description
	if r.Schema != nil {
		m["schema"] = r.Schema.ToTree()
	}
	if len(r.Headers) > 0 {
		headers := make(map[string]any, len(r.Headers))
		for name, h := range r.Headers {
			headers[name] = h.toTree()
		}
		m["headers"] = headers
	}
	if len(r.Examples) > 0 {
		m["examples"] = r.Examples
	}
	mergeExtra(m, r.Extra)
	return m
}

package model

import (
	"fmt"

	"github.com/specmorph/oasdoc/internal/httputil"
)

// Paths holds the relative paths to individual endpoints. Keys begin
// with a forward slash.
type Paths struct {
	Items map[string]*PathItem
	Extra Extensions
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	Ref Reference

	Summary     string
	Description string

	Get     *Operation
	Put     *Operation
	Post    *Operation
	Delete  *Operation
	Options *Operation
	Head    *Operation
	Patch   *Operation
	Trace   *Operation

	Servers    []*Server
	Parameters []*Parameter
	Extra      Extensions
}

// Operation describes a single API operation on a path.
type Operation struct {
	Tags         []string
	Summary      string
	Description  string
	ExternalDocs *ExternalDocs
	OperationID  string
	Parameters   []*Parameter
	RequestBody  *RequestBody
	Responses    *Responses
	Deprecated   bool
	Security     []SecurityRequirement
	Servers      []*Server
	Extra        Extensions
}

// Responses maps response status codes to their definitions. Default
// holds the "default" entry when present.
type Responses struct {
	Default *Response
	Codes   map[string]*Response
	Extra   Extensions
}

// Response describes a single response from an API operation.
type Response struct {
	Ref Reference

	Description string
	Headers     map[string]*Header
	Content     map[string]*MediaType
	Links       map[string]any
	Extra       Extensions
}

// RequestBody describes a single request body.
type RequestBody struct {
	Ref Reference

	Description string
	Content     map[string]*MediaType
	Required    bool
	Extra       Extensions
}

// MediaType provides the schema and examples for a media type.
type MediaType struct {
	Schema   *Schema
	Example  any
	Examples map[string]*Example
	Encoding map[string]*Encoding
	Extra    Extensions
}

// Encoding defines serialization for a single request body property.
type Encoding struct {
	ContentType   string
	Headers       map[string]*Header
	Style         string
	Explode       *bool
	AllowReserved bool
	Extra         Extensions
}

func decodePaths(v any, path string) (*Paths, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	p := &Paths{Extra: extractPathsExtra(m)}
	for key, node := range m {
		if !isPathKey(key) {
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

func isPathKey(key string) bool {
	return len(key) > 0 && key[0] == '/'
}

// extractPathsExtra keeps x-* keys of the paths object. Path keys all
// begin with "/", so the recognized set is positional rather than named.
func extractPathsExtra(m map[string]any) Extensions {
	var extra Extensions
	for key, value := range m {
		if IsExtensionKey(key) {
			if extra == nil {
				extra = make(Extensions)
			}
			extra[key] = value
		}
	}
	return extra
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
	keys := map[string]bool{
		"$ref": true, "summary": true, "description": true,
		"servers": true, "parameters": true,
	}
	for _, method := range httputil.Methods3 {
		keys[method] = true
	}
	return keys
}()

func decodePathItem(v any, path string) (*PathItem, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	item := &PathItem{
		Summary:     mapGetString(m, "summary"),
		Description: mapGetString(m, "description"),
		Extra:       extractExtra(m, pathItemKeys),
	}
	if refStr, ok := m["$ref"].(string); ok {
		// Path item $ref allows siblings; keep both.
		item.Ref = ParseReference(refStr)
	}

	ops := map[string]**Operation{
		httputil.MethodGet:     &item.Get,
		httputil.MethodPut:     &item.Put,
		httputil.MethodPost:    &item.Post,
		httputil.MethodDelete:  &item.Delete,
		httputil.MethodOptions: &item.Options,
		httputil.MethodHead:    &item.Head,
		httputil.MethodPatch:   &item.Patch,
		httputil.MethodTrace:   &item.Trace,
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

	if rawServers, ok := m["servers"].([]any); ok {
		for i, node := range rawServers {
			server, err := decodeServer(node, indexPath(joinPath(path, "servers"), i))
			if err != nil {
				return nil, err
			}
			item.Servers = append(item.Servers, server)
		}
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
	m := make(map[string]any, 10+len(p.Extra))
	if !p.Ref.IsZero() {
		m["$ref"] = p.Ref.String()
	}
	if p.Summary != "" {
		m["summary"] = p.Summary
	}
	if p.Description != "" {
		m["description"] = p.Description
	}
	ops := map[string]*Operation{
		httputil.MethodGet:     p.Get,
		httputil.MethodPut:     p.Put,
		httputil.MethodPost:    p.Post,
		httputil.MethodDelete:  p.Delete,
		httputil.MethodOptions: p.Options,
		httputil.MethodHead:    p.Head,
		httputil.MethodPatch:   p.Patch,
		httputil.MethodTrace:   p.Trace,
	}
	for method, op := range ops {
		if op != nil {
			m[method] = op.toTree()
		}
	}
	if len(p.Servers) > 0 {
		servers := make([]any, len(p.Servers))
		for i, s := range p.Servers {
			servers[i] = s.toTree()
		}
		m["servers"] = servers
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

var operationKeys = map[string]bool{
	"tags": true, "summary": true, "description": true, "externalDocs": true,
	"operationId": true, "parameters": true, "requestBody": true,
	"responses": true, "deprecated": true, "security": true, "servers": true,
}

func decodeOperation(v any, path string) (*Operation, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	op := &Operation{
		Tags:        mapGetStringSlice(m, "tags"),
		Summary:     mapGetString(m, "summary"),
		Description: mapGetString(m, "description"),
		OperationID: mapGetString(m, "operationId"),
		Deprecated:  mapGetBool(m, "deprecated"),
		Extra:       extractExtra(m, operationKeys),
	}
	if ed, ok := m["externalDocs"].(map[string]any); ok {
		op.ExternalDocs = DecodeExternalDocs(ed)
	}
	if op.Parameters, err = decodeParameterList(m, "parameters", path); err != nil {
		return nil, err
	}
	if raw, ok := m["requestBody"]; ok {
		if op.RequestBody, err = decodeRequestBody(raw, joinPath(path, "requestBody")); err != nil {
			return nil, err
		}
	}
	if raw, ok := m["responses"]; ok {
		if op.Responses, err = decodeResponses(raw, joinPath(path, "responses")); err != nil {
			return nil, err
		}
	}
	if sec, ok := m["security"].([]any); ok {
		op.Security = DecodeSecurityRequirements(sec)
	}
	if rawServers, ok := m["servers"].([]any); ok {
		for i, node := range rawServers {
			server, err := decodeServer(node, indexPath(joinPath(path, "servers"), i))
			if err != nil {
				return nil, err
			}
			op.Servers = append(op.Servers, server)
		}
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
	if len(o.Parameters) > 0 {
		m["parameters"] = parametersToTree(o.Parameters)
	}
	if o.RequestBody != nil {
		m["requestBody"] = o.RequestBody.toTree()
	}
	if o.Responses != nil {
		m["responses"] = o.Responses.toTree()
	}
	if o.Deprecated {
		m["deprecated"] = true
	}
	if o.Security != nil {
		m["security"] = SecurityRequirementsTree(o.Security)
	}
	if len(o.Servers) > 0 {
		servers := make([]any, len(o.Servers))
		for i, s := range o.Servers {
			servers[i] = s.toTree()
		}
		m["servers"] = servers
	}
	mergeExtra(m, o.Extra)
	return m
}

func decodeResponses(v any, path string) (*Responses, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	r := &Responses{}
	for code, node := range m {
		if IsExtensionKey(code) {
			if r.Extra == nil {
				r.Extra = make(Extensions)
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
	"description": true, "headers": true, "content": true, "links": true,
}

func decodeResponse(v any, path string) (*Response, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	if refStr, ok := m["$ref"].(string); ok {
		return &Response{Ref: ParseReference(refStr)}, nil
	}
	r := &Response{
		Description: mapGetString(m, "description"),
		Extra:       extractExtra(m, responseKeys),
	}
	if r.Headers, err = decodeHeaderMap(m, "headers", path); err != nil {
		return nil, err
	}
	if r.Content, err = decodeMediaTypes(m, "content", path); err != nil {
		return nil, err
	}
	if links, ok := m["links"].(map[string]any); ok {
		r.Links = links
	}
	return r, nil
}

func (r *Response) toTree() map[string]any {
	if !r.Ref.IsZero() {
		return map[string]any{"$ref": r.Ref.String()}
	}
	m := make(map[string]any, 4+len(r.Extra))
	m["description"] = r.Description
	if len(r.Headers) > 0 {
		m["headers"] = headersToTree(r.Headers)
	}
	if len(r.Content) > 0 {
		m["content"] = mediaTypesToTree(r.Content)
	}
	if len(r.Links) > 0 {
		m["links"] = r.Links
	}
	mergeExtra(m, r.Extra)
	return m
}

var requestBodyKeys = map[string]bool{
	"description": true, "content": true, "required": true,
}

func decodeRequestBody(v any, path string) (*RequestBody, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	if refStr, ok := m["$ref"].(string); ok {
		return &RequestBody{Ref: ParseReference(refStr)}, nil
	}
	rb := &RequestBody{
		Description: mapGetString(m, "description"),
		Required:    mapGetBool(m, "required"),
		Extra:       extractExtra(m, requestBodyKeys),
	}
	if rb.Content, err = decodeMediaTypes(m, "content", path); err != nil {
		return nil, err
	}
	return rb, nil
}

func (rb *RequestBody) toTree() map[string]any {
	if !rb.Ref.IsZero() {
		return map[string]any{"$ref": rb.Ref.String()}
	}
	m := make(map[string]any, 3+len(rb.Extra))
	if rb.Description != "" {
		m["description"] = rb.Description
	}
	if len(rb.Content) > 0 {
		m["content"] = mediaTypesToTree(rb.Content)
	}
	if rb.Required {
		m["required"] = true
	}
	mergeExtra(m, rb.Extra)
	return m
}

var mediaTypeKeys = map[string]bool{
	"schema": true, "example": true, "examples": true, "encoding": true,
}

func decodeMediaTypes(m map[string]any, key, path string) (map[string]*MediaType, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	sub, ok := raw.(map[string]any)
	if !ok {
		return nil, malformed(path, key, fmt.Sprintf("expected an object, got %T", raw))
	}
	result := make(map[string]*MediaType, len(sub))
	for mediaType, node := range sub {
		mt, err := decodeMediaType(node, joinPath(joinPath(path, key), mediaType))
		if err != nil {
			return nil, err
		}
		result[mediaType] = mt
	}
	return result, nil
}

func decodeMediaType(v any, path string) (*MediaType, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	mt := &MediaType{
		Example: m["example"],
		Extra:   extractExtra(m, mediaTypeKeys),
	}
	if raw, ok := m["schema"]; ok {
		if mt.Schema, err = ParseSchema(raw, joinPath(path, "schema")); err != nil {
			return nil, err
		}
	}
	if mt.Examples, err = decodeExampleMap(m, "examples", path); err != nil {
		return nil, err
	}
	if enc, ok := m["encoding"].(map[string]any); ok {
		mt.Encoding = make(map[string]*Encoding, len(enc))
		for prop, node := range enc {
			e, err := decodeEncoding(node, joinPath(joinPath(path, "encoding"), prop))
			if err != nil {
				return nil, err
			}
			mt.Encoding[prop] = e
		}
	}
	return mt, nil
}

func (mt *MediaType) toTree() map[string]any {
	m := make(map[string]any, 3+len(mt.Extra))
	if mt.Schema != nil {
		m["schema"] = mt.Schema.ToTree()
	}
	if mt.Example != nil {
		m["example"] = mt.Example
	}
	if len(mt.Examples) > 0 {
		m["examples"] = examplesToTree(mt.Examples)
	}
	if len(mt.Encoding) > 0 {
		enc := make(map[string]any, len(mt.Encoding))
		for prop, e := range mt.Encoding {
			enc[prop] = e.toTree()
		}
		m["encoding"] = enc
	}
	mergeExtra(m, mt.Extra)
	return m
}

func mediaTypesToTree(content map[string]*MediaType) map[string]any {
	out := make(map[string]any, len(content))
	for mediaType, mt := range content {
		out[mediaType] = mt.toTree()
	}
	return out
}

var encodingKeys = map[string]bool{
	"contentType": true, "headers": true, "style": true,
	"explode": true, "allowReserved": true,
}

func decodeEncoding(v any, path string) (*Encoding, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	e := &Encoding{
		ContentType:   mapGetString(m, "contentType"),
		Style:         mapGetString(m, "style"),
		Explode:       mapGetBoolPtr(m, "explode"),
		AllowReserved: mapGetBool(m, "allowReserved"),
		Extra:         extractExtra(m, encodingKeys),
	}
	if e.Headers, err = decodeHeaderMap(m, "headers", path); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Encoding) toTree() map[string]any {
	m := make(map[string]any, 3+len(e.Extra))
	if e.ContentType != "" {
		m["contentType"] = e.ContentType
	}
	if len(e.Headers) > 0 {
		m["headers"] = headersToTree(e.Headers)
	}
	if e.Style != "" {
		m["style"] = e.Style
	}
	if e.Explode != nil {
		m["explode"] = *e.Explode
	}
	if e.AllowReserved {
		m["allowReserved"] = true
	}
	mergeExtra(m, e.Extra)
	return m
}

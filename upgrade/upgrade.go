package upgrade

import (
	"fmt"

	"github.com/specmorph/oasdoc/internal/issues"
	"github.com/specmorph/oasdoc/internal/maputil"
	"github.com/specmorph/oasdoc/internal/severity"
	"github.com/specmorph/oasdoc/legacy"
	"github.com/specmorph/oasdoc/model"
	"github.com/specmorph/oasdoc/specerrors"
)

// TargetVersion is the OpenAPI version stamped on upgraded documents.
const TargetVersion = "3.0.3"

// Severity indicates the severity level of an upgrade note
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about upgrade choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates lossy or best-effort transformations
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical indicates features that could not be carried over
	SeverityCritical = severity.SeverityCritical
)

// Note records a single upgrade decision or limitation.
type Note = issues.Issue

// Result contains the upgraded document together with every note the
// engine emitted while producing it.
type Result struct {
	// Document is the upgraded 3.0 document
	Document *model.Document
	// Notes lists upgrade decisions and limitations in discovery order
	Notes []Note
	// InfoCount is the total number of info notes
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical notes
	CriticalCount int
}

// HasWarnings returns true if any warning notes were emitted.
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// HasCriticalNotes returns true if any critical notes were emitted.
func (r *Result) HasCriticalNotes() bool {
	return r.CriticalCount > 0
}

// Option configures the upgrade engine.
type Option func(*converter)

// WithLogger sets the logger used for progress and diagnostics. The
// default discards everything.
func WithLogger(log model.Logger) Option {
	return func(c *converter) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDefaultScheme sets the scheme used to build server URLs when the
// source document declares a host but no schemes. Defaults to "https".
func WithDefaultScheme(scheme string) Option {
	return func(c *converter) {
		if scheme != "" {
			c.defaultScheme = scheme
		}
	}
}

// WithoutInfoNotes suppresses info-level notes, keeping only warnings
// and critical notes in the result.
func WithoutInfoNotes() Option {
	return func(c *converter) {
		c.includeInfo = false
	}
}

type converter struct {
	src *legacy.Document

	log           model.Logger
	defaultScheme string
	includeInfo   bool

	notes []Note

	// renamedDefs maps original definition keys to their sanitized
	// component keys, consumed by the ref rewrite pass.
	renamedDefs map[string]string
}

// Upgrade rewrites a 2.0 document as a 3.0 document. The input is never
// mutated and the result owns its entire tree; no node is shared with
// the source, so the same document can be upgraded again unchanged.
func Upgrade(doc *legacy.Document, opts ...Option) (*Result, error) {
	if doc == nil {
		return nil, &specerrors.UpgradeError{Message: "nil document"}
	}

	c := &converter{
		src:           doc,
		log:           model.NopLogger{},
		defaultScheme: "https",
		includeInfo:   true,
		renamedDefs:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log.Info("upgrading document", "swagger", doc.Swagger, "target", TargetVersion)

	out := &model.Document{
		OpenAPI:      TargetVersion,
		Info:         doc.Info.Clone(),
		Servers:      c.convertServers(),
		Security:     model.CloneSecurityRequirements(doc.Security),
		Tags:         cloneTags(doc.Tags),
		ExternalDocs: doc.ExternalDocs.Clone(),
		Extra:        doc.Extra.Clone(),
	}

	if err := c.convertComponents(out); err != nil {
		return nil, err
	}
	if err := c.convertPaths(out); err != nil {
		return nil, err
	}

	c.rewriteRefs(out)

	result := &Result{Document: out, Notes: c.notes}
	for _, note := range c.notes {
		switch note.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityCritical:
			result.CriticalCount++
		}
	}
	c.log.Info("upgrade complete",
		"infos", result.InfoCount,
		"warnings", result.WarningCount,
		"criticals", result.CriticalCount)
	return result, nil
}

func (c *converter) addNote(path, message string, sev Severity) {
	c.log.Debug(message, "path", path, "severity", sev)
	if sev == SeverityInfo && !c.includeInfo {
		return
	}
	c.notes = append(c.notes, Note{Path: path, Message: message, Severity: sev})
}

func (c *converter) addNoteWithContext(path, message, context string, sev Severity) {
	c.log.Debug(message, "path", path, "severity", sev, "context", context)
	if sev == SeverityInfo && !c.includeInfo {
		return
	}
	c.notes = append(c.notes, Note{Path: path, Message: message, Severity: sev, Context: context})
}

// convertComponents moves the four top-level 2.0 sections into the 3.0
// components object.
func (c *converter) convertComponents(out *model.Document) error {
	src := c.src
	if src.Definitions == nil && src.Parameters == nil && src.Responses == nil && src.SecurityDefinitions == nil {
		return nil
	}
	out.Components = &model.Components{}

	if len(src.Definitions) > 0 {
		out.Components.Schemas = make(map[string]*model.Schema, len(src.Definitions))
		for _, name := range maputil.SortedKeys(src.Definitions) {
			key := c.componentKey(name, "definitions")
			out.Components.Schemas[key] = src.Definitions[name].Clone()
		}
	}

	if len(src.Responses) > 0 {
		out.Components.Responses = make(map[string]*model.Response, len(src.Responses))
		for _, name := range maputil.SortedKeys(src.Responses) {
			path := fmt.Sprintf("responses.%s", name)
			out.Components.Responses[name] = c.convertResponse(src.Responses[name], nil, path)
		}
	}

	if len(src.Parameters) > 0 {
		for _, name := range maputil.SortedKeys(src.Parameters) {
			param := src.Parameters[name]
			path := fmt.Sprintf("parameters.%s", name)
			switch {
			case !param.Ref.IsZero():
				c.addNote(path, "shared parameter is itself a reference, carried unchanged", SeverityInfo)
				if out.Components.Parameters == nil {
					out.Components.Parameters = make(map[string]*model.Parameter)
				}
				out.Components.Parameters[name] = &model.Parameter{Ref: param.Ref.Clone()}
			case param.In == legacy.ParamInBody:
				if out.Components.RequestBodies == nil {
					out.Components.RequestBodies = make(map[string]*model.RequestBody)
				}
				out.Components.RequestBodies[name] = c.bodyToRequestBody(param, nil, path)
				c.addNoteWithContext(path,
					"shared body parameter moved to components.requestBodies",
					"references to #/parameters/"+name+" must point at the request body", SeverityWarning)
			case param.In == legacy.ParamInFormData:
				c.addNote(path, "shared formData parameter has no 3.0 component equivalent, dropped", SeverityCritical)
			default:
				if out.Components.Parameters == nil {
					out.Components.Parameters = make(map[string]*model.Parameter)
				}
				out.Components.Parameters[name] = c.convertParameter(param, path)
			}
		}
	}

	c.convertSecurityDefinitions(out)
	return nil
}

// componentKey returns a 3.0-legal component key for name, recording a
// rename when sanitization was needed.
func (c *converter) componentKey(name, section string) string {
	// already mapped (definitions referenced before being walked)
	if renamed, ok := c.renamedDefs[name]; ok && section == "definitions" {
		return renamed
	}
	key := sanitizeComponentKey(name)
	if key == name {
		return name
	}
	if section == "definitions" {
		c.renamedDefs[name] = key
	}
	c.addNoteWithContext(fmt.Sprintf("%s.%s", section, name),
		fmt.Sprintf("component key %q is not valid in 3.0, renamed to %q", name, key),
		"3.0 component keys must match [a-zA-Z0-9.-_]", SeverityWarning)
	return key
}

func (c *converter) convertPaths(out *model.Document) error {
	if c.src.Paths == nil {
		return nil
	}
	out.Paths = &model.Paths{Extra: c.src.Paths.Extra.Clone()}
	if len(c.src.Paths.Items) > 0 {
		out.Paths.Items = make(map[string]*model.PathItem, len(c.src.Paths.Items))
	}
	for _, pattern := range maputil.SortedKeys(c.src.Paths.Items) {
		item, err := c.convertPathItem(c.src.Paths.Items[pattern], fmt.Sprintf("paths.%s", pattern))
		if err != nil {
			return err
		}
		out.Paths.Items[pattern] = item
	}
	return nil
}

func (c *converter) convertPathItem(src *legacy.PathItem, path string) (*model.PathItem, error) {
	dst := &model.PathItem{
		Ref:   src.Ref.Clone(),
		Extra: src.Extra.Clone(),
	}

	params, body, form, err := c.splitParameters(src.Parameters, path)
	if err != nil {
		return nil, err
	}
	dst.Parameters = params
	if body != nil || len(form) > 0 {
		// 2.0 allows body/formData at the path level; 3.0 has no
		// path-level request body, so they degrade to notes.
		c.addNote(path, "path-level body or formData parameters cannot be expressed in 3.0, dropped", SeverityCritical)
	}

	type slot struct {
		method string
		src    *legacy.Operation
		dst    **model.Operation
	}
	slots := []slot{
		{"get", src.Get, &dst.Get},
		{"put", src.Put, &dst.Put},
		{"post", src.Post, &dst.Post},
		{"delete", src.Delete, &dst.Delete},
		{"options", src.Options, &dst.Options},
		{"head", src.Head, &dst.Head},
		{"patch", src.Patch, &dst.Patch},
	}
	for _, s := range slots {
		if s.src == nil {
			continue
		}
		op, err := c.convertOperation(s.src, fmt.Sprintf("%s.%s", path, s.method))
		if err != nil {
			return nil, err
		}
		*s.dst = op
	}
	return dst, nil
}

func (c *converter) convertOperation(src *legacy.Operation, path string) (*model.Operation, error) {
	dst := &model.Operation{
		Tags:         append([]string(nil), src.Tags...),
		Summary:      src.Summary,
		Description:  src.Description,
		ExternalDocs: src.ExternalDocs.Clone(),
		OperationID:  src.OperationID,
		Deprecated:   src.Deprecated,
		Security:     model.CloneSecurityRequirements(src.Security),
		Extra:        src.Extra.Clone(),
	}

	params, body, form, err := c.splitParameters(src.Parameters, path)
	if err != nil {
		return nil, err
	}
	dst.Parameters = params

	switch {
	case body != nil && len(form) > 0:
		return nil, &specerrors.UpgradeError{
			Path:    path,
			Message: "operation mixes body and formData parameters",
		}
	case body != nil:
		dst.RequestBody = c.bodyToRequestBody(body, src, path)
	case len(form) > 0:
		rb, err := c.formToRequestBody(form, path)
		if err != nil {
			return nil, err
		}
		dst.RequestBody = rb
	}

	if len(src.Schemes) > 0 {
		c.addNote(fmt.Sprintf("%s.schemes", path),
			"operation-level schemes have no 3.0 equivalent, dropped", SeverityWarning)
	}
	if len(src.Consumes) > 0 && dst.RequestBody == nil {
		c.addNote(fmt.Sprintf("%s.consumes", path),
			"consumes without a body or formData parameter has no effect in 3.0", SeverityInfo)
	}

	if src.Responses != nil {
		produces := c.produces(src)
		dst.Responses = &model.Responses{Extra: src.Responses.Extra.Clone()}
		if src.Responses.Default != nil {
			dst.Responses.Default = c.convertResponse(src.Responses.Default, produces, fmt.Sprintf("%s.responses.default", path))
		}
		if len(src.Responses.Codes) > 0 {
			dst.Responses.Codes = make(map[string]*model.Response, len(src.Responses.Codes))
			for _, code := range maputil.SortedKeys(src.Responses.Codes) {
				dst.Responses.Codes[code] = c.convertResponse(src.Responses.Codes[code], produces, fmt.Sprintf("%s.responses.%s", path, code))
			}
		}
	}
	return dst, nil
}

// splitParameters converts the plain parameters and separates out the
// body and formData ones, which become the request body.
func (c *converter) splitParameters(params []*legacy.Parameter, path string) ([]*model.Parameter, *legacy.Parameter, []*legacy.Parameter, error) {
	if len(params) == 0 {
		return nil, nil, nil, nil
	}
	var (
		converted []*model.Parameter
		body      *legacy.Parameter
		form      []*legacy.Parameter
	)
	for i, param := range params {
		if param == nil {
			continue
		}
		paramPath := fmt.Sprintf("%s.parameters[%d]", path, i)
		switch {
		case !param.Ref.IsZero():
			converted = append(converted, &model.Parameter{Ref: param.Ref.Clone()})
		case param.In == legacy.ParamInBody:
			if body != nil {
				return nil, nil, nil, &specerrors.UpgradeError{
					Path:    paramPath,
					Message: "multiple body parameters on one operation",
				}
			}
			body = param
		case param.In == legacy.ParamInFormData:
			form = append(form, param)
		default:
			converted = append(converted, c.convertParameter(param, paramPath))
		}
	}
	return converted, body, form, nil
}

// consumes returns the operation's media types with document fallback,
// defaulting to application/json.
func (c *converter) consumes(op *legacy.Operation) []string {
	if op != nil && len(op.Consumes) > 0 {
		return effectiveMediaTypes(op.Consumes)
	}
	return effectiveMediaTypes(c.src.Consumes)
}

func (c *converter) produces(op *legacy.Operation) []string {
	if op != nil && len(op.Produces) > 0 {
		return effectiveMediaTypes(op.Produces)
	}
	return effectiveMediaTypes(c.src.Produces)
}

// effectiveMediaTypes collapses a 2.0 media type list for content keys.
// An empty list and any list containing application/json both reduce to
// application/json alone; anything else is used as listed.
func effectiveMediaTypes(list []string) []string {
	if len(list) == 0 {
		return []string{"application/json"}
	}
	for _, mt := range list {
		if mt == "application/json" {
			return []string{"application/json"}
		}
	}
	return list
}

func cloneTags(tags []*model.Tag) []*model.Tag {
	if tags == nil {
		return nil
	}
	out := make([]*model.Tag, len(tags))
	for i, t := range tags {
		out[i] = t.Clone()
	}
	return out
}

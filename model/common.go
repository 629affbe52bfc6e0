package model

// Info provides metadata about the API.
type Info struct {
	Title          string
	Description    string
	TermsOfService string
	Contact        *Contact
	License        *License
	Version        string
	// Extra captures specification extensions (fields starting with "x-")
	Extra Extensions
}

// Contact information for the exposed API.
type Contact struct {
	Name  string
	URL   string
	Email string
	Extra Extensions
}

// License information for the exposed API.
type License struct {
	Name  string
	URL   string
	Extra Extensions
}

// ExternalDocs allows referencing external documentation.
type ExternalDocs struct {
	Description string
	URL         string
	Extra       Extensions
}

// Tag adds metadata to a single tag used by operations.
type Tag struct {
	Name         string
	Description  string
	ExternalDocs *ExternalDocs
	Extra        Extensions
}

// Server represents a Server object.
type Server struct {
	URL         string
	Description string
	Variables   map[string]*ServerVariable
	Extra       Extensions
}

// ServerVariable represents a Server Variable object.
type ServerVariable struct {
	Enum        []string
	Default     string
	Description string
	Extra       Extensions
}

// SecurityRequirement lists the security schemes required to execute an
// operation, mapping scheme names to scopes.
type SecurityRequirement map[string][]string

var infoKeys = map[string]bool{
	"title": true, "description": true, "termsOfService": true,
	"contact": true, "license": true, "version": true,
}

// DecodeInfo decodes an info object.
func DecodeInfo(v any, path string) (*Info, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	info := &Info{
		Title:          mapGetString(m, "title"),
		Description:    mapGetString(m, "description"),
		TermsOfService: mapGetString(m, "termsOfService"),
		Version:        mapGetString(m, "version"),
		Extra:          extractExtra(m, infoKeys),
	}
	if sub, ok := m["contact"].(map[string]any); ok {
		info.Contact = &Contact{
			Name:  mapGetString(sub, "name"),
			URL:   mapGetString(sub, "url"),
			Email: mapGetString(sub, "email"),
			Extra: extractExtra(sub, map[string]bool{"name": true, "url": true, "email": true}),
		}
	}
	if sub, ok := m["license"].(map[string]any); ok {
		info.License = &License{
			Name:  mapGetString(sub, "name"),
			URL:   mapGetString(sub, "url"),
			Extra: extractExtra(sub, map[string]bool{"name": true, "url": true}),
		}
	}
	return info, nil
}

// ToTree serializes the info object back to its tree form.
func (i *Info) ToTree() map[string]any {
	m := make(map[string]any, 6+len(i.Extra))
	m["title"] = i.Title
	m["version"] = i.Version
	if i.Description != "" {
		m["description"] = i.Description
	}
	if i.TermsOfService != "" {
		m["termsOfService"] = i.TermsOfService
	}
	if i.Contact != nil {
		c := make(map[string]any, 3+len(i.Contact.Extra))
		if i.Contact.Name != "" {
			c["name"] = i.Contact.Name
		}
		if i.Contact.URL != "" {
			c["url"] = i.Contact.URL
		}
		if i.Contact.Email != "" {
			c["email"] = i.Contact.Email
		}
		mergeExtra(c, i.Contact.Extra)
		m["contact"] = c
	}
	if i.License != nil {
		l := make(map[string]any, 2+len(i.License.Extra))
		l["name"] = i.License.Name
		if i.License.URL != "" {
			l["url"] = i.License.URL
		}
		mergeExtra(l, i.License.Extra)
		m["license"] = l
	}
	mergeExtra(m, i.Extra)
	return m
}

// DecodeExternalDocs decodes an external documentation object.
func DecodeExternalDocs(m map[string]any) *ExternalDocs {
	return &ExternalDocs{
		Description: mapGetString(m, "description"),
		URL:         mapGetString(m, "url"),
		Extra:       extractExtra(m, map[string]bool{"description": true, "url": true}),
	}
}

// ToTree serializes the external documentation object.
func (e *ExternalDocs) ToTree() map[string]any {
	m := make(map[string]any, 2+len(e.Extra))
	m["url"] = e.URL
	if e.Description != "" {
		m["description"] = e.Description
	}
	mergeExtra(m, e.Extra)
	return m
}

// DecodeTag decodes a tag object.
func DecodeTag(m map[string]any) *Tag {
	t := &Tag{
		Name:        mapGetString(m, "name"),
		Description: mapGetString(m, "description"),
		Extra:       extractExtra(m, map[string]bool{"name": true, "description": true, "externalDocs": true}),
	}
	if sub, ok := m["externalDocs"].(map[string]any); ok {
		t.ExternalDocs = DecodeExternalDocs(sub)
	}
	return t
}

// ToTree serializes the tag object.
func (t *Tag) ToTree() map[string]any {
	m := make(map[string]any, 3+len(t.Extra))
	m["name"] = t.Name
	if t.Description != "" {
		m["description"] = t.Description
	}
	if t.ExternalDocs != nil {
		m["externalDocs"] = t.ExternalDocs.ToTree()
	}
	mergeExtra(m, t.Extra)
	return m
}

var serverKeys = map[string]bool{"url": true, "description": true, "variables": true}

func decodeServer(v any, path string) (*Server, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	s := &Server{
		URL:         mapGetString(m, "url"),
		Description: mapGetString(m, "description"),
		Extra:       extractExtra(m, serverKeys),
	}
	if vars, ok := m["variables"].(map[string]any); ok {
		s.Variables = make(map[string]*ServerVariable, len(vars))
		for name, raw := range vars {
			sub, ok := raw.(map[string]any)
			if !ok {
				return nil, malformed(joinPath(path, "variables"), name, "expected an object")
			}
			s.Variables[name] = &ServerVariable{
				Enum:        mapGetStringSlice(sub, "enum"),
				Default:     mapGetString(sub, "default"),
				Description: mapGetString(sub, "description"),
				Extra:       extractExtra(sub, map[string]bool{"enum": true, "default": true, "description": true}),
			}
		}
	}
	return s, nil
}

func (s *Server) toTree() map[string]any {
	m := make(map[string]any, 3+len(s.Extra))
	m["url"] = s.URL
	if s.Description != "" {
		m["description"] = s.Description
	}
	if len(s.Variables) > 0 {
		vars := make(map[string]any, len(s.Variables))
		for name, v := range s.Variables {
			sub := make(map[string]any, 3+len(v.Extra))
			sub["default"] = v.Default
			if len(v.Enum) > 0 {
				sub["enum"] = stringsToTree(v.Enum)
			}
			if v.Description != "" {
				sub["description"] = v.Description
			}
			mergeExtra(sub, v.Extra)
			vars[name] = sub
		}
		m["variables"] = vars
	}
	mergeExtra(m, s.Extra)
	return m
}

// DecodeSecurityRequirements decodes a []any into []SecurityRequirement.
func DecodeSecurityRequirements(arr []any) []SecurityRequirement {
	if arr == nil {
		return nil
	}
	result := make([]SecurityRequirement, 0, len(arr))
	for _, item := range arr {
		im, ok := item.(map[string]any)
		if !ok {
			continue
		}
		sr := make(SecurityRequirement, len(im))
		for name, scopes := range im {
			sr[name] = anySliceToStrings(scopes)
		}
		result = append(result, sr)
	}
	return result
}

// SecurityRequirementsTree serializes security requirements to their tree form.
func SecurityRequirementsTree(reqs []SecurityRequirement) []any {
	out := make([]any, 0, len(reqs))
	for _, sr := range reqs {
		m := make(map[string]any, len(sr))
		for name, scopes := range sr {
			m[name] = stringsToTree(scopes)
		}
		out = append(out, m)
	}
	return out
}

func anySliceToStrings(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// stringsToTree converts a []string into the []any shape tree nodes use.
func stringsToTree(strs []string) []any {
	out := make([]any, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}

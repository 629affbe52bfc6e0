package model

import "fmt"

// Security scheme type constants
const (
	SecurityTypeAPIKey        = "apiKey"
	SecurityTypeHTTP          = "http"
	SecurityTypeOAuth2        = "oauth2"
	SecurityTypeOpenIDConnect = "openIdConnect"
)

// SecurityScheme defines a security scheme usable by operations.
type SecurityScheme struct {
	Ref Reference

	Type        string
	Description string

	// apiKey fields
	Name string
	In   string

	// http fields
	Scheme       string
	BearerFormat string

	// oauth2 fields
	Flows *OAuthFlows

	// openIdConnect fields
	OpenIDConnectURL string

	Extra Extensions
}

// OAuthFlows configures the supported OAuth flow objects.
type OAuthFlows struct {
	Implicit          *OAuthFlow
	Password          *OAuthFlow
	ClientCredentials *OAuthFlow
	AuthorizationCode *OAuthFlow
	Extra             Extensions
}

// OAuthFlow holds configuration details for a single OAuth flow.
type OAuthFlow struct {
	AuthorizationURL string
	TokenURL         string
	RefreshURL       string
	Scopes           map[string]string
	Extra            Extensions
}

var securitySchemeKeys = map[string]bool{
	"type": true, "description": true, "name": true, "in": true,
	"scheme": true, "bearerFormat": true, "flows": true,
	"openIdConnectUrl": true,
}

func decodeSecurityScheme(v any, path string) (*SecurityScheme, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	if refStr, ok := m["$ref"].(string); ok {
		return &SecurityScheme{Ref: ParseReference(refStr)}, nil
	}
	s := &SecurityScheme{
		Type:             mapGetString(m, "type"),
		Description:      mapGetString(m, "description"),
		Name:             mapGetString(m, "name"),
		In:               mapGetString(m, "in"),
		Scheme:           mapGetString(m, "scheme"),
		BearerFormat:     mapGetString(m, "bearerFormat"),
		OpenIDConnectURL: mapGetString(m, "openIdConnectUrl"),
		Extra:            extractExtra(m, securitySchemeKeys),
	}
	switch s.Type {
	case SecurityTypeAPIKey, SecurityTypeHTTP, SecurityTypeOAuth2, SecurityTypeOpenIDConnect:
	default:
		return nil, malformed(path, "type", fmt.Sprintf("unrecognized security scheme type %q", s.Type))
	}
	if raw, ok := m["flows"]; ok {
		if s.Flows, err = decodeOAuthFlows(raw, joinPath(path, "flows")); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *SecurityScheme) toTree() map[string]any {
	if !s.Ref.IsZero() {
		return map[string]any{"$ref": s.Ref.String()}
	}
	m := make(map[string]any, 4+len(s.Extra))
	m["type"] = s.Type
	if s.Description != "" {
		m["description"] = s.Description
	}
	if s.Name != "" {
		m["name"] = s.Name
	}
	if s.In != "" {
		m["in"] = s.In
	}
	if s.Scheme != "" {
		m["scheme"] = s.Scheme
	}
	if s.BearerFormat != "" {
		m["bearerFormat"] = s.BearerFormat
	}
	if s.Flows != nil {
		m["flows"] = s.Flows.toTree()
	}
	if s.OpenIDConnectURL != "" {
		m["openIdConnectUrl"] = s.OpenIDConnectURL
	}
	mergeExtra(m, s.Extra)
	return m
}

var oauthFlowsKeys = map[string]bool{
	"implicit": true, "password": true, "clientCredentials": true,
	"authorizationCode": true,
}

func decodeOAuthFlows(v any, path string) (*OAuthFlows, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	flows := &OAuthFlows{Extra: extractExtra(m, oauthFlowsKeys)}
	targets := map[string]**OAuthFlow{
		"implicit":          &flows.Implicit,
		"password":          &flows.Password,
		"clientCredentials": &flows.ClientCredentials,
		"authorizationCode": &flows.AuthorizationCode,
	}
	for key, target := range targets {
		raw, ok := m[key]
		if !ok {
			continue
		}
		flow, err := decodeOAuthFlow(raw, joinPath(path, key))
		if err != nil {
			return nil, err
		}
		*target = flow
	}
	return flows, nil
}

func (f *OAuthFlows) toTree() map[string]any {
	m := make(map[string]any, 2+len(f.Extra))
	if f.Implicit != nil {
		m["implicit"] = f.Implicit.toTree()
	}
	if f.Password != nil {
		m["password"] = f.Password.toTree()
	}
	if f.ClientCredentials != nil {
		m["clientCredentials"] = f.ClientCredentials.toTree()
	}
	if f.AuthorizationCode != nil {
		m["authorizationCode"] = f.AuthorizationCode.toTree()
	}
	mergeExtra(m, f.Extra)
	return m
}

var oauthFlowKeys = map[string]bool{
	"authorizationUrl": true, "tokenUrl": true, "refreshUrl": true,
	"scopes": true,
}

func decodeOAuthFlow(v any, path string) (*OAuthFlow, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	return &OAuthFlow{
		AuthorizationURL: mapGetString(m, "authorizationUrl"),
		TokenURL:         mapGetString(m, "tokenUrl"),
		RefreshURL:       mapGetString(m, "refreshUrl"),
		Scopes:           mapGetStringMap(m, "scopes"),
		Extra:            extractExtra(m, oauthFlowKeys),
	}, nil
}

func (f *OAuthFlow) toTree() map[string]any {
	m := make(map[string]any, 3+len(f.Extra))
	if f.AuthorizationURL != "" {
		m["authorizationUrl"] = f.AuthorizationURL
	}
	if f.TokenURL != "" {
		m["tokenUrl"] = f.TokenURL
	}
	if f.RefreshURL != "" {
		m["refreshUrl"] = f.RefreshURL
	}
	// scopes is required by the flow object, emit even when empty
	scopes := make(map[string]any, len(f.Scopes))
	for name, desc := range f.Scopes {
		scopes[name] = desc
	}
	m["scopes"] = scopes
	mergeExtra(m, f.Extra)
	return m
}

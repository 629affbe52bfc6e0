package legacy

import (
	"fmt"

	"github.com/specmorph/oasdoc/internal/maputil"
	"github.com/specmorph/oasdoc/model"
)

// Security scheme type constants. 2.0 predates bearer and openIdConnect.
const (
	SecurityTypeBasic  = "basic"
	SecurityTypeAPIKey = "apiKey"
	SecurityTypeOAuth2 = "oauth2"
)

// OAuth2 flow constants as 2.0 names them.
const (
	FlowImplicit    = "implicit"
	FlowPassword    = "password"
	FlowApplication = "application"
	FlowAccessCode  = "accessCode"
)

// SecurityScheme defines a 2.0 security scheme. oauth2 schemes carry a
// single flat flow instead of the 3.0 flows object.
type SecurityScheme struct {
	Type        string
	Description string

	// apiKey fields
	Name string
	In   string

	// oauth2 fields
	Flow             string
	AuthorizationURL string
	TokenURL         string
	Scopes           map[string]string

	Extra model.Extensions
}

var securitySchemeKeys = map[string]bool{
	"type": true, "description": true, "name": true, "in": true,
	"flow": true, "authorizationUrl": true, "tokenUrl": true, "scopes": true,
}

func decodeSecurityScheme(v any, path string) (*SecurityScheme, error) {
	m, err := requireMap(v, path)
	if err != nil {
		return nil, err
	}
	s := &SecurityScheme{
		Type:             maputil.GetString(m, "type"),
		Description:      maputil.GetString(m, "description"),
		Name:             maputil.GetString(m, "name"),
		In:               maputil.GetString(m, "in"),
		Flow:             maputil.GetString(m, "flow"),
		AuthorizationURL: maputil.GetString(m, "authorizationUrl"),
		TokenURL:         maputil.GetString(m, "tokenUrl"),
		Scopes:           maputil.GetStringMap(m, "scopes"),
		Extra:            extractExtra(m, securitySchemeKeys),
	}
	switch s.Type {
	case SecurityTypeBasic, SecurityTypeAPIKey, SecurityTypeOAuth2:
	default:
		return nil, malformed(path, "type", fmt.Sprintf("unrecognized security scheme type %q", s.Type))
	}
	return s, nil
}

func (s *SecurityScheme) toTree() map[string]any {
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
	if s.Flow != "" {
		m["flow"] = s.Flow
	}
	if s.AuthorizationURL != "" {
		m["authorizationUrl"] = s.AuthorizationURL
	}
	if s.TokenURL != "" {
		m["tokenUrl"] = s.TokenURL
	}
	if s.Scopes != nil {
		scopes := make(map[string]any, len(s.Scopes))
		for name, desc := range s.Scopes {
			scopes[name] = desc
		}
		m["scopes"] = scopes
	}
	mergeExtra(m, s.Extra)
	return m
}

package upgrade

import (
	"fmt"
	"maps"

	"github.com/specmorph/oasdoc/internal/maputil"
	"github.com/specmorph/oasdoc/legacy"
	"github.com/specmorph/oasdoc/model"
)

// convertSecurityDefinitions moves securityDefinitions into
// components.securitySchemes. basic auth becomes the http scheme and
// the flat 2.0 oauth2 flow becomes the matching nested flow object.
func (c *converter) convertSecurityDefinitions(out *model.Document) {
	src := c.src
	if len(src.SecurityDefinitions) == 0 {
		return
	}
	out.Components.SecuritySchemes = make(map[string]*model.SecurityScheme, len(src.SecurityDefinitions))

	for _, name := range maputil.SortedKeys(src.SecurityDefinitions) {
		def := src.SecurityDefinitions[name]
		path := fmt.Sprintf("securityDefinitions.%s", name)

		scheme := &model.SecurityScheme{
			Type:        def.Type,
			Description: def.Description,
			Name:        def.Name,
			In:          def.In,
			Extra:       def.Extra.Clone(),
		}

		switch def.Type {
		case legacy.SecurityTypeBasic:
			scheme.Type = model.SecurityTypeHTTP
			scheme.Scheme = "basic"
		case legacy.SecurityTypeOAuth2:
			scheme.Flows = c.convertOAuthFlow(def, path)
		}

		out.Components.SecuritySchemes[name] = scheme
	}
}

func (c *converter) convertOAuthFlow(def *legacy.SecurityScheme, path string) *model.OAuthFlows {
	flows := &model.OAuthFlows{}
	switch def.Flow {
	case legacy.FlowImplicit:
		flows.Implicit = &model.OAuthFlow{
			AuthorizationURL: def.AuthorizationURL,
			Scopes:           maps.Clone(def.Scopes),
		}
	case legacy.FlowPassword:
		flows.Password = &model.OAuthFlow{
			TokenURL: def.TokenURL,
			Scopes:   maps.Clone(def.Scopes),
		}
	case legacy.FlowApplication:
		flows.ClientCredentials = &model.OAuthFlow{
			TokenURL: def.TokenURL,
			Scopes:   maps.Clone(def.Scopes),
		}
	case legacy.FlowAccessCode:
		flows.AuthorizationCode = &model.OAuthFlow{
			AuthorizationURL: def.AuthorizationURL,
			TokenURL:         def.TokenURL,
			Scopes:           maps.Clone(def.Scopes),
		}
	default:
		c.addNoteWithContext(path,
			fmt.Sprintf("unknown oauth2 flow %q", def.Flow),
			"scheme emitted without flow configuration", SeverityWarning)
	}
	return flows
}

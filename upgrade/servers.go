package upgrade

import (
	"fmt"

	"github.com/specmorph/oasdoc/model"
)

// convertServers builds the 3.0 servers array from host, basePath, and
// schemes. One server per scheme; a document without a host gets a
// single relative default server.
func (c *converter) convertServers() []*model.Server {
	src := c.src

	if src.Host == "" {
		url := src.BasePath
		if url == "" {
			url = "/"
		}
		c.addNote("servers", "no host in source document, using a relative default server", SeverityInfo)
		return []*model.Server{{URL: url}}
	}

	schemes := src.Schemes
	if len(schemes) == 0 {
		schemes = []string{c.defaultScheme}
		c.addNote("servers",
			fmt.Sprintf("no schemes in source document, assuming %s", c.defaultScheme), SeverityInfo)
	}

	servers := make([]*model.Server, 0, len(schemes))
	for _, scheme := range schemes {
		servers = append(servers, &model.Server{
			URL: fmt.Sprintf("%s://%s%s", scheme, src.Host, src.BasePath),
		})
	}
	return servers
}

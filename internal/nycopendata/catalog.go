// Package nycopendata enumerates the NYC Open Data resources the app reads.
package nycopendata

import (
	"fmt"

	"github.com/samvad-hq/nyc-schools/internal/config"
	"github.com/samvad-hq/nyc-schools/pkg/network"
)

// Resource identifies one dataset on the Socrata API.
type Resource int

const (
	Schools Resource = iota
	SATScores
)

func (r Resource) String() string {
	switch r {
	case Schools:
		return "schools"
	case SATScores:
		return "sat_scores"
	default:
		return fmt.Sprintf("resource(%d)", int(r))
	}
}

// AppTokenHeader carries the Socrata application token.
const AppTokenHeader = "X-App-Token"

// Catalog builds endpoints for the configured API host.
type Catalog struct {
	scheme network.Scheme
	host   string
	token  string
	paths  map[Resource]string
}

// NewCatalog reads scheme, host, token and dataset paths from cfg.
func NewCatalog(cfg *config.Config) *Catalog {
	return &Catalog{
		scheme: network.Scheme(cfg.APIScheme),
		host:   cfg.APIHost,
		token:  cfg.APIToken,
		paths: map[Resource]string{
			Schools:   cfg.SchoolsPath,
			SATScores: cfg.SATScoresPath,
		},
	}
}

// Endpoint returns the GET endpoint for r. Unknown resources yield an endpoint whose
// URL fails to build, which the pipeline reports as an invalid request.
func (c *Catalog) Endpoint(r Resource) network.Endpoint {
	path, ok := c.paths[r]
	if !ok {
		path = "invalid-resource"
	}
	ep := network.Endpoint{
		Method: network.MethodGet,
		Scheme: c.scheme,
		Host:   c.host,
		Path:   path,
	}
	if c.token != "" {
		ep.Headers = map[string]string{AppTokenHeader: c.token}
	}
	return ep
}

// SchoolsEndpoint is shorthand for Endpoint(Schools).
func (c *Catalog) SchoolsEndpoint() network.Endpoint { return c.Endpoint(Schools) }

// SATScoresEndpoint is shorthand for Endpoint(SATScores).
func (c *Catalog) SATScoresEndpoint() network.Endpoint { return c.Endpoint(SATScores) }

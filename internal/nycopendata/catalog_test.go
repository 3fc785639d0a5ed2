package nycopendata

import (
	"testing"

	"github.com/samvad-hq/nyc-schools/internal/config"
	"github.com/samvad-hq/nyc-schools/pkg/network"
)

func testConfig(token string) *config.Config {
	return &config.Config{
		APIScheme:     "https",
		APIHost:       "data.cityofnewyork.us",
		APIToken:      token,
		SchoolsPath:   "/resource/s3k6-pzi2.json",
		SATScoresPath: "/resource/f9bf-2cp4.json",
	}
}

func TestCatalogEndpoints(t *testing.T) {
	c := NewCatalog(testConfig(""))

	cases := map[Resource]string{
		Schools:   "https://data.cityofnewyork.us/resource/s3k6-pzi2.json",
		SATScores: "https://data.cityofnewyork.us/resource/f9bf-2cp4.json",
	}
	for r, want := range cases {
		ep := c.Endpoint(r)
		if ep.Method != network.MethodGet {
			t.Fatalf("%s: expected GET, got %s", r, ep.Method)
		}
		if ep.Headers != nil {
			t.Fatalf("%s: expected no headers without token, got %v", r, ep.Headers)
		}
		u, err := ep.URL()
		if err != nil {
			t.Fatalf("%s: url: %v", r, err)
		}
		if u.String() != want {
			t.Fatalf("%s: expected %s, got %s", r, want, u.String())
		}
	}
}

func TestCatalogSetsAppToken(t *testing.T) {
	c := NewCatalog(testConfig("secret"))
	ep := c.SATScoresEndpoint()
	if ep.Headers[AppTokenHeader] != "secret" {
		t.Fatalf("expected app token header, got %v", ep.Headers)
	}
	if c.SchoolsEndpoint().Path != "/resource/s3k6-pzi2.json" {
		t.Fatalf("unexpected schools path")
	}
}

func TestCatalogUnknownResourceFailsURL(t *testing.T) {
	c := NewCatalog(testConfig(""))
	if _, err := c.Endpoint(Resource(42)).URL(); err == nil {
		t.Fatalf("expected url error for unknown resource")
	}
	if Resource(42).String() != "resource(42)" {
		t.Fatalf("unexpected string %q", Resource(42).String())
	}
}

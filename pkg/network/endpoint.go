package network

import (
	"fmt"
	"net/url"
	"strings"
)

// Method is an HTTP verb an endpoint may declare.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
	MethodPut    Method = "PUT"
)

// Scheme is the URL scheme of an endpoint.
type Scheme string

const (
	SchemeHTTP  Scheme = "http"
	SchemeHTTPS Scheme = "https"
)

// QueryParam is a single key/value query item. Order is preserved when encoding.
type QueryParam struct {
	Key   string
	Value string
}

// Endpoint describes one API call target. It carries no behavior beyond URL composition.
type Endpoint struct {
	Method  Method
	Scheme  Scheme
	Host    string
	Path    string
	Headers map[string]string
	Query   []QueryParam
}

// URL composes the absolute URL for the endpoint or reports why it cannot.
func (e Endpoint) URL() (*url.URL, error) {
	if e.Scheme != SchemeHTTP && e.Scheme != SchemeHTTPS {
		return nil, fmt.Errorf("unsupported scheme %q", e.Scheme)
	}

	host := strings.TrimSpace(e.Host)
	if host == "" {
		return nil, fmt.Errorf("host is empty")
	}
	parsed, err := url.Parse(string(e.Scheme) + "://" + host)
	if err != nil {
		return nil, fmt.Errorf("parse host %q: %w", host, err)
	}
	if parsed.Host != host || parsed.User != nil || parsed.Path != "" || parsed.RawQuery != "" || parsed.Fragment != "" {
		return nil, fmt.Errorf("host %q is not a bare host[:port]", host)
	}

	if e.Path != "" && !strings.HasPrefix(e.Path, "/") {
		return nil, fmt.Errorf("path %q must start with /", e.Path)
	}

	u := &url.URL{
		Scheme:   string(e.Scheme),
		Host:     host,
		Path:     e.Path,
		RawQuery: encodeQuery(e.Query),
	}
	return u, nil
}

func encodeQuery(params []QueryParam) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

// describe is used in log entries; it never fails even for invalid endpoints.
func (e Endpoint) describe() map[string]any {
	return map[string]any{
		"method": string(e.Method),
		"scheme": string(e.Scheme),
		"host":   e.Host,
		"path":   e.Path,
	}
}

package apikit

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Manifest is a declarative YAML description of services and endpoints.
// Model factories carry functions and cannot live in YAML, so a manifest
// references models by name and is built against a set of registered
// factories.
//
// Example manifest:
//
//	services:
//	  - name: account
//	    basePath: /account
//	    headers:
//	      X-Client: web
//	    endpoints:
//	      - name: login
//	        path: /login
//	        model: login
//	      - name: profile
//	        path: /profile
//	        method: GET
//	        requiresAuth: true
type Manifest struct {
	Services []ServiceManifest `yaml:"services"`
}

// ServiceManifest declares one service with its endpoints.
type ServiceManifest struct {
	Name      string             `yaml:"name"`
	BasePath  string             `yaml:"basePath"`
	Headers   map[string]string  `yaml:"headers"`
	Endpoints []EndpointManifest `yaml:"endpoints"`
}

// EndpointManifest declares one endpoint. Omitted method and model fall back
// to the usual defaults (POST, "empty").
type EndpointManifest struct {
	Name         string            `yaml:"name"`
	Path         string            `yaml:"path"`
	Method       string            `yaml:"method"`
	Model        string            `yaml:"model"`
	RequiresAuth bool              `yaml:"requiresAuth"`
	Headers      map[string]string `yaml:"headers"`
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}

// Build assembles a Service from the manifest entry. Referenced models must
// be present in the supplied factory map (the "empty" model is always
// available); a dangling reference fails the build before any endpoint of
// the service is usable.
func (sm ServiceManifest) Build(models map[string]*ModelFactory) (*Service, error) {
	if sm.Name == "" {
		return nil, ErrServiceUnnamed
	}

	svc := NewService(sm.Name, sm.BasePath)
	for name, f := range models {
		if name == EmptyModel {
			continue
		}
		if err := svc.AddModel(name, f); err != nil {
			return nil, fmt.Errorf("service %q: %w", sm.Name, err)
		}
	}
	for k, v := range sm.Headers {
		svc.AddHeader(k, v)
	}
	for _, ep := range sm.Endpoints {
		err := svc.AddEndpoint(EndpointConfig{
			Name:         ep.Name,
			Path:         ep.Path,
			Method:       ep.Method,
			Model:        ep.Model,
			RequiresAuth: ep.RequiresAuth,
			Headers:      ep.Headers,
		})
		if err != nil {
			return nil, fmt.Errorf("service %q: %w", sm.Name, err)
		}
	}
	return svc, nil
}

// LoadManifest parses a YAML manifest and registers every declared service
// on the client. The models map is keyed by service name; services without
// an entry get only the pre-registered "empty" model.
func (c *Client) LoadManifest(r io.Reader, models map[string]map[string]*ModelFactory) error {
	m, err := ParseManifest(r)
	if err != nil {
		return err
	}
	for _, sm := range m.Services {
		svc, err := sm.Build(models[sm.Name])
		if err != nil {
			return err
		}
		if err := c.AddService(svc); err != nil {
			return err
		}
	}
	return nil
}

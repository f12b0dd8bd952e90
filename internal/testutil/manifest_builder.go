package testutil

import "github.com/hupe1980/openfloor/core"

// ManifestBuilder provides a fluent helper for constructing manifests in
// tests. Chain only the parts you need; sensible defaults are applied.
//
// Example:
//
//	m := NewManifestBuilder().Name("scout").Capability("search").Build()
type ManifestBuilder struct {
	name         string
	version      string
	description  string
	capabilities []string
}

// NewManifestBuilder creates a builder with default name "agent" and
// version "1.0.0".
func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{name: "agent", version: "1.0.0"}
}

// Name sets the manifest name (chainable).
func (b *ManifestBuilder) Name(n string) *ManifestBuilder { b.name = n; return b }

// Version sets the semantic version string (chainable).
func (b *ManifestBuilder) Version(v string) *ManifestBuilder { b.version = v; return b }

// Description sets the free-text description (chainable).
func (b *ManifestBuilder) Description(d string) *ManifestBuilder { b.description = d; return b }

// Capability appends a capability tag (chainable).
func (b *ManifestBuilder) Capability(tags ...string) *ManifestBuilder {
	b.capabilities = append(b.capabilities, tags...)
	return b
}

// Build assembles the manifest.
func (b *ManifestBuilder) Build() core.Manifest {
	return core.Manifest{
		Name:         b.name,
		Version:      b.version,
		Description:  b.description,
		Capabilities: b.capabilities,
	}
}

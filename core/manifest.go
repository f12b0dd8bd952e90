package core

// Manifest is an agent's self-declared description: name, semantic version,
// free-text description and an ordered sequence of capability tags. Tags may
// repeat; matching treats them as a set while the declared order is preserved
// for display. A manifest is replaced wholesale on re-announcement, never
// partially updated.
type Manifest struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// HasCapability reports whether the manifest declares the given tag.
func (m Manifest) HasCapability(tag string) bool {
	for _, c := range m.Capabilities {
		if c == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the manifest safe for independent mutation.
func (m Manifest) Clone() Manifest {
	if m.Capabilities != nil {
		caps := make([]string, len(m.Capabilities))
		copy(caps, m.Capabilities)
		m.Capabilities = caps
	}
	return m
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/engine"
)

// Config declares one session: engine tuning and the agents announced at
// startup.
type Config struct {
	Engine EngineConfig  `yaml:"engine"`
	Agents []AgentConfig `yaml:"agents"`
}

// EngineConfig mirrors engine.Config in file form. Zero values fall back to
// engine.DefaultConfig.
type EngineConfig struct {
	EventBufferSize    int `yaml:"event_buffer_size"`
	StatsWindowSeconds int `yaml:"stats_window_seconds"`
}

// AgentConfig declares one participant and its manifest.
type AgentConfig struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Version      string   `yaml:"version"`
	Description  string   `yaml:"description"`
	Capabilities []string `yaml:"capabilities"`
}

// Manifest converts the declaration into a core.Manifest.
func (a AgentConfig) Manifest() core.Manifest {
	return core.Manifest{
		Name:         a.Name,
		Version:      a.Version,
		Description:  a.Description,
		Capabilities: a.Capabilities,
	}
}

// Load reads and validates a YAML session configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the declaration for duplicate or missing agent identities.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Agents))
	for i, a := range c.Agents {
		if a.ID == "" {
			return fmt.Errorf("agent %d: missing id", i)
		}
		if a.ID == string(core.Broadcast) {
			return fmt.Errorf("agent %d: id %q is reserved", i, a.ID)
		}
		if seen[a.ID] {
			return fmt.Errorf("agent %d: duplicate id %q", i, a.ID)
		}
		seen[a.ID] = true
		if a.Name == "" {
			return fmt.Errorf("agent %q: missing name", a.ID)
		}
	}
	return nil
}

// EngineConfig converts the file form into engine.Config, applying defaults
// for unset fields.
func (c *Config) EngineConfig() engine.Config {
	out := engine.DefaultConfig
	if c.Engine.EventBufferSize > 0 {
		out.EventBufferSize = c.Engine.EventBufferSize
	}
	if c.Engine.StatsWindowSeconds > 0 {
		out.StatsWindow = time.Duration(c.Engine.StatsWindowSeconds) * time.Second
	}
	return out
}

// Command openfloor runs a scripted demonstration session: it announces the
// configured agents, lets them contend for the floor concurrently, and
// prints the envelope transcript, the protocol event log and its statistics.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/pflag"

	"github.com/hupe1980/openfloor"
	"github.com/hupe1980/openfloor/agent"
	"github.com/hupe1980/openfloor/config"
	"github.com/hupe1980/openfloor/core"
	"github.com/hupe1980/openfloor/engine"
	"github.com/hupe1980/openfloor/logging"
)

func main() {
	var (
		configPath string
		logLevel   string
		logFormat  string
		timeout    time.Duration
	)
	pflag.StringVar(&configPath, "config", "", "path to a YAML session configuration")
	pflag.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pflag.StringVar(&logFormat, "log-format", "text", "log format: text or json")
	pflag.DurationVar(&timeout, "timeout", 10*time.Second, "overall session timeout")
	pflag.Parse()

	if err := run(configPath, logLevel, logFormat, timeout); err != nil {
		fmt.Fprintln(os.Stderr, "openfloor:", err)
		os.Exit(1)
	}
}

func run(configPath, logLevel, logFormat string, timeout time.Duration) error {
	engineConfig := engine.DefaultConfig
	agents := defaultAgents()

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		engineConfig = cfg.EngineConfig()
		agents = agentsFromConfig(cfg)
	}

	session := openfloor.New(func(o *openfloor.Options) {
		o.EngineConfig = engineConfig
		o.Logger = logging.NewSlogLogger(parseLevel(logLevel), logFormat, false)
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Announce everyone up front so broadcasts reach the whole roster even
	// before an agent's own turn starts.
	for _, a := range agents {
		a.Announce(session.Engine())
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(agents))
	for _, a := range agents {
		wg.Add(1)
		go func(a *agent.ScriptedAgent) {
			defer wg.Done()
			if _, err := a.Run(ctx, session.Engine()); err != nil {
				errs <- fmt.Errorf("agent %s: %w", a.ID(), err)
			}
		}(a)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		return err
	}

	fmt.Println("transcript:")
	for env := range session.History(core.EnvelopeFilter{Type: core.MessageConversational}) {
		fmt.Printf("  %-8s -> %-8s %v\n", env.Sender, env.Recipient, env.Payload)
	}

	fmt.Println("\nprotocol events:")
	for ev := range session.Events(0) {
		fmt.Printf("  %3d %s\n", ev.Seq, ev.Type)
	}

	stats := session.Stats()
	fmt.Printf("\ntotal events: %d, rate: %.1f/min\n", stats.Total, stats.EventsPerMinute)
	for typ, count := range stats.ByType {
		fmt.Printf("  %-20s %d\n", typ, count)
	}
	return nil
}

// defaultAgents is the built-in roster used when no config file is given.
func defaultAgents() []*agent.ScriptedAgent {
	return []*agent.ScriptedAgent{
		agent.New("moderator",
			core.Manifest{Name: "moderator", Version: "1.0.0", Description: "Opens the session", Capabilities: []string{"moderate"}},
			[]agent.Line{{Recipient: core.Broadcast, Text: "Welcome. Who has findings?"}},
			func(o *agent.Options) { o.Priority = core.PriorityHigh },
		),
		agent.New("scout",
			core.Manifest{Name: "scout", Version: "1.0.0", Description: "Gathers material", Capabilities: []string{"search"}},
			[]agent.Line{{Recipient: core.Broadcast, Text: "Three leads, two promising."}},
			func(o *agent.Options) { o.Priority = core.PriorityMedium },
		),
		agent.New("critic",
			core.Manifest{Name: "critic", Version: "1.0.0", Description: "Challenges conclusions", Capabilities: []string{"review"}},
			[]agent.Line{{Recipient: "scout", Text: "The second lead contradicts the first."}},
			func(o *agent.Options) { o.Priority = core.PriorityLow },
		),
	}
}

// agentsFromConfig builds a scripted roster from the configured manifests.
// Every agent broadcasts one greeting; scripts beyond that are the caller's
// domain, not the config file's.
func agentsFromConfig(cfg *config.Config) []*agent.ScriptedAgent {
	out := make([]*agent.ScriptedAgent, 0, len(cfg.Agents))
	for _, ac := range cfg.Agents {
		out = append(out, agent.New(
			core.AgentID(ac.ID),
			ac.Manifest(),
			[]agent.Line{{Recipient: core.Broadcast, Text: fmt.Sprintf("%s reporting in.", ac.Name)}},
		))
	}
	return out
}

func parseLevel(s string) logging.LogLevel {
	switch s {
	case "debug":
		return logging.LogLevelDebug
	case "info":
		return logging.LogLevelInfo
	case "error":
		return logging.LogLevelError
	default:
		return logging.LogLevelWarn
	}
}

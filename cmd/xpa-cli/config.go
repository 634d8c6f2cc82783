package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pior/xpa"
)

// Config is the TOML configuration of the CLI.
type Config struct {
	// Registry is the xpans name registry address.
	Registry string `toml:"registry"`

	// Servers, when non-empty, bypasses the registry with a static table.
	Servers []ServerConfig `toml:"servers"`

	// MaxRecipients is the default recipient bound; 0 means 1, -1 means
	// all servers.
	MaxRecipients int `toml:"max_recipients"`

	LogLevel string `toml:"log_level"`
}

// ServerConfig is one static server entry.
type ServerConfig struct {
	Name string `toml:"name"`
	Addr string `toml:"addr"`
}

func defaultConfig() *Config {
	return &Config{
		Registry: "localhost:14285",
		LogLevel: "info",
	}
}

// loadConfig reads a TOML config file; an empty path yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// resolver returns a static resolver when servers are listed, nil to let
// the client fall back to registry resolution.
func (c *Config) resolver() xpa.Resolver {
	if len(c.Servers) == 0 {
		return nil
	}
	endpoints := make([]xpa.Endpoint, len(c.Servers))
	for i, s := range c.Servers {
		endpoints[i] = xpa.Endpoint{Name: s.Name, Addr: s.Addr}
	}
	return xpa.NewStaticResolver(endpoints...)
}

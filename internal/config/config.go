// Package config holds the runtime configuration of the translator service.
package config

import (
	"github.com/creasty/defaults"
)

// Server configures the HTTP listener.
type Server struct {
	HTTPPort      int    `default:"8000"`
	StaticsFolder string
	ServerMode    string `default:"dev"`
}

// Compiler configures the downstream prqlc service and the worker pool that
// talks to it.
type Compiler struct {
	URL     string `default:"http://localhost:8181"`
	Token   string
	Workers int `default:"3"`
}

// Auth configures bearer-token verification on the API group. The secret is
// read from SecretFilePath when Enabled is set.
type Auth struct {
	Enabled        bool
	SecretFilePath string
}

// Database configures the translation history store. An empty DataFolder
// keeps the history in memory.
type Database struct {
	DataFolder string
}

type Configuration struct {
	Server   Server
	Compiler Compiler
	Auth     Auth
	Database Database
	Version  string `default:"v0.0.0"`
}

// Option mutates a Configuration after defaults are applied.
type Option func(*Configuration)

// WithCompilerURL overrides the downstream compiler endpoint.
func WithCompilerURL(url string) Option {
	return func(c *Configuration) {
		c.Compiler.URL = url
	}
}

// WithDataFolder persists the translation history under folder.
func WithDataFolder(folder string) Option {
	return func(c *Configuration) {
		c.Database.DataFolder = folder
	}
}

// NewConfigurationWithOptionsAndDefaults builds a Configuration with every
// `default:` tag applied, then runs the given options over it.
func NewConfigurationWithOptionsAndDefaults(opts ...Option) *Configuration {
	cfg := &Configuration{}
	defaults.MustSet(cfg)
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

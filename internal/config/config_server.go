package config

import (
	"fmt"
	"time"
)

// ServerApp holds backend token settings.
type ServerApp struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
	Version       string
	// Tenants maps tenant ids to API keys registered at startup.
	Tenants map[string]string
}

// ServerConfig is the backend configuration assembled from [StructuredConfig].
type ServerConfig struct {
	App     ServerApp
	Server  Server
	Storage DB
}

// GetServerConfig builds and validates the backend config view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := NewServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

// NewServerConfig maps the backend fields of cfg. A zero token duration
// defaults to one hour.
func NewServerConfig(cfg *StructuredConfig) *ServerConfig {
	serverCfg := &ServerConfig{
		App: ServerApp{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
			Version:       cfg.App.Version,
			Tenants:       cfg.App.Tenants,
		},
		Server:  cfg.Server,
		Storage: cfg.Storage.DB,
	}

	if serverCfg.App.TokenDuration == 0 {
		serverCfg.App.TokenDuration = time.Hour
	}

	return serverCfg
}

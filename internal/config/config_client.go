package config

import (
	"fmt"
	"time"
)

// Defaults applied to unset client settings.
const (
	DefaultSyncInterval   = 5 * time.Minute
	DefaultProbeInterval  = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultRequestTimeout = 15 * time.Second
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	LogFile string
}

// ClientAdapter holds the settings of the remote REST adapter.
type ClientAdapter struct {
	// HTTPAddress is the backend base address.
	HTTPAddress string
	// RequestTimeout is the timeout of a single outbound request.
	RequestTimeout time.Duration
	// TenantID and APIKey are the tenant credentials.
	TenantID string
	APIKey   string
	// Endpoints overrides the entity type to path table.
	Endpoints map[string]string
}

// ClientDB contains the local SQLite settings.
type ClientDB struct {
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientSync contains the sync engine and background worker settings.
type ClientSync struct {
	// Interval is the background sync timer period.
	Interval time.Duration
	// ProbeInterval is the connectivity probe period.
	ProbeInterval time.Duration
	// MaxRetries is the number of attempts a queued mutation gets before it
	// is dropped and counted as failed.
	MaxRetries int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration, filling defaults for unset sync settings.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the client fields of cfg and applies defaults.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{LogFile: cfg.App.LogFile},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			TenantID:       cfg.Adapter.TenantID,
			APIKey:         cfg.Adapter.APIKey,
			Endpoints:      cfg.Adapter.Endpoints,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.Local.DSN},
		},
		Sync: ClientSync{
			Interval:      cfg.Workers.SyncInterval,
			ProbeInterval: cfg.Workers.ProbeInterval,
			MaxRetries:    cfg.Workers.MaxRetries,
		},
	}

	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	clientCfg.Sync = clientCfg.Sync.WithDefaults()

	return clientCfg
}

// WithDefaults returns s with unset fields replaced by the package defaults.
func (s ClientSync) WithDefaults() ClientSync {
	if s.Interval <= 0 {
		s.Interval = DefaultSyncInterval
	}
	if s.ProbeInterval <= 0 {
		s.ProbeInterval = DefaultProbeInterval
	}
	if s.MaxRetries <= 0 {
		s.MaxRetries = DefaultMaxRetries
	}
	return s
}

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags registers and parses all configuration flags on
// flag.CommandLine using os.Args.
//
// Flags:
//
//	-a backend listen address in format [host]:[port]
//	-d backend database DSN
//	-l client local SQLite DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g. "1h")
//	-request-timeout backend request timeout (e.g. "30s")
//	-log-file client log file
//	-tenants backend tenant seeds ("acme:key,...")
//	-adapter-address backend base URL used by the client
//	-adapter-timeout client request timeout
//	-tenant-id, -api-key tenant credentials
//	-endpoints entity type to path overrides ("customer:/api/v2/customers,...")
//	-sync-interval background sync period
//	-probe-interval connectivity probe period
//	-max-retries attempts per queued mutation
func ParseFlags() (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN, localDSN string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout time.Duration
	var logFile, tenants string
	var adapterAddress, tenantID, apiKey, endpoints string
	var adapterTimeout time.Duration
	var syncInterval, probeInterval time.Duration
	var maxRetries int

	fs := flag.CommandLine
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&localDSN, "l", "", "Local SQLite DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&logFile, "log-file", "", "Client log file")
	fs.StringVar(&tenants, "tenants", "", "Tenant seeds, tenant:apiKey[,tenant:apiKey]")
	fs.StringVar(&adapterAddress, "adapter-address", "", "Backend base URL")
	fs.DurationVar(&adapterTimeout, "adapter-timeout", 0, "Client request timeout")
	fs.StringVar(&tenantID, "tenant-id", "", "Tenant ID")
	fs.StringVar(&apiKey, "api-key", "", "Tenant API key")
	fs.StringVar(&endpoints, "endpoints", "", "Entity type to path overrides, type:path[,type:path]")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval")
	fs.IntVar(&maxRetries, "max-retries", 0, "Attempts per queued mutation")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	endpointMap, err := parseEndpointList(endpoints)
	if err != nil {
		return nil, err
	}
	tenantMap, err := parseTenantList(tenants)
	if err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			LogFile:       logFile,
			Tenants:       tenantMap,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Local: Local{DSN: localDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: adapterTimeout,
			TenantID:       tenantID,
			APIKey:         apiKey,
			Endpoints:      endpointMap,
		},
		Workers: Workers{
			SyncInterval:  syncInterval,
			ProbeInterval: probeInterval,
			MaxRetries:    maxRetries,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// parseEndpointList parses "type:path,type:path". An empty string yields nil.
func parseEndpointList(s string) (map[string]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		entityType, path, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || entityType == "" || !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("%w: endpoint override %q", ErrInvalidAdapterConfigs, pair)
		}
		out[entityType] = path
	}
	return out, nil
}

// parseTenantList parses "tenant:apiKey,tenant:apiKey". An empty string
// yields nil.
func parseTenantList(s string) (map[string]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		tenantID, apiKey, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || tenantID == "" || apiKey == "" {
			return nil, fmt.Errorf("%w: tenant seed %q", ErrInvalidAppConfigs, tenantID)
		}
		out[tenantID] = apiKey
	}
	return out, nil
}

// String returns a canonical host:port string, or "" when unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The port must be positive and the host must be
// "localhost" or a literal IP.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

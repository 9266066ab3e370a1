package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/config"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/utils"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

const (
	tokenPath  = "/api/auth/token"
	healthPath = "/api/health"

	// tokens this close to expiry are refreshed before use
	tokenExpirySkew = 10 * time.Second
)

type httpRemoteAPI struct {
	client *utils.HTTPClient

	tenantID string
	apiKey   string

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	now    func() time.Time
	logger *logger.Logger
}

// NewHTTPRemoteAPI constructs the resty implementation of [RemoteAPI].
// It normalises adapterCfg.HTTPAddress into a base URL and applies the
// request timeout.
//
// When adapterCfg.TenantID is set, requests carry a bearer token obtained
// from POST /api/auth/token; without it requests go unauthenticated.
func NewHTTPRemoteAPI(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteAPI, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpRemoteAPI{
		client:   utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		tenantID: adapterCfg.TenantID,
		apiKey:   adapterCfg.APIKey,
		now:      time.Now,
		logger:   logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Get implements [RemoteAPI].
func (h *httpRemoteAPI) Get(ctx context.Context, path string) (models.Payload, error) {
	resp, err := h.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodePayload(resp)
}

// List implements [RemoteAPI]. A null body decodes to an empty list.
func (h *httpRemoteAPI) List(ctx context.Context, path string) ([]models.Payload, error) {
	resp, err := h.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var list []models.Payload
	if err = json.Unmarshal(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("%w: decode list from %s: %w", ErrMalformedResponse, path, err)
	}
	if list == nil {
		list = []models.Payload{}
	}
	return list, nil
}

// Create implements [RemoteAPI].
func (h *httpRemoteAPI) Create(ctx context.Context, path string, payload models.Payload) (models.Payload, error) {
	resp, err := h.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	return decodePayload(resp)
}

// Update implements [RemoteAPI].
func (h *httpRemoteAPI) Update(ctx context.Context, path string, payload models.Payload) (models.Payload, error) {
	resp, err := h.do(ctx, http.MethodPut, path, payload)
	if err != nil {
		return nil, err
	}
	return decodePayload(resp)
}

// Delete implements [RemoteAPI].
func (h *httpRemoteAPI) Delete(ctx context.Context, path string) error {
	_, err := h.do(ctx, http.MethodDelete, path, nil)
	return err
}

// Ping implements [RemoteAPI] with GET /api/health.
func (h *httpRemoteAPI) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(healthPath)
	if err != nil {
		return transportError("ping", err)
	}
	return mapHTTPError(resp)
}

// do sends an authenticated request. A 401 drops the cached token and the
// request is repeated once with a fresh one.
func (h *httpRemoteAPI) do(ctx context.Context, method, path string, body any) (*resty.Response, error) {
	resp, err := h.send(ctx, method, path, body, false)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == http.StatusUnauthorized && h.tenantID != "" {
		logger.FromContextOr(ctx, h.logger).Debug().
			Str("func", "httpRemoteAPI.do").
			Str("path", path).
			Msg("token rejected, re-authenticating")

		resp, err = h.send(ctx, method, path, body, true)
		if err != nil {
			return nil, err
		}
	}

	if err = mapHTTPError(resp); err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func (h *httpRemoteAPI) send(ctx context.Context, method, path string, body any, forceRefresh bool) (*resty.Response, error) {
	req := h.client.R().SetContext(ctx)

	if h.tenantID != "" {
		token, err := h.bearerToken(ctx, forceRefresh)
		if err != nil {
			return nil, err
		}
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, transportError(strings.ToLower(method)+" "+path, err)
	}
	return resp, nil
}

// bearerToken returns the cached token, exchanging the tenant credentials
// for a new one when it is missing, near expiry or forceRefresh is set.
func (h *httpRemoteAPI) bearerToken(ctx context.Context, forceRefresh bool) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !forceRefresh && h.token != "" && h.now().Add(tokenExpirySkew).Before(h.expiresAt) {
		return h.token, nil
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.TokenRequest{TenantID: h.tenantID, APIKey: h.apiKey}).
		Post(tokenPath)
	if err != nil {
		return "", transportError("token request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.token = ""
		return "", fmt.Errorf("token request: %w", err)
	}

	// the body is decoded whatever Content-Type the server declares
	var tokenResp models.TokenResponse
	if err = json.Unmarshal(resp.Body(), &tokenResp); err != nil {
		return "", fmt.Errorf("%w: token response: %w", ErrMalformedResponse, err)
	}
	if tokenResp.Token == "" {
		return "", fmt.Errorf("%w: token response without token", ErrMalformedResponse)
	}

	expiresAt, err := utils.TokenExpiry(tokenResp.Token)
	if err != nil {
		if tokenResp.ExpiresAt == 0 {
			return "", fmt.Errorf("%w: token expiry: %w", ErrMalformedResponse, err)
		}
		expiresAt = time.Unix(tokenResp.ExpiresAt, 0)
	}

	h.token, h.expiresAt = tokenResp.Token, expiresAt
	logger.FromContextOr(ctx, h.logger).Debug().
		Str("func", "httpRemoteAPI.bearerToken").
		Str("tenant_id", h.tenantID).
		Time("expires_at", expiresAt).
		Msg("obtained tenant token")

	return h.token, nil
}

func decodePayload(resp *resty.Response) (models.Payload, error) {
	raw := resp.Body()
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, nil
	}

	var p models.Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return p, nil
}

// IsTransport reports whether err is a connection-level failure rather than
// a response from the backend.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

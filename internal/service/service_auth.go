package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/config"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/store"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/utils"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/validators"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It registers tenants with bcrypt-hashed API keys and exchanges valid
// credentials for HMAC-SHA256 signed JWTs.
type authService struct {
	// tenantRepository is the data-access layer used to create and look up tenants.
	tenantRepository store.TenantRepository

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is the cost used when hashing API keys.
	bcryptCost int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// TenantRepository and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(tenantRepository store.TenantRepository, cfg config.ServerApp, logger *logger.Logger) AuthService {
	return &authService{
		tenantRepository: tenantRepository,
		validator:        validators.NewEntityValidator(),
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		bcryptCost:       bcrypt.DefaultCost,
		logger:           logger,
	}
}

// RegisterTenant stores a tenant with the bcrypt hash of apiKey.
//
// Returns the persisted tenant or:
//   - ErrInvalidDataProvided if tenantID or apiKey is empty.
//   - A wrapped storage error (e.g. store.ErrTenantAlreadyExists).
func (a *authService) RegisterTenant(ctx context.Context, tenantID, name, apiKey string) (models.Tenant, error) {
	log := logger.FromContextOr(ctx, a.logger)

	if err := a.validator.Validate(ctx, models.TokenRequest{TenantID: tenantID, APIKey: apiKey}); err != nil {
		log.Error().Err(err).Str("tenant_id", tenantID).Msg("invalid tenant data provided")
		return models.Tenant{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), a.bcryptCost)
	if err != nil {
		return models.Tenant{}, fmt.Errorf("hash API key: %w", err)
	}

	if name == "" {
		name = tenantID
	}
	tenant, err := a.tenantRepository.CreateTenant(ctx, models.Tenant{
		TenantID:   tenantID,
		Name:       name,
		APIKeyHash: string(hash),
	})
	if err != nil {
		log.Err(err).Str("tenant_id", tenantID).Msg("tenant creation ended with error")
		return models.Tenant{}, fmt.Errorf("tenant creation ended with error: %w", err)
	}

	log.Info().Str("tenant_id", tenantID).Msg("tenant registered")
	return tenant, nil
}

func (a *authService) SeedTenants(ctx context.Context, tenants map[string]string) error {
	ids := make([]string, 0, len(tenants))
	for id := range tenants {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		_, err := a.RegisterTenant(ctx, id, id, tenants[id])
		if err != nil && !errors.Is(err, store.ErrTenantAlreadyExists) {
			return fmt.Errorf("seed tenant %s: %w", id, err)
		}
	}
	return nil
}

// IssueToken verifies the tenant credentials and signs a JWT whose subject
// is the tenant id.
//
// Returns the token or:
//   - ErrInvalidDataProvided if the request is incomplete.
//   - ErrWrongCredentials if the tenant is unknown or the key does not match.
//   - ErrTokenCreationFailed if signing fails.
func (a *authService) IssueToken(ctx context.Context, req models.TokenRequest) (models.Token, error) {
	log := logger.FromContextOr(ctx, a.logger)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	tenant, err := a.tenantRepository.FindTenant(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, store.ErrTenantNotFound) {
			log.Warn().Str("tenant_id", req.TenantID).Msg("token requested for unknown tenant")
			return models.Token{}, ErrWrongCredentials
		}
		return models.Token{}, fmt.Errorf("tenant search failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(tenant.APIKeyHash), []byte(req.APIKey)); err != nil {
		log.Warn().Str("tenant_id", req.TenantID).Msg("wrong API key")
		return models.Token{}, ErrWrongCredentials
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, tenant.TenantID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT. Any validation failure (expired, wrong
// issuer, malformed) is normalised to ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

package validators

import (
	"context"
	"regexp"
	"strings"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldTenantID targets the owning tenant of an entity or token request.
	FieldTenantID = "tenant_id"

	// FieldCollection targets the collection name taken from the URL path.
	FieldCollection = "collection"

	// FieldEntityID targets the entity identifier.
	FieldEntityID = "entity_id"

	// FieldData targets the feature-owned entity fields.
	FieldData = "data"

	// FieldAPIKey targets the API key of a token request.
	FieldAPIKey = "api_key"
)

const maxEntityIDLength = 128

var collectionPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

type EntityValidator struct{}

func NewEntityValidator() Validator {
	return &EntityValidator{}
}

func (v *EntityValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Entity:
		return v.validateEntity(ctx, value, fields...)
	case *models.Entity:
		return v.validateEntity(ctx, *value, fields...)

	case models.TokenRequest:
		return v.validateTokenRequest(ctx, value, fields...)
	case *models.TokenRequest:
		return v.validateTokenRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *EntityValidator) validateEntity(_ context.Context, e models.Entity, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTenantID, FieldCollection, FieldEntityID, FieldData}
	}

	for _, f := range fields {
		switch f {
		case FieldTenantID:
			if strings.TrimSpace(e.TenantID) == "" {
				return ErrInvalidTenantID
			}
		case FieldCollection:
			if !collectionPattern.MatchString(e.Collection) {
				return ErrInvalidCollection
			}
		case FieldEntityID:
			if !isValidEntityID(e.ID) {
				return ErrInvalidEntityID
			}
		case FieldData:
			if e.Data == nil {
				return ErrEmptyData
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *EntityValidator) validateTokenRequest(_ context.Context, r models.TokenRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTenantID, FieldAPIKey}
	}

	for _, f := range fields {
		switch f {
		case FieldTenantID:
			if strings.TrimSpace(r.TenantID) == "" {
				return ErrInvalidTenantID
			}
		case FieldAPIKey:
			if r.APIKey == "" {
				return ErrEmptyAPIKey
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isValidEntityID(id string) bool {
	if id == "" || len(id) > maxEntityIDLength {
		return false
	}
	if strings.TrimSpace(id) != id {
		return false
	}
	return !strings.ContainsAny(id, "/?#")
}

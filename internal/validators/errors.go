package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidTenantID   = errors.New("invalid tenant ID")
	ErrInvalidCollection = errors.New("invalid collection name")
	ErrInvalidEntityID   = errors.New("invalid entity ID")
	ErrEmptyData         = errors.New("data is required")
	ErrEmptyAPIKey       = errors.New("API key is required")
)

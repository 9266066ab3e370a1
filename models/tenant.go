package models

import "time"

// Tenant is a backend account. Clients authenticate as a tenant with its API
// key; only the bcrypt hash of the key is stored.
type Tenant struct {
	TenantID   string
	Name       string
	APIKeyHash string
	CreatedAt  time.Time
}

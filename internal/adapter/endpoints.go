package adapter

import (
	"net/url"
	"strings"
)

var defaultEndpoints = map[string]string{
	"customer":    "/api/customers",
	"booking":     "/api/bookings",
	"invoice":     "/api/invoices",
	"patient":     "/api/patients",
	"appointment": "/api/appointments",
}

// Endpoints maps entity types to REST collection paths. Types missing from the
// table resolve to "/api/<entityType>".
type Endpoints struct {
	paths map[string]string
}

// NewEndpoints returns the default table with overrides applied on top.
func NewEndpoints(overrides map[string]string) Endpoints {
	paths := make(map[string]string, len(defaultEndpoints)+len(overrides))
	for k, v := range defaultEndpoints {
		paths[k] = v
	}
	for k, v := range overrides {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		paths[k] = "/" + strings.Trim(v, "/")
	}
	return Endpoints{paths: paths}
}

// Collection returns the collection path of entityType.
func (e Endpoints) Collection(entityType string) string {
	if p, ok := e.paths[entityType]; ok {
		return p
	}
	if p, ok := defaultEndpoints[entityType]; ok {
		return p
	}
	return "/api/" + url.PathEscape(entityType)
}

// Entity returns the path of a single entity.
func (e Endpoints) Entity(entityType, id string) string {
	return e.Collection(entityType) + "/" + url.PathEscape(id)
}

package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoints_Defaults(t *testing.T) {
	e := NewEndpoints(nil)

	assert.Equal(t, "/api/customers", e.Collection("customer"))
	assert.Equal(t, "/api/bookings", e.Collection("booking"))
	assert.Equal(t, "/api/invoices", e.Collection("invoice"))
	assert.Equal(t, "/api/patients", e.Collection("patient"))
	assert.Equal(t, "/api/appointments", e.Collection("appointment"))
	assert.Equal(t, "/api/lead", e.Collection("lead"))
}

func TestEndpoints_Overrides(t *testing.T) {
	e := NewEndpoints(map[string]string{
		"customer": "api/v2/customers/",
		"lead":     "/api/crm/leads",
		"":         "/ignored",
		"blank":    " ",
	})

	assert.Equal(t, "/api/v2/customers", e.Collection("customer"))
	assert.Equal(t, "/api/crm/leads", e.Collection("lead"))
	assert.Equal(t, "/api/bookings", e.Collection("booking"))
	assert.Equal(t, "/api/blank", e.Collection("blank"))
}

func TestEndpoints_Entity(t *testing.T) {
	var zero Endpoints
	assert.Equal(t, "/api/customers/c1", zero.Entity("customer", "c1"))
	assert.Equal(t, "/api/customers/a%2Fb", NewEndpoints(nil).Entity("customer", "a/b"))
}

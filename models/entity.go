package models

import (
	"encoding/json"
	"time"
)

// Entity is a tenant-owned record stored by the backend under a collection
// name (e.g. "customers"). Data holds the feature-owned fields.
type Entity struct {
	TenantID   string
	Collection string
	ID         string
	Data       Payload
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ToPayload renders the entity as the JSON object served by the REST API:
// the data fields plus server-owned "id", "createdAt" and "updatedAt".
func (e Entity) ToPayload() Payload {
	out := e.Data.Clone()
	if out == nil {
		out = Payload{}
	}
	out[FieldID] = e.ID
	out[FieldCreatedAt] = e.CreatedAt.UTC().Format(time.RFC3339Nano)
	out[FieldUpdatedAt] = e.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return out
}

// EntityFromPayload strips the server-owned fields from p. The id, if any,
// is returned in the entity ID.
func EntityFromPayload(tenantID, collection string, p Payload) Entity {
	data := p.Clone()
	if data == nil {
		data = Payload{}
	}
	e := Entity{TenantID: tenantID, Collection: collection, Data: data}
	if id, ok := data[FieldID].(string); ok {
		e.ID = id
	}
	delete(data, FieldID)
	delete(data, FieldCreatedAt)
	delete(data, FieldUpdatedAt)
	return e
}

// MarshalData encodes the feature-owned fields for storage.
func (e Entity) MarshalData() ([]byte, error) {
	if e.Data == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(e.Data)
}

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	entitiesTable = "entities"
	tenantsTable  = "tenants"
)

var (
	// psql builds Postgres statements with $n placeholders.
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	entityColumns = []string{"tenant_id", "collection", "entity_id", "data", "created_at", "updated_at"}
	tenantColumns = []string{"tenant_id", "name", "api_key_hash", "created_at"}
)

func entityKey(tenantID, collection, id string) sq.Eq {
	return sq.Eq{"tenant_id": tenantID, "collection": collection, "entity_id": id}
}

func selectEntity(tenantID, collection, id string) (string, []any, error) {
	return psql.Select(entityColumns...).
		From(entitiesTable).
		Where(entityKey(tenantID, collection, id)).
		ToSql()
}

func selectEntities(tenantID, collection string) (string, []any, error) {
	return psql.Select(entityColumns...).
		From(entitiesTable).
		Where(sq.Eq{"tenant_id": tenantID, "collection": collection}).
		OrderBy("created_at", "entity_id").
		ToSql()
}

func insertEntity(tenantID, collection, id string, data []byte) (string, []any, error) {
	return psql.Insert(entitiesTable).
		Columns("tenant_id", "collection", "entity_id", "data").
		Values(tenantID, collection, id, string(data)).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
}

func updateEntity(tenantID, collection, id string, data []byte) (string, []any, error) {
	return psql.Update(entitiesTable).
		Set("data", string(data)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(entityKey(tenantID, collection, id)).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
}

func deleteEntity(tenantID, collection, id string) (string, []any, error) {
	return psql.Delete(entitiesTable).
		Where(entityKey(tenantID, collection, id)).
		ToSql()
}

func insertTenant(tenantID, name, apiKeyHash string) (string, []any, error) {
	return psql.Insert(tenantsTable).
		Columns("tenant_id", "name", "api_key_hash").
		Values(tenantID, name, apiKeyHash).
		Suffix("RETURNING created_at").
		ToSql()
}

func selectTenant(tenantID string) (string, []any, error) {
	return psql.Select(tenantColumns...).
		From(tenantsTable).
		Where(sq.Eq{"tenant_id": tenantID}).
		ToSql()
}

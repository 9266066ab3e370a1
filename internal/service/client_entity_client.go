package service

import (
	"context"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/adapter"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// EntityClient builds the live actions an [OfflineRepository] runs for one
// entity type against the remote API.
type EntityClient[T any] struct {
	entityType string
	remote     adapter.RemoteAPI
	endpoints  adapter.Endpoints
}

// NewEntityClient returns a client for entityType.
func NewEntityClient[T any](entityType string, remote adapter.RemoteAPI, endpoints adapter.Endpoints) *EntityClient[T] {
	return &EntityClient[T]{entityType: entityType, remote: remote, endpoints: endpoints}
}

// ListCacheKey is the cache key of the collection listing.
func (c *EntityClient[T]) ListCacheKey() string {
	return c.entityType + ":list"
}

// ItemCacheKey is the cache key of a single entity.
func (c *EntityClient[T]) ItemCacheKey(id string) string {
	return c.entityType + ":" + id
}

func (c *EntityClient[T]) Get(id string) func(ctx context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		p, err := c.remote.Get(ctx, c.endpoints.Entity(c.entityType, id))
		if err != nil {
			var zero T
			return zero, err
		}
		return DecodePayload[T](p)
	}
}

func (c *EntityClient[T]) List() func(ctx context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		list, err := c.remote.List(ctx, c.endpoints.Collection(c.entityType))
		if err != nil {
			return nil, err
		}

		items := make([]T, 0, len(list))
		for _, p := range list {
			v, err := DecodePayload[T](p)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	}
}

func (c *EntityClient[T]) Create() func(ctx context.Context, data T) (T, error) {
	return func(ctx context.Context, data T) (T, error) {
		return c.send(data, func(p models.Payload) (models.Payload, error) {
			return c.remote.Create(ctx, c.endpoints.Collection(c.entityType), p)
		})
	}
}

func (c *EntityClient[T]) Update(id string) func(ctx context.Context, data T) (T, error) {
	return func(ctx context.Context, data T) (T, error) {
		return c.send(data, func(p models.Payload) (models.Payload, error) {
			return c.remote.Update(ctx, c.endpoints.Entity(c.entityType, id), p)
		})
	}
}

func (c *EntityClient[T]) Delete(id string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return c.remote.Delete(ctx, c.endpoints.Entity(c.entityType, id))
	}
}

// send encodes data, calls write and decodes the server's answer. An empty
// answer echoes data back.
func (c *EntityClient[T]) send(data T, write func(models.Payload) (models.Payload, error)) (T, error) {
	var zero T

	p, err := PayloadOf(data)
	if err != nil {
		return zero, err
	}

	resp, err := write(p)
	if err != nil {
		return zero, err
	}
	if resp == nil {
		return data, nil
	}
	return DecodePayload[T](resp)
}

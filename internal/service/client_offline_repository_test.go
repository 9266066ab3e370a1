package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/adapter"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRepository(t *testing.T, status models.ConnectionStatus) (*OfflineRepository[customer], *EntityClient[customer], *engineFixture) {
	t.Helper()
	f := newTestEngine(t, status)
	repo := NewOfflineRepository[customer]("customer", f.engine, f.monitor, f.store, logger.Nop())
	client := NewEntityClient[customer]("customer", f.remote, adapter.NewEndpoints(nil))
	return repo, client, f
}

// ── reads ────────────────────────────────────────────────────────────────────

func TestOfflineRepository_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("online caches live result", func(t *testing.T) {
		repo, client, f := newTestRepository(t, models.StatusOnline)
		f.remote.EXPECT().Get(gomock.Any(), "/api/customers/c1").Return(models.Payload{"id": "c1", "name": "Jane"}, nil)

		got, err := repo.FetchWithOfflineSupport(ctx, client.ItemCacheKey("c1"), client.Get("c1"))
		require.NoError(t, err)
		assert.Equal(t, customer{ID: "c1", Name: "Jane"}, got)

		cached, ok := f.store.GetCache(ctx, "customer:c1")
		require.True(t, ok)
		assert.Equal(t, "Jane", cached["name"])
	})

	t.Run("offline serves cache", func(t *testing.T) {
		repo, client, f := newTestRepository(t, models.StatusOffline)
		require.NoError(t, f.store.PutCache(ctx, "customer:c1", models.Payload{"id": "c1", "name": "Jane"}))

		got, err := repo.FetchWithOfflineSupport(ctx, client.ItemCacheKey("c1"), client.Get("c1"))
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.Name)
	})

	t.Run("offline without cache", func(t *testing.T) {
		repo, client, _ := newTestRepository(t, models.StatusOffline)

		_, err := repo.FetchWithOfflineSupport(ctx, client.ItemCacheKey("c1"), client.Get("c1"))
		assert.ErrorIs(t, err, ErrNoCachedData)
	})

	t.Run("transport error falls back to cache", func(t *testing.T) {
		repo, client, f := newTestRepository(t, models.StatusOnline)
		require.NoError(t, f.store.PutCache(ctx, "customer:c1", models.Payload{"id": "c1", "name": "Jane"}))
		f.remote.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("GET: %w: dial tcp", adapter.ErrTransport))

		got, err := repo.FetchWithOfflineSupport(ctx, client.ItemCacheKey("c1"), client.Get("c1"))
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.Name)
	})

	t.Run("transport error without cache", func(t *testing.T) {
		repo, client, f := newTestRepository(t, models.StatusOnline)
		f.remote.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, adapter.ErrTransport)

		_, err := repo.FetchWithOfflineSupport(ctx, client.ItemCacheKey("c1"), client.Get("c1"))
		assert.ErrorIs(t, err, ErrNoCachedData)
		assert.ErrorIs(t, err, adapter.ErrTransport)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		repo, client, f := newTestRepository(t, models.StatusOnline)
		require.NoError(t, f.store.PutCache(ctx, "customer:c1", models.Payload{"id": "c1"}))
		f.remote.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, adapter.ErrNotFound)

		_, err := repo.FetchWithOfflineSupport(ctx, client.ItemCacheKey("c1"), client.Get("c1"))
		assert.ErrorIs(t, err, adapter.ErrNotFound)
		assert.NotErrorIs(t, err, ErrNoCachedData)
	})
}

func TestOfflineRepository_FetchList(t *testing.T) {
	ctx := context.Background()

	repo, client, f := newTestRepository(t, models.StatusOnline)
	f.remote.EXPECT().List(gomock.Any(), "/api/customers").Return([]models.Payload{
		{"id": "c1", "name": "Jane"},
		{"id": "c2", "name": "John"},
	}, nil)

	got, err := repo.FetchListWithOfflineSupport(ctx, client.ListCacheKey(), client.List())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	f.monitor.SetStatus(models.StatusOffline)
	got, err = repo.FetchListWithOfflineSupport(ctx, client.ListCacheKey(), client.List())
	require.NoError(t, err)
	assert.Equal(t, []customer{{ID: "c1", Name: "Jane"}, {ID: "c2", Name: "John"}}, got)

	_, err = repo.FetchListWithOfflineSupport(ctx, "booking:list", client.List())
	assert.ErrorIs(t, err, ErrNoCachedData)
}

// ── writes ───────────────────────────────────────────────────────────────────

func TestOfflineRepository_Create(t *testing.T) {
	ctx := context.Background()
	jane := customer{ID: "c1", Name: "Jane"}

	t.Run("online returns server result", func(t *testing.T) {
		repo, client, f := newTestRepository(t, models.StatusOnline)
		f.remote.EXPECT().
			Create(gomock.Any(), "/api/customers", models.Payload{"id": "c1", "name": "Jane"}).
			Return(models.Payload{"id": "c1", "name": "Jane (server)"}, nil)

		got, err := repo.CreateWithOfflineSupport(ctx, "c1", jane, client.Create())
		require.NoError(t, err)
		assert.Equal(t, "Jane (server)", got.Name)
		assert.Zero(t, f.engine.PendingCount(ctx))
	})

	t.Run("online error is not queued", func(t *testing.T) {
		repo, client, f := newTestRepository(t, models.StatusOnline)
		f.remote.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, adapter.ErrTransport)

		_, err := repo.CreateWithOfflineSupport(ctx, "c1", jane, client.Create())
		assert.ErrorIs(t, err, adapter.ErrTransport)
		assert.Zero(t, f.engine.PendingCount(ctx))
	})

	t.Run("offline queues and returns optimistic result", func(t *testing.T) {
		repo, client, f := newTestRepository(t, models.StatusOffline)

		got, err := repo.CreateWithOfflineSupport(ctx, "c1", jane, client.Create())
		require.NoError(t, err)
		assert.Equal(t, jane, got)

		pending := f.store.ListPendingMutations(ctx)
		require.Len(t, pending, 1)
		assert.Equal(t, models.OperationCreate, pending[0].Operation)
		assert.Equal(t, "customer", pending[0].EntityType)
		assert.Equal(t, "c1", pending[0].EntityID)
		assert.Equal(t, models.Payload{"id": "c1", "name": "Jane"}, pending[0].Payload)
	})
}

func TestOfflineRepository_Update(t *testing.T) {
	ctx := context.Background()
	jane := customer{ID: "c1", Name: "Jane"}

	t.Run("online", func(t *testing.T) {
		repo, client, f := newTestRepository(t, models.StatusOnline)
		f.remote.EXPECT().Update(gomock.Any(), "/api/customers/c1", gomock.Any()).Return(nil, nil)

		got, err := repo.UpdateWithOfflineSupport(ctx, "c1", jane, models.ResolutionMerge, client.Update("c1"))
		require.NoError(t, err)
		assert.Equal(t, jane, got)
	})

	t.Run("offline keeps resolution", func(t *testing.T) {
		repo, client, f := newTestRepository(t, models.StatusOffline)

		got, err := repo.UpdateWithOfflineSupport(ctx, "c1", jane, models.ResolutionClientWins, client.Update("c1"))
		require.NoError(t, err)
		assert.Equal(t, jane, got)

		pending := f.store.ListPendingMutations(ctx)
		require.Len(t, pending, 1)
		assert.Equal(t, models.OperationUpdate, pending[0].Operation)
		assert.Equal(t, models.ResolutionClientWins, pending[0].Resolution)
	})
}

func TestOfflineRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("online", func(t *testing.T) {
		repo, client, f := newTestRepository(t, models.StatusOnline)
		f.remote.EXPECT().Delete(gomock.Any(), "/api/customers/c1").Return(adapter.ErrForbidden)

		err := repo.DeleteWithOfflineSupport(ctx, "c1", client.Delete("c1"))
		assert.ErrorIs(t, err, adapter.ErrForbidden)
		assert.Zero(t, f.engine.PendingCount(ctx))
	})

	t.Run("offline", func(t *testing.T) {
		repo, client, f := newTestRepository(t, models.StatusOffline)

		require.NoError(t, repo.DeleteWithOfflineSupport(ctx, "c1", client.Delete("c1")))

		pending := f.store.ListPendingMutations(ctx)
		require.Len(t, pending, 1)
		assert.Equal(t, models.OperationDelete, pending[0].Operation)
		assert.Nil(t, pending[0].Payload)
	})
}

func TestOfflineRepository_QueuedWriteSyncsOnReconnect(t *testing.T) {
	ctx := context.Background()
	repo, client, f := newTestRepository(t, models.StatusOffline)

	_, err := repo.CreateWithOfflineSupport(ctx, "c1", customer{ID: "c1", Name: "Jane"}, client.Create())
	require.NoError(t, err)

	f.remote.EXPECT().Create(gomock.Any(), "/api/customers", models.Payload{"id": "c1", "name": "Jane"}).Return(nil, nil)
	f.monitor.SetStatus(models.StatusOnline)
	f.engine.SyncAll(ctx)

	assert.Zero(t, f.engine.PendingCount(ctx))
}

// ── payload conversion ───────────────────────────────────────────────────────

func TestPayloadOf(t *testing.T) {
	p, err := PayloadOf(customer{ID: "c1", Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, models.Payload{"id": "c1", "name": "Jane"}, p)

	_, err = PayloadOf([]string{"not", "an", "object"})
	assert.Error(t, err)

	_, err = PayloadOf[*customer](nil)
	assert.Error(t, err)
}

func TestEntityClient_CacheKeys(t *testing.T) {
	c := NewEntityClient[customer]("booking", nil, adapter.NewEndpoints(nil))
	assert.Equal(t, "booking:list", c.ListCacheKey())
	assert.Equal(t, "booking:b1", c.ItemCacheKey("b1"))
}

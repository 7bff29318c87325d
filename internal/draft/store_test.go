package draft

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventures/internal/catalog"
	"eventures/internal/shared/constants"
)

func TestRedisStore_LoadMissingReturnsEmptyDraft(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, time.Hour)
	customer := uuid.New()

	mock.ExpectGet(constants.DraftKey(customer.String())).RedisNil()

	d, err := store.Load(context.Background(), customer)

	require.NoError(t, err)
	assert.Equal(t, New(), d)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_LoadDecodesStoredDraft(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, time.Hour)
	customer := uuid.New()

	mock.ExpectGet(constants.DraftKey(customer.String())).
		SetVal(`{"event_type":"Wedding","visited_furniture":true,"cart_items":[{"id":"a","name":"Chair","price":"4.50","quantity":10}]}`)

	d, err := store.Load(context.Background(), customer)

	require.NoError(t, err)
	assert.Equal(t, "Wedding", d.EventType)
	assert.True(t, d.VisitedFurniture)
	assert.Equal(t, "45.00", d.GrandTotal().StringFixed(2))
}

func TestRedisStore_LoadErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, time.Hour)
	customer := uuid.New()
	key := constants.DraftKey(customer.String())

	mock.ExpectGet(key).SetErr(errors.New("connection refused"))
	_, err := store.Load(context.Background(), customer)
	assert.ErrorContains(t, err, "connection refused")

	mock.ExpectGet(key).SetVal(`{not json`)
	_, err = store.Load(context.Background(), customer)
	assert.ErrorContains(t, err, "failed to decode draft")
}

func TestRedisStore_SaveSetsTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, 30*time.Minute)
	customer := uuid.New()

	d := New()
	d.AddToCart(item("a", "2"), 1)
	data, err := json.Marshal(d)
	require.NoError(t, err)

	mock.ExpectSet(constants.DraftKey(customer.String()), data, 30*time.Minute).SetVal("OK")

	require.NoError(t, store.Save(context.Background(), customer, d))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, time.Hour)
	customer := uuid.New()

	mock.ExpectDel(constants.DraftKey(customer.String())).SetVal(1)

	require.NoError(t, store.Delete(context.Background(), customer))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_UpdateWritesInsideTransaction(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, 30*time.Minute)
	customer := uuid.New()
	key := constants.DraftKey(customer.String())

	want := New()
	want.AddToCart(item("a", "3"), 2)
	data, err := json.Marshal(want)
	require.NoError(t, err)

	mock.ExpectWatch(key)
	mock.ExpectGet(key).RedisNil()
	mock.ExpectTxPipeline()
	mock.ExpectSet(key, data, 30*time.Minute).SetVal("OK")
	mock.ExpectTxPipelineExec()

	d, err := store.Update(context.Background(), customer, func(d *Draft) error {
		d.AddToCart(item("a", "3"), 2)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, d.ItemCount())
	assert.Equal(t, "6.00", d.GrandTotal().StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_UpdateFnErrorWritesNothing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, time.Hour)
	customer := uuid.New()
	key := constants.DraftKey(customer.String())

	mock.ExpectWatch(key)
	mock.ExpectGet(key).RedisNil()

	boom := errors.New("rejected")
	d, err := store.Update(context.Background(), customer, func(d *Draft) error {
		d.AddToCart(item("a", "1"), 1)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, d)
	// no MULTI/SET/EXEC was expected, so any write would have failed the call
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_UpdateRetriesThenReportsConflict(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, time.Hour)
	store.maxRetries = 2
	customer := uuid.New()
	key := constants.DraftKey(customer.String())

	want := New()
	want.Update(Patch{EventType: strPtr("Gala")})
	data, err := json.Marshal(want)
	require.NoError(t, err)

	calls := 0
	for i := 0; i < store.maxRetries; i++ {
		mock.ExpectWatch(key)
		mock.ExpectGet(key).RedisNil()
		mock.ExpectTxPipeline()
		mock.ExpectSet(key, data, time.Hour).SetVal("OK")
		mock.ExpectTxPipelineExec().SetErr(redis.TxFailedErr)
	}

	d, err := store.Update(context.Background(), customer, func(d *Draft) error {
		calls++
		d.Update(Patch{EventType: strPtr("Gala")})
		return nil
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, d)
	assert.Equal(t, 2, calls, "fn is re-run on every attempt")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_UpdateRecoversAfterOneConflict(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, time.Hour)
	customer := uuid.New()
	key := constants.DraftKey(customer.String())

	stored := `{"event_type":"Wedding","cart_items":[]}`
	want := New()
	require.NoError(t, json.Unmarshal([]byte(stored), want))
	want.MarkVisited(catalog.KindFurniture)
	data, err := json.Marshal(want)
	require.NoError(t, err)

	mock.ExpectWatch(key)
	mock.ExpectGet(key).SetVal(stored)
	mock.ExpectTxPipeline()
	mock.ExpectSet(key, data, time.Hour).SetVal("OK")
	mock.ExpectTxPipelineExec().SetErr(redis.TxFailedErr)

	mock.ExpectWatch(key)
	mock.ExpectGet(key).SetVal(stored)
	mock.ExpectTxPipeline()
	mock.ExpectSet(key, data, time.Hour).SetVal("OK")
	mock.ExpectTxPipelineExec()

	d, err := store.Update(context.Background(), customer, func(d *Draft) error {
		d.MarkVisited(catalog.KindFurniture)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Wedding", d.EventType)
	assert.True(t, d.VisitedFurniture)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryStore_IsolatesCustomers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	_, err := store.Update(ctx, alice, func(d *Draft) error {
		d.AddToCart(item("a", "1"), 2)
		return nil
	})
	require.NoError(t, err)

	bobDraft, err := store.Load(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobDraft.CartItems)

	aliceDraft, err := store.Load(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, aliceDraft.ItemCount())
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	customer := uuid.New()

	d := New()
	d.AddToCart(item("a", "1"), 1)
	require.NoError(t, store.Save(ctx, customer, d))

	loaded, _ := store.Load(ctx, customer)
	loaded.AddToCart(item("a", "1"), 5)

	again, _ := store.Load(ctx, customer)
	assert.Equal(t, 1, again.ItemCount())
}

func TestMemoryStore_FailedUpdateWritesNothing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	customer := uuid.New()
	boom := errors.New("boom")

	_, err := store.Update(ctx, customer, func(d *Draft) error {
		d.AddToCart(item("a", "1"), 1)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	d, _ := store.Load(ctx, customer)
	assert.Empty(t, d.CartItems)
}

func TestMemoryStore_ConcurrentUpdatesAreNotLost(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	customer := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Update(ctx, customer, func(d *Draft) error {
				d.AddToCart(item("a", "1"), 1)
				return nil
			})
		}()
	}
	wg.Wait()

	d, _ := store.Load(ctx, customer)
	assert.Equal(t, 50, d.ItemCount())
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	customer := uuid.New()

	require.NoError(t, store.Save(ctx, customer, &Draft{EventType: "Gala", CartItems: []CartLine{}}))
	require.NoError(t, store.Delete(ctx, customer))

	d, _ := store.Load(ctx, customer)
	assert.Equal(t, New(), d)
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestService_Get_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := NewService(db)

	mock.ExpectGet("k").SetVal(`{"name":"Lighting","count":3}`)

	var got category
	require.NoError(t, svc.Get(context.Background(), "k", &got))
	assert.Equal(t, category{Name: "Lighting", Count: 3}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Get_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := NewService(db)

	mock.ExpectGet("k").RedisNil()

	var got category
	err := svc.Get(context.Background(), "k", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestService_GetOrSet_MissFetchesAndStores(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := NewService(db)

	mock.ExpectGet("k").RedisNil()
	mock.ExpectSet("k", []byte(`{"name":"Tables","count":1}`), time.Minute).SetVal("OK")

	calls := 0
	var got category
	hit, err := svc.GetOrSet(context.Background(), "k", time.Minute, &got, func(ctx context.Context) (interface{}, error) {
		calls++
		return category{Name: "Tables", Count: 1}, nil
	})

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Tables", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetOrSet_HitSkipsFetcher(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := NewService(db)

	mock.ExpectGet("k").SetVal(`{"name":"Chairs","count":2}`)

	var got category
	hit, err := svc.GetOrSet(context.Background(), "k", time.Minute, &got, func(ctx context.Context) (interface{}, error) {
		t.Fatal("fetcher must not run on a hit")
		return nil, nil
	})

	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 2, got.Count)
}

func TestService_GetOrSet_FetcherError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := NewService(db)

	mock.ExpectGet("k").RedisNil()

	boom := errors.New("db down")
	var got category
	_, err := svc.GetOrSet(context.Background(), "k", time.Minute, &got, func(ctx context.Context) (interface{}, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestService_DeletePattern_ScansAllPages(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := NewService(db)

	mock.ExpectScan(0, "eventures:catalog:*", 100).SetVal([]string{"a", "b"}, 7)
	mock.ExpectDel("a", "b").SetVal(2)
	mock.ExpectScan(7, "eventures:catalog:*", 100).SetVal([]string{}, 0)

	require.NoError(t, svc.DeletePattern(context.Background(), "eventures:catalog:*"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoop_AlwaysFetches(t *testing.T) {
	svc := NewNoop()

	var got category
	hit, err := svc.GetOrSet(context.Background(), "k", time.Minute, &got, func(ctx context.Context) (interface{}, error) {
		return category{Name: "Cutlery"}, nil
	})

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "Cutlery", got.Name)
	assert.ErrorIs(t, svc.Get(context.Background(), "k", &got), ErrCacheMiss)
}

package salaryscale_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kaleab-kali/FPPMS-sub005/internal/salaryscale"
)

func cachedVersion(tenantID string) *salaryscale.ScaleVersion {
	return &salaryscale.ScaleVersion{
		ID:            uuid.New(),
		TenantID:      uuid.MustParse(tenantID),
		Code:          "V1",
		Status:        salaryscale.StatusActive,
		EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestActiveScaleCache_GetActive(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()
	key := "salaryscale:active:" + tenantID

	t.Run("success cache hit skips the repository", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		version := cachedVersion(tenantID)
		payload, err := json.Marshal(version)
		assert.NoError(t, err)

		redisMock.ExpectGet(key).SetVal(string(payload))

		repo := &fakeScaleRepository{
			findActiveFn: func(ctx context.Context, tid string) (*salaryscale.ScaleVersion, error) {
				t.Fatal("repository must not be hit on a cache hit")
				return nil, nil
			},
		}
		cache := salaryscale.NewActiveScaleCache(rdb, repo)

		got, err := cache.GetActive(ctx, tenantID)

		assert.NoError(t, err)
		assert.Equal(t, version.ID, got.ID)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success cache miss loads and fills", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		version := cachedVersion(tenantID)
		payload, err := json.Marshal(version)
		assert.NoError(t, err)

		redisMock.ExpectGet(key).RedisNil()
		redisMock.ExpectSet(key, payload, 10*time.Minute).SetVal("OK")

		repoCalls := 0
		repo := &fakeScaleRepository{
			findActiveFn: func(ctx context.Context, tid string) (*salaryscale.ScaleVersion, error) {
				repoCalls++
				return version, nil
			},
		}
		cache := salaryscale.NewActiveScaleCache(rdb, repo)

		got, err := cache.GetActive(ctx, tenantID)

		assert.NoError(t, err)
		assert.Equal(t, version.ID, got.ID)
		assert.Equal(t, 1, repoCalls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success corrupt payload is dropped and reloaded", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		version := cachedVersion(tenantID)
		payload, err := json.Marshal(version)
		assert.NoError(t, err)

		redisMock.ExpectGet(key).SetVal("{not json")
		redisMock.ExpectDel(key).SetVal(1)
		redisMock.ExpectSet(key, payload, 10*time.Minute).SetVal("OK")

		repo := &fakeScaleRepository{
			findActiveFn: func(ctx context.Context, tid string) (*salaryscale.ScaleVersion, error) {
				return version, nil
			},
		}
		cache := salaryscale.NewActiveScaleCache(rdb, repo)

		got, err := cache.GetActive(ctx, tenantID)

		assert.NoError(t, err)
		assert.Equal(t, version.ID, got.ID)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success nil client reads straight through", func(t *testing.T) {
		version := cachedVersion(tenantID)
		repo := &fakeScaleRepository{
			findActiveFn: func(ctx context.Context, tid string) (*salaryscale.ScaleVersion, error) {
				return version, nil
			},
		}
		cache := salaryscale.NewActiveScaleCache(nil, repo)

		got, err := cache.GetActive(ctx, tenantID)

		assert.NoError(t, err)
		assert.Equal(t, version.ID, got.ID)
	})
}

func TestActiveScaleCache_Invalidate(t *testing.T) {
	tenantID := uuid.New().String()

	t.Run("success deletes the key", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectDel("salaryscale:active:" + tenantID).SetVal(1)

		cache := salaryscale.NewActiveScaleCache(rdb, &fakeScaleRepository{})
		cache.Invalidate(context.Background(), tenantID)

		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

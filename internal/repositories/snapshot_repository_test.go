package repository_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/nutrikart/cart-engine/internal/cache"
	"github.com/nutrikart/cart-engine/internal/config"
	"github.com/nutrikart/cart-engine/internal/models"
	repository "github.com/nutrikart/cart-engine/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSnapshotRepoTest(t *testing.T) (repository.SnapshotRepository, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(client, &config.CacheConfig{
		DefaultTTL:  time.Minute,
		SnapshotTTL: time.Hour,
	})

	return repository.NewSnapshotRepo(c, time.Hour), mock
}

func sampleCart() *models.Cart {
	return &models.Cart{
		UserID: "user-1",
		Items: []models.LineItem{
			{ProductID: "a", Name: "product a", Quantity: 1, Price: 1000},
			{ProductID: "b", Name: "product b", Quantity: 1, Price: 1700,
				Upsell: &models.Upsell{OriginalPrice: 2000, DiscountPercent: 15, RelatedItemID: "a"}},
		},
		Total:     2700,
		ItemCount: 2,
	}
}

func TestSnapshotSaveLoad(t *testing.T) {
	ctx := t.Context()

	t.Run("Save Then Load Round-Trips", func(t *testing.T) {
		// Arrange
		repo, mock := setupSnapshotRepoTest(t)
		original := sampleCart()
		data, err := json.Marshal(original)
		require.NoError(t, err)

		mock.ExpectSet("cart:user-1", data, time.Hour).SetVal("OK")
		mock.ExpectGet("cart:user-1").SetVal(string(data))

		// Act
		require.NoError(t, repo.Save(ctx, original))
		restored, found, err := repo.Load(ctx, "user-1")

		// Assert
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, original.Items, restored.Items)
		assert.Equal(t, original.Total, restored.Total)
		assert.Equal(t, original.ItemCount, restored.ItemCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Load - No Snapshot", func(t *testing.T) {
		// Arrange
		repo, mock := setupSnapshotRepoTest(t)
		mock.ExpectGet("cart:user-2").RedisNil()

		// Act
		cart, found, err := repo.Load(ctx, "user-2")

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, cart)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Load - Redis Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupSnapshotRepoTest(t)
		expectedErr := errors.New("redis down")
		mock.ExpectGet("cart:user-1").SetErr(expectedErr)

		// Act
		cart, found, err := repo.Load(ctx, "user-1")

		// Assert
		assert.Error(t, err)
		assert.False(t, found)
		assert.Nil(t, cart)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestSnapshotDelete(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupSnapshotRepoTest(t)
		mock.ExpectDel("cart:user-1").SetVal(1)

		// Act
		err := repo.Delete(ctx, "user-1")

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure", func(t *testing.T) {
		// Arrange
		repo, mock := setupSnapshotRepoTest(t)
		expectedErr := errors.New("redis down")
		mock.ExpectDel("cart:user-1").SetErr(expectedErr)

		// Act
		err := repo.Delete(ctx, "user-1")

		// Assert
		assert.ErrorIs(t, err, expectedErr)
	})
}

package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	repository "github.com/mandilink/mandilink/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartRepoTest(t *testing.T) (repository.CartRepository, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	t.Cleanup(func() {
		client.Close()
	})

	repo := repository.NewCartRepo(client, time.Hour)
	require.NotNil(t, repo, "NewCartRepo should return a non-nil repository")

	return repo, mock
}

func TestCartRepositoryGet(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Existing Cart", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectGet("cart:7").SetVal(`{"10":3,"11":2}`)

		// Act
		items, err := repo.Get(ctx, 7)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, map[int64]int{10: 3, 11: 2}, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Missing Key Yields Empty Map", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectGet("cart:7").RedisNil()

		// Act
		items, err := repo.Get(ctx, 7)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectGet("cart:7").SetErr(errors.New("connection refused"))

		// Act
		items, err := repo.Get(ctx, 7)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, items)
	})

	t.Run("Failure - Corrupt Payload", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectGet("cart:7").SetVal(`not-json`)

		// Act
		items, err := repo.Get(ctx, 7)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, items)
	})
}

func TestCartRepositorySave(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Writes JSON With TTL", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectSet("cart:7", []byte(`{"10":3}`), time.Hour).SetVal("OK")

		// Act
		err := repo.Save(ctx, 7, map[int64]int{10: 3})

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectSet("cart:7", []byte(`{}`), time.Hour).SetErr(errors.New("readonly replica"))

		// Act
		err := repo.Save(ctx, 7, map[int64]int{})

		// Assert
		assert.Error(t, err)
	})
}

func TestCartRepositoryClear(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectDel("cart:7").SetVal(1)

		// Act
		err := repo.Clear(ctx, 7)

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Clearing An Absent Cart", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectDel("cart:7").SetVal(0)

		// Act
		err := repo.Clear(ctx, 7)

		// Assert
		assert.NoError(t, err)
	})
}

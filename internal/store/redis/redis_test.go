package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreLoad(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := New(db, "spendlog:")
	ctx := context.Background()

	t.Run("hit returns value", func(t *testing.T) {
		mock.ExpectGet("spendlog:expenses").SetVal(`[{"id":"1"}]`)

		v, ok, err := s.Load(ctx, "expenses")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"1"}]`, string(v))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil reply is absent", func(t *testing.T) {
		mock.ExpectGet("spendlog:recurring").RedisNil()

		v, ok, err := s.Load(ctx, "recurring")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("server error is returned", func(t *testing.T) {
		mock.ExpectGet("spendlog:budgets").SetErr(errors.New("LOADING"))

		_, _, err := s.Load(ctx, "budgets")
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreSave(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := New(db, "p:")
	value := []byte(`[]`)

	mock.ExpectSet("p:budgets", value, 0).SetVal("OK")
	require.NoError(t, s.Save(context.Background(), "budgets", value))

	mock.ExpectSet("p:budgets", value, 0).SetErr(errors.New("READONLY"))
	assert.Error(t, s.Save(context.Background(), "budgets", value))

	assert.NoError(t, mock.ExpectationsWereMet())
}

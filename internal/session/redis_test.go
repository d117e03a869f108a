package session

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsert_SetsKeyWithTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)

	mock.ExpectSet("session:tok-1", "user-1", time.Hour).SetVal("OK")

	err := store.Insert(context.Background(), "tok-1", "user-1", time.Hour)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_RejectsNonPositiveTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)

	err := store.Insert(context.Background(), "tok-1", "user-1", 0)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExists(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)

	mock.ExpectGet("session:live").SetVal("user-1")
	mock.ExpectGet("session:gone").RedisNil()

	live, err := store.Exists(context.Background(), "live")
	require.NoError(t, err)
	assert.True(t, live)

	gone, err := store.Exists(context.Background(), "gone")
	require.NoError(t, err)
	assert.False(t, gone)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemove_DeletesSessionKey(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)

	mock.ExpectDel("session:tok-1").SetVal(1)

	err := store.Remove(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlacklist_SetsEntryForRemainingLifetime(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)

	mock.ExpectSet("blacklist:tok-1", "1", 30*time.Minute).SetVal("OK")

	err := store.Blacklist(context.Background(), "tok-1", 30*time.Minute)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlacklist_NonPositiveTTL_FallsBackToAMinute(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)

	mock.ExpectSet("blacklist:tok-1", "1", time.Minute).SetVal("OK")

	err := store.Blacklist(context.Background(), "tok-1", -time.Second)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsBlacklisted(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)

	mock.ExpectGet("blacklist:revoked").SetVal("1")
	mock.ExpectGet("blacklist:clean").RedisNil()

	revoked, err := store.IsBlacklisted(context.Background(), "revoked")
	require.NoError(t, err)
	assert.True(t, revoked)

	clean, err := store.IsBlacklisted(context.Background(), "clean")
	require.NoError(t, err)
	assert.False(t, clean)

	assert.NoError(t, mock.ExpectationsWereMet())
}

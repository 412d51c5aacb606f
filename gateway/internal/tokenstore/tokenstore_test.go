package tokenstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/Astemirdum/rental-service/gateway/internal/tokenstore"
	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *tokenstore.RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, tokenstore.NewRedisStore(client, "device-1:", time.Hour)
}

func testStore(t *testing.T, s tokenstore.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx)
	require.ErrorIs(t, err, tokenstore.ErrNoToken)

	require.NoError(t, s.Set(ctx, "abc"))
	token, err := s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc", token)

	require.NoError(t, s.Set(ctx, "def"))
	token, err = s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "def", token)

	require.NoError(t, s.Remove(ctx))
	require.NoError(t, s.Remove(ctx))
	_, err = s.Get(ctx)
	require.ErrorIs(t, err, tokenstore.ErrNoToken)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	testStore(t, tokenstore.NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	t.Parallel()
	mr, s := setupRedis(t)
	testStore(t, s)

	require.NoError(t, s.Set(context.Background(), "abc"))
	require.True(t, mr.Exists("device-1:auth_token"))
	require.Equal(t, time.Hour, mr.TTL("device-1:auth_token"))

	mr.FastForward(2 * time.Hour)
	_, err := s.Get(context.Background())
	require.ErrorIs(t, err, tokenstore.ErrNoToken)
}

func TestRedisStore_Unavailable(t *testing.T) {
	t.Parallel()
	mr, s := setupRedis(t)
	mr.Close()

	_, err := s.Get(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, tokenstore.ErrNoToken)
}

func sign(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("core-secret"))
	require.NoError(t, err)
	return token
}

func TestParseClaims(t *testing.T) {
	t.Parallel()
	actor, err := tokenstore.ParseClaims(sign(t, tokenstore.Claims{UserID: "u-1", Role: "PROVIDER"}))
	require.NoError(t, err)
	require.Equal(t, model.Actor{UserID: "u-1", Role: model.RoleOwner}, actor)

	actor, err = tokenstore.ParseClaims(sign(t, tokenstore.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-2"},
	}))
	require.NoError(t, err)
	require.Equal(t, model.Actor{UserID: "u-2", Role: model.RoleTenant}, actor)

	_, err = tokenstore.ParseClaims(sign(t, tokenstore.Claims{Role: "TENANT"}))
	require.ErrorIs(t, err, tokenstore.ErrMalformedToken)

	_, err = tokenstore.ParseClaims("not.a.jwt")
	require.ErrorIs(t, err, tokenstore.ErrMalformedToken)
}

package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clienteDeTeste(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rc, err := InitRedis("redis://"+srv.Addr(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { CloseRedis(rc) })
	return rc, srv
}

func TestIncrementarJanela(t *testing.T) {
	rc, srv := clienteDeTeste(t)

	n, err := rc.IncrementarJanela("10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = rc.IncrementarJanela("10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// A different key counts on its own window
	n, err = rc.IncrementarJanela("10.0.0.2", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// The counter resets once the window elapses
	srv.FastForward(2 * time.Minute)
	n, err = rc.IncrementarJanela("10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRankingCache(t *testing.T) {
	rc, srv := clienteDeTeste(t)

	tipo := []map[string]interface{}{}
	err := rc.ObterRanking("usuarios", &tipo)
	assert.ErrorIs(t, err, goredis.Nil)

	entrada := []map[string]string{{"nome": "ana"}}
	require.NoError(t, rc.SalvarRanking("usuarios", entrada))

	var lido []map[string]string
	require.NoError(t, rc.ObterRanking("usuarios", &lido))
	assert.Equal(t, entrada, lido)

	// The cache expires on its own
	srv.FastForward(2 * time.Minute)
	err = rc.ObterRanking("usuarios", &lido)
	assert.ErrorIs(t, err, goredis.Nil)
}

func TestCleanupKeys(t *testing.T) {
	rc, srv := clienteDeTeste(t)

	require.NoError(t, rc.SalvarRanking("usuarios", []string{"x"}))
	require.NoError(t, rc.CleanupKeys([]string{FormatRankingKey("usuarios")}))
	assert.False(t, srv.Exists(FormatRankingKey("usuarios")))
}

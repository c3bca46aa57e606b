package redis

import (
	"github.com/go-redis/redis/v7"
	"github.com/leighmacdonald/tracks/config"
	"github.com/leighmacdonald/tracks/consts"
	"github.com/leighmacdonald/tracks/store"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
)

func testClient(t *testing.T) *redis.Client {
	addr := os.Getenv("TRACKS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping redis tests, TRACKS_TEST_REDIS_ADDR not set")
	}
	c := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	if err := c.Ping().Err(); err != nil {
		t.Skipf("Skipping redis tests, could not connect: %s", err)
	}
	clearDB(c)
	return c
}

func TestTrackStore(t *testing.T) {
	c := testClient(t)
	s := NewTrackStore(c)
	defer func() {
		clearDB(c)
		_ = s.Close()
	}()
	store.TestStore(t, s)
}

func TestInvalidDatabase(t *testing.T) {
	_, err := store.NewStore(&config.StoreConfig{Type: driverName, Host: "localhost", Port: 6379, Database: "tracks"})
	require.Equal(t, consts.ErrInvalidConfig, errors.Cause(err))
}

func clearDB(c *redis.Client) {
	c.Del(keyTracks, keyOrder, keyNextID)
}

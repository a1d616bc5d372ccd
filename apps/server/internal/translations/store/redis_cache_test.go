package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilsley/docstatus/apps/server/internal/translations"
	"github.com/tilsley/docstatus/apps/server/internal/translations/store"
)

// newCache starts a miniredis server and returns a RedisReportCache backed by it.
func newCache(t *testing.T, ttl time.Duration) (*store.RedisReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return store.NewRedisReportCache(rdb, "krfoss", "kali-docs", "master", ttl), mr
}

var report = []*translations.Node{
	{
		Name: "tools", Path: "tools", URL: "https://github.com/krfoss/kali-docs/tree/master/tools",
		Status: translations.StatusYellow, IsDir: true,
		Children: []*translations.Node{
			{Name: "index.md", Path: "tools/index.md", Status: translations.StatusGreen, Children: []*translations.Node{}},
		},
	},
}

func TestGet_Empty(t *testing.T) {
	c, _ := newCache(t, time.Minute)

	got, err := c.Get(context.Background())

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSetGet_Roundtrip(t *testing.T) {
	c, mr := newCache(t, time.Minute)

	require.NoError(t, c.Set(context.Background(), report))

	got, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report, got)
	assert.True(t, mr.Exists("docstatus:report:krfoss/kali-docs@master"))
}

func TestSet_EmptyReportIsAHit(t *testing.T) {
	c, _ := newCache(t, time.Minute)

	require.NoError(t, c.Set(context.Background(), nil))

	got, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSet_Expires(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	require.NoError(t, c.Set(context.Background(), report))

	mr.FastForward(2 * time.Minute)

	got, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGet_CorruptValue(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	require.NoError(t, mr.Set("docstatus:report:krfoss/kali-docs@master", "{not json"))

	_, err := c.Get(context.Background())

	assert.Error(t, err)
}

func TestGet_ServerDown(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	mr.Close()

	_, err := c.Get(context.Background())

	assert.Error(t, err)
}

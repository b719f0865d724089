package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 10, cfg.PostsPerPage)
	assert.Equal(t, 20*time.Second, cfg.IndexCacheTTL)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, "/media/", cfg.MediaURL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("POSTS_PER_PAGE", "25")
	t.Setenv("INDEX_CACHE_TTL", "1m")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.PostsPerPage)
	assert.Equal(t, time.Minute, cfg.IndexCacheTTL)
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"bad page size":  {"POSTS_PER_PAGE", "ten"},
		"zero page size": {"POSTS_PER_PAGE", "0"},
		"bad ttl":        {"INDEX_CACHE_TTL", "soon"},
		"bad driver":     {"DB_DRIVER", "mysql"},
		"bad cache":      {"CACHE_BACKEND", "memcached"},
		"s3 no bucket":   {"MEDIA_BACKEND", "s3"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "blog", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=blog sslmode=disable", cfg.PostgresDSN())

	cfg.DatabaseURL = "postgres://u:p@db/blog"
	assert.Equal(t, "postgres://u:p@db/blog", cfg.PostgresDSN())
}

package redis

import goredis "github.com/redis/go-redis/v9"

// RedisConfig holds Redis configuration. One logical database carries
// both the rate-limit counters and the cache lookups.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// redisImpl implements IRedis using go-redis.
type redisImpl struct {
	client *goredis.Client
}

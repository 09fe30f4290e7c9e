package middleware

import (
	"renov-srv/pkg/log"
	"renov-srv/pkg/redis"
	"renov-srv/pkg/scope"
)

// RateLimitConfig holds per-minute ceilings for the limited buckets.
type RateLimitConfig struct {
	PerUser     int
	CompanyScan int
	Upload      int
}

type Middleware struct {
	l          log.Logger
	jwtManager scope.Manager
	redis      redis.IRedis
	rates      RateLimitConfig
}

func New(l log.Logger, jwtManager scope.Manager, redisClient redis.IRedis, rates RateLimitConfig) Middleware {
	if rates.PerUser <= 0 {
		rates.PerUser = 200
	}
	if rates.CompanyScan <= 0 {
		rates.CompanyScan = 10
	}
	if rates.Upload <= 0 {
		rates.Upload = 5
	}
	return Middleware{
		l:          l,
		jwtManager: jwtManager,
		redis:      redisClient,
		rates:      rates,
	}
}

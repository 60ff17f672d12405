package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig describes a single Redis server.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// ConnectRedis creates a client and checks the server is reachable.
func ConnectRedis(ctx context.Context, config RedisConfig) (*redis.Client, error) {
	addr := config.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	poolSize := config.PoolSize
	if poolSize == 0 {
		poolSize = 10
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     poolSize,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return client, nil
}

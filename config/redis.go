package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens the redis connection and verifies it with a ping
func ConnectRedis() (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Username: os.Getenv("REDIS_USER"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	res, err := rdb.Ping(context.Background()).Result()
	if err != nil {
		return nil, err
	}

	log.Println("Connected to redis:", res)
	return rdb, nil
}

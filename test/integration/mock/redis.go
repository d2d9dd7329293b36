package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis

// NewRedis returns a client connected to a shared miniredis server.
func NewRedis() (*redis.Client, *miniredis.Miniredis) {
	redisConnOnce.Do(func() {
		redisConn, redisServer = openRedisConn()
	})
	return redisConn, redisServer
}

func openRedisConn() (*redis.Client, *miniredis.Miniredis) {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn := redis.NewClient(&redis.Options{
		Addr: server.Addr(),
	})

	return conn, server
}

// ClearRedis flushes every key.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}

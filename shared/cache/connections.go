package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/chimera-ai/functions/shared/logger"
	"github.com/chimera-ai/functions/shared/utils"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// ConnectionOptions are the options applied to every instance on ConnectoCacheClients
type ConnectionOptions struct {
	KeyPrefix string
	IsCluster bool
	PoolSize  int
}

// ConnectoCacheClients instantiates n number of cache connections, instances that
// fail to connect are logged and skipped. Returns error only if all of them fail.
func ConnectoCacheClients(ctx context.Context, connectionStrings []string, options ConnectionOptions) ([]*Redis, error) {
	if len(connectionStrings) == 0 {
		return nil, ErrNoCacheClientProvided
	}

	clients := make(chan *Redis, len(connectionStrings))

	var wg sync.WaitGroup

	for _, address := range connectionStrings {
		wg.Add(1)
		go func(addr string) {
			defer wg.Done()
			err := connectToInstance(ctx, clients, addr, options)
			if err != nil {
				logger.Log.WithFields(logrus.Fields{
					"address": addr,
					"error":   err.Error(),
				}).Warn(fmt.Sprintf("failure connecting to redis instance %s: %s", addr, err.Error()))
			}
		}(address)
	}

	wg.Wait()

	close(clients)

	var instances []*Redis
	for client := range clients {
		instances = append(instances, client)
	}

	if len(instances) == 0 {
		return nil, errors.New("redis connection error: all instances failed to connect")
	}

	return instances, nil
}

// CloseConnections closes all cache connections, returning error if any of them fail
func CloseConnections(cacheClients []*Redis) error {
	return utils.RunFnOnSliceSingleFailure(cacheClients, func(ins *Redis) error {
		return ins.Close()
	})
}

func connectToInstance(ctx context.Context, clients chan *Redis, address string, options ConnectionOptions) error {
	clientOptions := &RedisClientOptions{
		BaseOptions: &redis.Options{
			Addr:     address,
			Password: "",
			DB:       0,
			PoolSize: options.PoolSize,
		},
		KeyPrefix: options.KeyPrefix,
		Name:      address,
		PoolSize:  options.PoolSize,
	}

	var redisClient *Redis
	var err error

	if options.IsCluster {
		redisClient, err = NewRedisClusterClient(ctx, clientOptions)
	} else {
		redisClient, err = NewRedisClient(ctx, clientOptions)
	}
	if err != nil {
		return err
	}

	clients <- redisClient

	return nil
}

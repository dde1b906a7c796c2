package main

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	postscache "github.com/chimera-ai/functions/posts/cache"
	"github.com/chimera-ai/functions/shared/apigateway"
	"github.com/chimera-ai/functions/shared/cache"
	"github.com/chimera-ai/functions/shared/environment"
	"github.com/chimera-ai/functions/shared/utils"
	"github.com/pkg/errors"

	logger "github.com/chimera-ai/functions/shared/logger"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrAllFlushesFailed when no cache instance could be flushed
	ErrAllFlushesFailed = errors.New("failed flushing every cache instance")

	redisConnectionStrings = environment.GetStringSlice("REDIS_CONNECTION_STRINGS", nil)
	isRedisCluster         = environment.GetBool("IS_REDIS_CLUSTER", false)
)

// LambdaHandler drops the cached posts reads and returns how many keys were removed
func LambdaHandler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	deleted, err := FlushPosts(ctx, redisConnectionStrings, isRedisCluster)
	if err != nil {
		logger.Log.WithFields(log.Fields{
			"requestID": request.RequestContext.RequestID,
			"error":     err.Error(),
		}).Error("flush cache: " + err.Error())
		return *apigateway.NewErrorResponse(http.StatusInternalServerError, err), nil
	}

	return *apigateway.NewJSONResponse(http.StatusOK, map[string]any{
		"ok":      true,
		"deleted": deleted,
	}), nil
}

// FlushPosts invalidates the posts keys on every cache instance. Instances that fail
// are logged, an error is returned only when all of them fail.
func FlushPosts(ctx context.Context, connectionStrings []string, isCluster bool) (int64, error) {
	clients, err := cache.ConnectoCacheClients(ctx, connectionStrings, cache.ConnectionOptions{
		IsCluster: isCluster,
	})
	if err != nil {
		return 0, errors.Wrap(err, "error connecting to redis")
	}
	defer cache.CloseConnections(clients)

	var deleted int64

	errs := utils.RunFnOnSliceMultipleFailures(clients, func(ins *cache.Redis) error {
		n, err := postscache.Invalidate(ctx, ins)
		atomic.AddInt64(&deleted, n)
		if err != nil {
			logger.Log.WithFields(log.Fields{
				"instance": ins.Name,
				"error":    err.Error(),
			}).Warn("flush cache: failure deleting posts keys on " + ins.Name)
		}
		return err
	})

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == len(clients) {
		return deleted, ErrAllFlushesFailed
	}

	return deleted, nil
}

func main() {
	lambda.Start(LambdaHandler)
}

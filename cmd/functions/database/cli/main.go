package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-lambda-go/events"
	base "github.com/chimera-ai/functions/cmd/functions/database"
	"github.com/chimera-ai/functions/shared/environment"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	logger "github.com/chimera-ai/functions/shared/logger"
	log "github.com/sirupsen/logrus"
)

func main() {
	method := flag.String("method", "GET", "HTTP method of the request")
	path := flag.String("path", "/posts", "route to request, relative to the function prefix")
	query := flag.String("query", "", "query string of the request, ie: limit=3&offset=1")
	flag.Parse()

	// .env is optional, the environment may already be set
	_ = godotenv.Load()

	timeout := time.Duration(environment.GetInt64("TIMEOUT", 30)) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	requestID := uuid.NewString()

	params, err := url.ParseQuery(*query)
	if err != nil {
		logger.Log.WithFields(log.Fields{
			"requestID": requestID,
			"error":     err.Error(),
		}).Fatal("ERROR PARSING QUERY: " + err.Error())
	}

	config := base.ConfigFromEnv()
	function, closeFn := base.NewFunction(ctx, config)
	defer closeFn()

	request := events.APIGatewayProxyRequest{
		HTTPMethod:            *method,
		Path:                  config.Prefix + *path,
		QueryStringParameters: map[string]string{},
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: requestID,
		},
	}
	for key := range params {
		request.QueryStringParameters[key] = params.Get(key)
	}

	response, _ := function.Handle(ctx, request)

	fmt.Println(response.Body)

	logger.Log.WithFields(log.Fields{
		"requestID":  requestID,
		"path":       request.Path,
		"statusCode": response.StatusCode,
	}).Info("DATABASE FUNCTION RESULT")
}

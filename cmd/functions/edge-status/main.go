package main

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chimera-ai/functions/shared/apigateway"
	"github.com/chimera-ai/functions/shared/proxy"
	"github.com/chimera-ai/functions/status"
)

// LambdaHandler answers preflight requests and returns the platform document
// for any other one
func LambdaHandler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if proxy.OPTIONS.Matches(request.HTTPMethod) {
		return *apigateway.NewPreflightResponse(), nil
	}

	return *apigateway.NewJSONResponse(http.StatusOK, status.Platform(time.Now())), nil
}

func main() {
	lambda.Start(LambdaHandler)
}

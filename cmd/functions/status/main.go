package main

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chimera-ai/functions/shared/apigateway"
	"github.com/chimera-ai/functions/status"
)

// LambdaHandler answers every request with the operational document
func LambdaHandler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return *apigateway.NewJSONResponse(http.StatusOK, status.Operational(time.Now())), nil
}

func main() {
	lambda.Start(LambdaHandler)
}

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/chimera-ai/functions/shared/apigateway"
	"github.com/chimera-ai/functions/shared/environment"
	"github.com/chimera-ai/functions/shared/proxy"
	"github.com/chimera-ai/functions/status"

	logger "github.com/chimera-ai/functions/shared/logger"
	log "github.com/sirupsen/logrus"
)

var (
	region = environment.GetString("AWS_REGION", "us-east-1")

	// newClients is replaced on tests
	newClients = buildClients
)

// buildClients creates the S3 and DynamoDB clients, only to confirm the SDK
// can be configured on the running environment
func buildClients() error {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return err
	}

	config := &aws.Config{Region: aws.String(region)}
	_ = s3.New(sess, config)
	_ = dynamodb.New(sess, config)

	return nil
}

// LambdaHandler answers preflight requests and reports whether the AWS SDK clients
// can be built
func LambdaHandler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if proxy.OPTIONS.Matches(request.HTTPMethod) {
		return *apigateway.NewPreflightResponse(), nil
	}

	now := time.Now()

	if err := newClients(); err != nil {
		logger.Log.WithFields(log.Fields{
			"requestID": request.RequestContext.RequestID,
			"error":     err.Error(),
		}).Error("aws status: unable to build sdk clients: " + err.Error())

		return *apigateway.NewJSONResponse(http.StatusInternalServerError, status.NewAWSSDKError(err, now)), nil
	}

	return *apigateway.NewJSONResponse(http.StatusOK, status.AWSSDK(now)), nil
}

func main() {
	lambda.Start(LambdaHandler)
}

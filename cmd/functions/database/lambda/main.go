package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	base "github.com/chimera-ai/functions/cmd/functions/database"
)

func main() {
	// Connections are kept between invocations of the same container
	function, _ := base.NewFunction(context.Background(), base.ConfigFromEnv())

	lambda.Start(function.Handle)
}

package proxy

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// RouteContext is the request given to a route handler
type RouteContext struct {
	Context context.Context
	Request events.APIGatewayProxyRequest
	// Params are the query string params, never nil
	Params map[string]string
}

// RequestID returns the id the gateway assigned to the request, empty when
// the request was not built by a gateway
func (ctx *RouteContext) RequestID() string {
	return ctx.Request.RequestContext.RequestID
}

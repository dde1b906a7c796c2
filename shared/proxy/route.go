package proxy

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// RouteHandler handles a request matched by a route
type RouteHandler func(*RouteContext) (events.APIGatewayProxyResponse, error)

// Route pairs a method and a path pattern with its handler. The pattern is
// anchored to the whole path and accepts one trailing slash.
type Route struct {
	Method  HttpMethod
	Regex   *regexp.Regexp
	Handler RouteHandler
}

// NewRoute compiles pattern into a route
func NewRoute(method HttpMethod, pattern string, handler RouteHandler) (*Route, error) {
	rx, err := regexp.Compile("^" + pattern + "/?$")
	if err != nil {
		return nil, errors.Wrapf(err, "failed compiling route pattern '%s'", pattern)
	}

	return &Route{
		Method:  method,
		Regex:   rx,
		Handler: handler,
	}, nil
}

func (route *Route) String() string {
	return fmt.Sprintf("%s %s", route.Method, route.Regex)
}

// Matches reports whether request has the route method and path
func (route *Route) Matches(request events.APIGatewayProxyRequest) bool {
	return route.Method.Matches(request.HTTPMethod) && route.Regex.MatchString(request.Path)
}

// Follow runs the route handler with the query params of request
func (route *Route) Follow(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return route.Handler(&RouteContext{
		Context: ctx,
		Request: request,
		Params:  queryParams(request),
	})
}

func queryParams(request events.APIGatewayProxyRequest) map[string]string {
	params := make(map[string]string, len(request.QueryStringParameters))
	for key, value := range request.QueryStringParameters {
		params[key] = value
	}

	return params
}

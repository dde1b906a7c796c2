package proxy

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// ErrorHandler turns the error of a route into a response
type ErrorHandler func(context.Context, events.APIGatewayProxyRequest, error) (events.APIGatewayProxyResponse, error)

// CatchAllHandler answers the requests no route matched
type CatchAllHandler func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Router holds the routes of a function. Patterns that fail to compile are kept
// as build errors, check Valid before routing.
//
//	router := &proxy.Router{CatchAll: info, CatchError: failure}
//	router.OPTIONS(".*", preflight)
//	router.ANY("/posts", listPosts)
//
//	if !router.Valid() {
//		return failure(ctx, request, router.BuildErrors())
//	}
//	return router.Route(ctx, request)
type Router struct {
	Routes     []*Route
	CatchAll   CatchAllHandler
	CatchError ErrorHandler

	errors []error
}

// Valid reports whether every route was built
func (router *Router) Valid() bool {
	return len(router.errors) == 0
}

// BuildErrors returns the errors of the routes that could not be built
func (router *Router) BuildErrors() error {
	err := errors.New("failed building router")
	for _, buildErr := range router.errors {
		err = errors.Wrap(err, buildErr.Error())
	}

	return err
}

// Handle adds a route for method and pattern
func (router *Router) Handle(method HttpMethod, pattern string, handler RouteHandler) {
	route, err := NewRoute(method, pattern, handler)
	if err != nil {
		router.errors = append(router.errors, err)
		return
	}

	router.Routes = append(router.Routes, route)
}

// OPTIONS adds a preflight route
func (router *Router) OPTIONS(pattern string, handler RouteHandler) {
	router.Handle(OPTIONS, pattern, handler)
}

// ANY adds a route served for every method
func (router *Router) ANY(pattern string, handler RouteHandler) {
	router.Handle(ANY, pattern, handler)
}

// Route runs the first route matching request, the catch all handler when
// none does. Errors are given to the catch error handler when it is set.
func (router *Router) Route(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	response, err := router.route(ctx, request)
	if err != nil && router.CatchError != nil {
		return router.CatchError(ctx, request, err)
	}

	return response, err
}

func (router *Router) route(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	for _, route := range router.Routes {
		if route.Matches(request) {
			return route.Follow(ctx, request)
		}
	}

	if router.CatchAll != nil {
		return router.CatchAll(ctx, request)
	}

	return events.APIGatewayProxyResponse{}, fmt.Errorf("'%s %s' not found", request.HTTPMethod, request.Path)
}

package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"
)

const functionPrefix = "/.netlify/functions/database"

func netlifyRequest(t *testing.T, name string) events.APIGatewayProxyRequest {
	t.Helper()

	content, err := os.ReadFile("testdata/" + name + ".json")
	require.NoError(t, err)

	var request events.APIGatewayProxyRequest
	require.NoError(t, json.Unmarshal(content, &request))

	return request
}

func newRequest(method, path string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{HTTPMethod: method, Path: path}
}

// respond echoes the path and the limit param so tests can tell which route answered
func respond(status int) RouteHandler {
	return func(ctx *RouteContext) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{
			StatusCode: status,
			Body:       ctx.Request.Path + " " + ctx.Params["limit"],
		}, nil
	}
}

func newFunctionRouter() *Router {
	router := &Router{
		CatchAll: func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: "info"}, nil
		},
	}
	router.OPTIONS(".*", respond(http.StatusNoContent))
	router.ANY(functionPrefix+"/posts", respond(http.StatusOK))
	router.ANY(functionPrefix+"/stats", func(*RouteContext) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{}, errors.New("connection refused")
	})

	return router
}

func TestRouter_Route(t *testing.T) {
	c := require.New(t)

	router := newFunctionRouter()
	c.True(router.Valid())

	response, err := router.Route(context.Background(), netlifyRequest(t, "netlify-get-posts"))
	c.NoError(err)
	c.Equal(http.StatusOK, response.StatusCode)
	c.Equal(functionPrefix+"/posts 3", response.Body)
}

func TestRouter_Route_anyMethod(t *testing.T) {
	c := require.New(t)

	router := newFunctionRouter()

	for _, method := range []string{http.MethodGet, http.MethodPost, "delete", "PROPFIND"} {
		response, err := router.Route(context.Background(), newRequest(method, functionPrefix+"/posts/"))
		c.NoError(err)
		c.Equal(http.StatusOK, response.StatusCode, method)
	}
}

func TestRouter_Route_preflightFirst(t *testing.T) {
	c := require.New(t)

	router := newFunctionRouter()

	for _, path := range []string{functionPrefix + "/posts", functionPrefix + "/stats", "/anything"} {
		response, err := router.Route(context.Background(), newRequest(http.MethodOptions, path))
		c.NoError(err)
		c.Equal(http.StatusNoContent, response.StatusCode, path)
	}
}

func TestRouter_Route_catchAll(t *testing.T) {
	c := require.New(t)

	router := newFunctionRouter()

	for _, path := range []string{functionPrefix, functionPrefix + "/posts//", functionPrefix + "/POSTS", functionPrefix + "/posts/1"} {
		response, err := router.Route(context.Background(), newRequest(http.MethodGet, path))
		c.NoError(err)
		c.Equal("info", response.Body, path)
	}
}

func TestRouter_Route_noCatchAll(t *testing.T) {
	c := require.New(t)

	router := &Router{}
	router.ANY("/posts", respond(http.StatusOK))

	_, err := router.Route(context.Background(), newRequest(http.MethodGet, "/recent"))
	c.EqualError(err, "'GET /recent' not found")
}

func TestRouter_Route_catchError(t *testing.T) {
	c := require.New(t)

	router := newFunctionRouter()

	_, err := router.Route(context.Background(), newRequest(http.MethodGet, functionPrefix+"/stats"))
	c.EqualError(err, "connection refused")

	router.CatchError = func(_ context.Context, request events.APIGatewayProxyRequest, err error) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError, Body: request.Path + ": " + err.Error()}, nil
	}

	response, err := router.Route(context.Background(), newRequest(http.MethodGet, functionPrefix+"/stats"))
	c.NoError(err)
	c.Equal(http.StatusInternalServerError, response.StatusCode)
	c.Equal(functionPrefix+"/stats: connection refused", response.Body)

	response, err = router.Route(context.Background(), newRequest(http.MethodGet, functionPrefix+"/posts"))
	c.NoError(err)
	c.Equal(http.StatusOK, response.StatusCode)
}

func TestRouter_BuildErrors(t *testing.T) {
	c := require.New(t)

	router := &Router{}
	router.ANY("/posts", respond(http.StatusOK))
	router.ANY("/posts (.*", respond(http.StatusOK))
	router.OPTIONS("[", respond(http.StatusOK))

	c.False(router.Valid())
	c.Len(router.Routes, 1)
	c.Equal("* ^/posts/?$", router.Routes[0].String())

	err := router.BuildErrors()
	c.Contains(err.Error(), "failed compiling route pattern '/posts (.*'")
	c.Contains(err.Error(), "failed compiling route pattern '['")
	c.Contains(err.Error(), ": failed building router")
}

func TestRoute_Follow_params(t *testing.T) {
	c := require.New(t)

	var got *RouteContext
	route, err := NewRoute(GET, functionPrefix+"/posts", func(ctx *RouteContext) (events.APIGatewayProxyResponse, error) {
		got = ctx
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
	})
	c.NoError(err)

	request := netlifyRequest(t, "netlify-get-posts")
	c.True(route.Matches(request))

	_, err = route.Follow(context.Background(), request)
	c.NoError(err)
	c.Equal(map[string]string{"limit": "3", "offset": "1"}, got.Params)
	c.Equal("01HQ8Z4B6A0M3XJ6QW4E3N5P7R", got.RequestID())

	got.Params["limit"] = "10"
	c.Equal("3", request.QueryStringParameters["limit"])

	_, err = route.Follow(context.Background(), newRequest(http.MethodGet, functionPrefix+"/posts"))
	c.NoError(err)
	c.NotNil(got.Params)
	c.Empty(got.Params)
	c.Empty(got.RequestID())
}

func TestRoute_Matches(t *testing.T) {
	c := require.New(t)

	route, err := NewRoute(GET, functionPrefix+"/posts", respond(http.StatusOK))
	c.NoError(err)

	c.True(route.Matches(newRequest("get", functionPrefix+"/posts")))
	c.True(route.Matches(newRequest(http.MethodGet, functionPrefix+"/posts/")))
	c.False(route.Matches(newRequest(http.MethodPost, functionPrefix+"/posts")))
	c.False(route.Matches(newRequest(http.MethodGet, "/x"+functionPrefix+"/posts")))
	c.False(route.Matches(newRequest(http.MethodGet, functionPrefix+"/posts/recent")))
}

func TestHttpMethod(t *testing.T) {
	c := require.New(t)

	c.Equal("GET", GET.String())
	c.Equal("*", ANY.String())
	c.Equal("UNKNOWN", HttpMethod(42).String())

	c.True(OPTIONS.Matches("options"))
	c.False(OPTIONS.Matches(http.MethodGet))
	c.True(ANY.Matches(http.MethodOptions))
	c.True(ANY.Matches(""))
}

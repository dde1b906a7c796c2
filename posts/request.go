package posts

import (
	"errors"
	"fmt"

	"github.com/chimera-ai/functions/shared/utils"
)

const (
	// DefaultLimit is the page size of the posts route
	DefaultLimit = 10
	// DefaultOffset is the page start of the posts route
	DefaultOffset = 0
	// RecentLimit is the number of posts returned by the recent route
	RecentLimit = 5
	// SearchLimit caps the number of posts returned by the search route
	SearchLimit = 20
	// ActionCreate is the init action that creates and seeds the table
	ActionCreate = "create"
)

// ErrInvalidParameter when a query parameter can not be used by the route
var ErrInvalidParameter = errors.New("invalid parameter")

// Request is a routed request with every default already applied
type Request struct {
	Route  Route
	PostID *int64
	Limit  int
	Offset int
	Query  string
	Action string
}

// NewRequest resolves the route of path and applies the defaults of the
// missing query params
func NewRequest(path string, params map[string]string) (*Request, error) {
	return NewRouteRequest(ParseRoute(path), params)
}

// NewRouteRequest applies the defaults of the missing query params to a request
// for route. Integer params are only parsed for the posts route, the only one
// that reads them.
func NewRouteRequest(route Route, params map[string]string) (*Request, error) {
	req := &Request{
		Route:  route,
		Limit:  DefaultLimit,
		Offset: DefaultOffset,
		Query:  params["q"],
		Action: params["action"],
	}

	if req.Route != RoutePosts {
		return req, nil
	}

	if params["postId"] != "" {
		postID, err := utils.ParseIntegerParam(params, "postId", 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidParameter, err.Error())
		}
		req.PostID = &postID
	}

	limit, err := utils.ParseIntegerParam(params, "limit", DefaultLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParameter, err.Error())
	}

	offset, err := utils.ParseIntegerParam(params, "offset", DefaultOffset)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParameter, err.Error())
	}

	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidParameter)
	}

	req.Limit = int(limit)
	req.Offset = int(offset)

	return req, nil
}

package posts

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Route is the closed set of operations served by the router
type Route int

const (
	// RouteInfo describes the API, served for any unknown path
	RouteInfo Route = iota
	RoutePosts
	RouteCategories
	RouteRecent
	RouteSearch
	RouteStats
	RouteInit
)

// routePaths is indexed by Route
var routePaths = []string{
	RouteInfo:       "",
	RoutePosts:      "/posts",
	RouteCategories: "/categories",
	RouteRecent:     "/recent",
	RouteSearch:     "/search",
	RouteStats:      "/stats",
	RouteInit:       "/init",
}

// DataRoutes are the routes served under their own path, RouteInfo is the
// fallback of every other path
var DataRoutes = []Route{RoutePosts, RouteCategories, RouteRecent, RouteSearch, RouteStats, RouteInit}

// ParseRoute returns the route matching path exactly (case-sensitive) after
// normalization, RouteInfo when there is none
func ParseRoute(path string) Route {
	path = NormalizePath(path)
	if path == "" {
		return RouteInfo
	}

	idx := slices.Index(routePaths, path)
	if idx < 0 {
		return RouteInfo
	}

	return Route(idx)
}

// NormalizePath drops a single trailing slash, the root path is kept as is
func NormalizePath(path string) string {
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		return path[:len(path)-1]
	}

	return path
}

// Path returns the path served by the route, empty for RouteInfo
func (r Route) Path() string {
	if r < 0 || int(r) >= len(routePaths) {
		return ""
	}

	return routePaths[r]
}

func (r Route) String() string {
	if r == RouteInfo {
		return "info"
	}

	path := r.Path()
	if path == "" {
		return "unknown"
	}

	return strings.TrimPrefix(path, "/")
}

package posts

import (
	"context"
)

const (
	apiName     = "Chimera AI Database API"
	apiVersion  = "1.0.0"
	apiDatabase = "Neon PostgreSQL"
	apiStatus   = "Connected"
)

// endpoints are listed by the info route
var endpoints = []string{
	"/posts - Get all posts",
	"/posts?postId=1 - Get specific post",
	"/categories - Get categories",
	"/recent - Get recent posts",
	"/search?q=query - Search posts",
	"/stats - Get database stats",
	"/init?action=create - Initialize database",
}

type handler func(ctx context.Context, req *Request) (any, error)

// Router dispatches a Request to the handler of its route
type Router struct {
	store    Store
	handlers map[Route]handler
}

// NewRouter returns a router reading from store
func NewRouter(store Store) *Router {
	r := &Router{store: store}
	r.handlers = map[Route]handler{
		RouteInfo:       r.info,
		RoutePosts:      r.posts,
		RouteCategories: r.categories,
		RouteRecent:     r.recent,
		RouteSearch:     r.search,
		RouteStats:      r.stats,
		RouteInit:       r.init,
	}

	return r
}

// Handle builds the request for path and params and dispatches it
func (r *Router) Handle(ctx context.Context, path string, params map[string]string) (any, error) {
	req, err := NewRequest(path, params)
	if err != nil {
		return nil, err
	}

	return r.Dispatch(ctx, req)
}

// HandleRoute builds the request of an already resolved route and dispatches it
func (r *Router) HandleRoute(ctx context.Context, route Route, params map[string]string) (any, error) {
	req, err := NewRouteRequest(route, params)
	if err != nil {
		return nil, err
	}

	return r.Dispatch(ctx, req)
}

// Dispatch runs the handler of the request route, unknown routes get the
// API description
func (r *Router) Dispatch(ctx context.Context, req *Request) (any, error) {
	h, ok := r.handlers[req.Route]
	if !ok {
		h = r.info
	}

	return h(ctx, req)
}

func (r *Router) posts(ctx context.Context, req *Request) (any, error) {
	var posts []Post
	var err error

	if req.PostID != nil {
		posts, err = r.store.GetPost(ctx, *req.PostID)
	} else {
		posts, err = r.store.ListPosts(ctx, req.Limit, req.Offset)
	}
	if err != nil {
		return nil, err
	}

	return nonNil(posts), nil
}

func (r *Router) categories(ctx context.Context, _ *Request) (any, error) {
	categories, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	return nonNil(categories), nil
}

func (r *Router) recent(ctx context.Context, _ *Request) (any, error) {
	recent, err := r.store.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}

	return nonNil(recent), nil
}

func (r *Router) search(ctx context.Context, req *Request) (any, error) {
	if req.Query == "" {
		return []Post{}, nil
	}

	posts, err := r.store.Search(ctx, req.Query, SearchLimit)
	if err != nil {
		return nil, err
	}

	return nonNil(posts), nil
}

func (r *Router) stats(ctx context.Context, _ *Request) (any, error) {
	stats, err := r.store.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &Stats{}
	}

	return &StatsReport{
		Stats:      *stats,
		Database:   apiDatabase,
		Status:     apiStatus,
		Latency:    "<5ms",
		Compliance: "SOC2/GDPR",
	}, nil
}

func (r *Router) init(ctx context.Context, req *Request) (any, error) {
	if req.Action != ActionCreate {
		return &Message{Message: "Use ?action=create to initialize database"}, nil
	}

	if err := r.store.Initialize(ctx); err != nil {
		return nil, err
	}

	return &Message{Message: "Database initialized successfully"}, nil
}

func (r *Router) info(context.Context, *Request) (any, error) {
	return &Info{
		Message:   apiName,
		Version:   apiVersion,
		Endpoints: endpoints,
		Database:  apiDatabase,
		Status:    apiStatus,
	}, nil
}

func nonNil[T any](slice []T) []T {
	if slice == nil {
		return []T{}
	}
	return slice
}

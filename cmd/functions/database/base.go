package base

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chimera-ai/functions/posts"
	postscache "github.com/chimera-ai/functions/posts/cache"
	postsdb "github.com/chimera-ai/functions/posts/database"
	"github.com/chimera-ai/functions/shared/apigateway"
	"github.com/chimera-ai/functions/shared/cache"
	"github.com/chimera-ai/functions/shared/database"
	"github.com/chimera-ai/functions/shared/environment"
	"github.com/chimera-ai/functions/shared/metrics"
	"github.com/chimera-ai/functions/shared/proxy"
	"github.com/google/uuid"

	logger "github.com/chimera-ai/functions/shared/logger"
	log "github.com/sirupsen/logrus"
)

// FunctionName identifies the function on logs and error metrics
const FunctionName = "database"

// DefaultPrefix is the path the function is mounted on by netlify
const DefaultPrefix = "/.netlify/functions/database"

// Config holds the settings of the function, read from the environment by ConfigFromEnv
type Config struct {
	DatabaseURL            string
	MinPoolSize            int
	MaxPoolSize            int
	Prefix                 string
	RedisConnectionStrings []string
	IsRedisCluster         bool
	CacheTTL               int64
	MetricsConnection      string
}

// ConfigFromEnv reads the function config from the environment
func ConfigFromEnv() *Config {
	return &Config{
		DatabaseURL:            environment.GetString("NETLIFY_DATABASE_URL", environment.GetString("DATABASE_URL", "")),
		MinPoolSize:            int(environment.GetInt64("DATABASE_MIN_POOL_SIZE", 0)),
		MaxPoolSize:            int(environment.GetInt64("DATABASE_MAX_POOL_SIZE", 4)),
		Prefix:                 environment.GetString("FUNCTION_PATH_PREFIX", DefaultPrefix),
		RedisConnectionStrings: environment.GetStringSlice("REDIS_CONNECTION_STRINGS", nil),
		IsRedisCluster:         environment.GetBool("IS_REDIS_CLUSTER", false),
		CacheTTL:               environment.GetInt64("CACHE_TTL", 60),
		MetricsConnection:      environment.GetString("METRICS_CONNECTION", ""),
	}
}

// Function answers the requests of the database function
type Function struct {
	Router   *posts.Router
	Prefix   string
	Recorder metrics.ErrorRecorder
	Now      func() time.Time
}

// NewFunction builds the function and its dependencies from config. A store that
// can not be built is replaced by one failing every query, so the function still
// answers. The returned func releases every connection.
func NewFunction(ctx context.Context, config *Config) (*Function, func()) {
	var closers []func()

	var store posts.Store
	postgres, err := postsdb.NewPostsPostgresFromConnectionString(ctx, &database.PostgresOptions{
		Connection:  config.DatabaseURL,
		MinPoolSize: config.MinPoolSize,
		MaxPoolSize: config.MaxPoolSize,
		LazyConnect: true,
	})
	if err != nil {
		logger.Log.WithFields(log.Fields{
			"function": FunctionName,
			"error":    err.Error(),
		}).Error("database: unable to build posts store: " + err.Error())
		store = posts.UnavailableStore{Err: err}
	} else {
		store = postgres
		closers = append(closers, postgres.Close)
	}

	if len(config.RedisConnectionStrings) > 0 {
		clients, err := cache.ConnectoCacheClients(ctx, config.RedisConnectionStrings, cache.ConnectionOptions{
			IsCluster: config.IsRedisCluster,
		})
		if err != nil {
			logger.Log.WithFields(log.Fields{
				"function": FunctionName,
				"error":    err.Error(),
			}).Warn("database: running without cache: " + err.Error())
		} else {
			store = postscache.NewStore(store, clients, uint(config.CacheTTL))
			closers = append(closers, func() { cache.CloseConnections(clients) })
		}
	}

	function := &Function{
		Router: posts.NewRouter(store),
		Prefix: config.Prefix,
		Now:    time.Now,
	}

	if config.MetricsConnection != "" {
		recorder, err := metrics.NewMetricsRecorder(ctx, &database.PostgresOptions{
			Connection:  config.MetricsConnection,
			MinPoolSize: 0,
			MaxPoolSize: 2,
			LazyConnect: true,
		})
		if err != nil {
			logger.Log.WithFields(log.Fields{
				"function": FunctionName,
				"error":    err.Error(),
			}).Warn("database: running without error metrics: " + err.Error())
		} else {
			function.Recorder = recorder
			closers = append(closers, recorder.Close)
		}
	}

	return function, func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}
}

// Handle is the lambda entry point, failures are always answered with a
// status 500 response and never returned to the runtime
func (f *Function) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.RequestContext.RequestID == "" {
		request.RequestContext.RequestID = uuid.NewString()
	}

	router := f.Proxy()
	if !router.Valid() {
		return f.catchError(ctx, request, router.BuildErrors())
	}

	return router.Route(ctx, request)
}

// Proxy returns the router of the function. Preflight requests are answered
// right away, every data route is served for any other method, with or without
// the function prefix, and the remaining paths get the API description.
func (f *Function) Proxy() *proxy.Router {
	router := &proxy.Router{
		CatchAll:   f.info,
		CatchError: f.catchError,
	}
	router.OPTIONS(".*", f.preflight)

	for _, route := range posts.DataRoutes {
		router.ANY(f.pattern(route), f.serve(route))
	}

	return router
}

// RoutePath returns the path of the request relative to the function prefix
func (f *Function) RoutePath(path string) string {
	if f.Prefix == "" {
		return path
	}

	return strings.TrimPrefix(path, f.Prefix)
}

func (f *Function) pattern(route posts.Route) string {
	if f.Prefix == "" {
		return regexp.QuoteMeta(route.Path())
	}

	return "(?:" + regexp.QuoteMeta(f.Prefix) + ")?" + regexp.QuoteMeta(route.Path())
}

func (f *Function) preflight(*proxy.RouteContext) (events.APIGatewayProxyResponse, error) {
	return *apigateway.NewPreflightResponse(), nil
}

func (f *Function) serve(route posts.Route) proxy.RouteHandler {
	return func(ctx *proxy.RouteContext) (events.APIGatewayProxyResponse, error) {
		logger.Log.WithFields(log.Fields{
			"requestID": ctx.RequestID(),
			"route":     route.String(),
		}).Debug("database: serving route")

		return f.respond(f.Router.HandleRoute(ctx.Context, route, ctx.Params))
	}
}

func (f *Function) info(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return f.respond(f.Router.HandleRoute(ctx, posts.RouteInfo, request.QueryStringParameters))
}

func (f *Function) respond(data any, err error) (events.APIGatewayProxyResponse, error) {
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return *apigateway.NewSuccessResponse(data, f.now()), nil
}

func (f *Function) catchError(ctx context.Context, request events.APIGatewayProxyRequest, err error) (events.APIGatewayProxyResponse, error) {
	now := f.now()
	path := f.RoutePath(request.Path)
	route := posts.ParseRoute(path).String()
	requestID := request.RequestContext.RequestID

	if f.Recorder != nil {
		f.Recorder.WriteErrorMetric(ctx, &metrics.ErrorMetric{
			Timestamp: now,
			Function:  FunctionName,
			Route:     route,
			Path:      path,
			Message:   err.Error(),
			RequestID: requestID,
		})
	}

	return *apigateway.LogAndReturnError(err, log.Fields{
		"requestID": requestID,
		"function":  FunctionName,
		"route":     route,
		"path":      path,
	}, now), nil
}

func (f *Function) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}

	return f.Now()
}

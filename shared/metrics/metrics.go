package metrics

import (
	"context"
	"time"

	"github.com/chimera-ai/functions/shared/database"
	"github.com/chimera-ai/functions/shared/logger"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrorMetric represents a failed function invocation.
// Order of struct fields reflects order of the fields in the db
type ErrorMetric struct {
	Timestamp time.Time
	Function  string
	Route     string
	Path      string
	Message   string
	RequestID string
}

// ErrorRecorder is the interface for anything able to store error metrics
type ErrorRecorder interface {
	WriteErrorMetric(ctx context.Context, metric *ErrorMetric)
}

// Recorder represents the struct to write records to the metrics database
type Recorder struct {
	conn *pgxpool.Pool
}

// NewMetricsRecorder returns a connection to a metrics database
func NewMetricsRecorder(ctx context.Context, options *database.PostgresOptions) (*Recorder, error) {
	postgres, err := database.NewPostgresDatabase(ctx, options)
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to metrics db")
	}

	return &Recorder{
		conn: postgres.Conn,
	}, nil
}

// WriteErrorMetric writes an error metric to the connected database, a failure
// to write is only logged
func (r *Recorder) WriteErrorMetric(ctx context.Context, metric *ErrorMetric) {
	_, err := r.conn.Exec(ctx, `
	INSERT INTO
	 function_errors
	 (timestamp,
		function,
		route,
		path,
		message,
		request_id
		)
	VALUES ($1,$2,$3,$4,$5,$6)`,
		metric.Timestamp,
		metric.Function,
		metric.Route,
		metric.Path,
		metric.Message,
		metric.RequestID)

	if err != nil {
		logger.Log.WithFields(log.Fields{
			"requestID": metric.RequestID,
			"function":  metric.Function,
			"route":     metric.Route,
		}).Error("metrics: failure recording metric: " + err.Error())
	}
}

// Close closes the postgres connection of the metrics db
func (r *Recorder) Close() {
	r.conn.Close()
}

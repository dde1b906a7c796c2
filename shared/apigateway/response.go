package apigateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chimera-ai/functions/shared/logger"
	"github.com/sirupsen/logrus"
)

// TimestampLayout is the ISO-8601 layout used on every response body
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// ErrDatabase is the generic error label of a failure envelope
const ErrDatabase = "Database error"

// ErrorResponse represents an API error
type ErrorResponse struct {
	HTTPCode int    `json:"http_code"`
	Message  string `json:"message"`
}

// SuccessEnvelope wraps the payload of a successful request
type SuccessEnvelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// FailureEnvelope wraps the error of a failed request
type FailureEnvelope struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Headers returns the headers sent on every response, CORS is open to all origins
func Headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
	}
}

// Timestamp formats t as an UTC ISO-8601 string with milliseconds
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NewErrorResponse returns an error response
func NewErrorResponse(statusCode int, err error) *events.APIGatewayProxyResponse {
	return NewJSONResponse(statusCode, ErrorResponse{
		HTTPCode: statusCode,
		Message:  err.Error(),
	})
}

// NewJSONResponse creates a new JSON response given a serializable val
func NewJSONResponse(statusCode int, val interface{}) *events.APIGatewayProxyResponse {
	data, _ := json.Marshal(val)
	return &events.APIGatewayProxyResponse{
		StatusCode:      statusCode,
		IsBase64Encoded: false,
		Body:            string(data),
		Headers:         Headers(),
	}
}

// NewPreflightResponse answers a CORS preflight request with an empty body
func NewPreflightResponse() *events.APIGatewayProxyResponse {
	return &events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    Headers(),
	}
}

// NewSuccessResponse wraps data on a success envelope with status 200
func NewSuccessResponse(data any, now time.Time) *events.APIGatewayProxyResponse {
	return NewJSONResponse(http.StatusOK, SuccessEnvelope{
		Success:   true,
		Data:      data,
		Timestamp: Timestamp(now),
	})
}

// NewFailureResponse wraps err on a failure envelope with status 500
func NewFailureResponse(err error, now time.Time) *events.APIGatewayProxyResponse {
	return NewJSONResponse(http.StatusInternalServerError, FailureEnvelope{
		Success:   false,
		Error:     ErrDatabase,
		Message:   err.Error(),
		Timestamp: Timestamp(now),
	})
}

// LogAndReturnError logs the given error to the console and terminates
// the response with a status 500 failure envelope
func LogAndReturnError(err error, fields logrus.Fields, now time.Time) *events.APIGatewayProxyResponse {
	entry := logger.Log.WithFields(logrus.Fields{
		"error": err.Error(),
	})
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error("request failed: " + err.Error())

	return NewFailureResponse(err, now)
}

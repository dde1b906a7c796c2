// Package proxy routes the events.APIGatewayProxyRequest received by a function
// (api gateway or netlify functions) to a handler, by method and path pattern.
//
// Routes are tried in the order they were added, a request matching none of
// them goes to the catch all handler and any handler error goes to the catch
// error handler.
package proxy

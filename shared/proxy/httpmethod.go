package proxy

import "strings"

// HttpMethod is the method a route is registered for
type HttpMethod int

const (
	// ANY matches every request method
	ANY HttpMethod = iota
	GET
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH
)

var methodNames = [...]string{
	ANY:     "*",
	GET:     "GET",
	HEAD:    "HEAD",
	POST:    "POST",
	PUT:     "PUT",
	DELETE:  "DELETE",
	CONNECT: "CONNECT",
	OPTIONS: "OPTIONS",
	TRACE:   "TRACE",
	PATCH:   "PATCH",
}

func (m HttpMethod) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "UNKNOWN"
	}

	return methodNames[m]
}

// Matches reports whether the raw request method is m, ignoring case
func (m HttpMethod) Matches(method string) bool {
	if m == ANY {
		return true
	}

	return strings.EqualFold(m.String(), method)
}

// Package http implements the HTTP transport layer of the user service.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as bearer-token authentication, the admin
// privilege gate, request tracing, and access logging are handled in this
// package before requests are delegated to the service layer.
//
// Error responses use a uniform JSON envelope ({"error": "..."}) with stable
// messages, so that callers cannot distinguish failure causes beyond the
// documented status codes.
package http

// Package client talks to the credit score HTTP API.
//
// Client wraps a resty client configured with the server base URL and request
// timeout. Responses decode into the api package DTOs. Non-2xx responses
// become *APIError carrying the status code and the server's message; a 404
// from Get is reported as ErrNotFound so callers can branch with errors.Is.
package client

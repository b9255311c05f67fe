// Package gateway is the HTTP client for the /foods backend.
//
// HTTPGateway maps list, create, update and delete onto GET, POST, PUT and
// DELETE. Every failure comes back as a *TransportError carrying the status
// and a truncated body; errors.Is(err, ErrNotFound) matches 404s.
// Concurrent List calls share one request.
package gateway

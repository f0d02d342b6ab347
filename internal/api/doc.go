// Package api holds the HTTP handlers of the vocabulary coach. Handlers decode
// and validate the request, call the session or catalog service for the
// authenticated learner, and map service errors to status codes with safe
// client messages (see HandleAPIError). Routing lives in cmd/server.
package api

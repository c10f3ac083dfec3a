// Package server holds the HTTP server settings shared by the start command
// and the auth middleware.
package server

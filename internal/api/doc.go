// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It translates the catalog's HTTP surface into
// store and media operations, keeping the fixed response envelope and
// error messages in one place.
package api

// Package config loads, parses, and validates application configuration
// from environment variables and an optional config file. It gives the rest
// of the application type-safe access to settings (server, database, auth,
// media host) while keeping the loading mechanics in one place.
package config

// Package config loads plugin configuration from environment variables
// using struct field tags, with an optional .env file for development.
//
// It is a thin wrapper around env parsing that standardizes error wrapping
// and the one-time .env autoload; configuration types themselves live next
// to the components they configure.
package config

// Package config loads env-tagged configuration structs from the process
// environment, with optional .env file support for local development.
//
// Every package in this module that needs runtime settings exposes a
// Config struct with `env` tags; this package is the single place that
// knows how those tags are resolved.
package config

package config

import "errors"

var (
	// ErrMissingAPIBaseURL indicates that the API base URL is not configured
	ErrMissingAPIBaseURL = errors.New("apiBaseUrl is required in configuration")

	// ErrInvalidAPIBaseURL indicates an API base URL that is not an absolute http(s) URL
	ErrInvalidAPIBaseURL = errors.New("apiBaseUrl must be an absolute http or https URL")

	// ErrUnknownStoreBackend indicates a store backend other than file, keyring, sqlite or memory
	ErrUnknownStoreBackend = errors.New("unknown session store backend")

	// ErrNegativeTimeout indicates a negative httpTimeout
	ErrNegativeTimeout = errors.New("httpTimeout must not be negative")

	// ErrInvalidPricing indicates negative pricing constants
	ErrInvalidPricing = errors.New("pricing values must not be negative")

	// ErrConfigFileNotFound indicates that the config file was not found
	ErrConfigFileNotFound = errors.New("configuration file not found")

	// ErrInvalidConfigFormat indicates that the config file could not be decoded
	ErrInvalidConfigFormat = errors.New("invalid configuration file format")
)

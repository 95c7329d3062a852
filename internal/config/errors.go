package config

import "errors"

var (
	// ErrFileRead is returned when the configuration file cannot be read.
	ErrFileRead = errors.New("config: unable to read configuration file")
	// ErrParse is returned when the document is not valid YAML or does not match the schema.
	ErrParse = errors.New("config: malformed configuration")
	// ErrAlreadyInitialized is returned when a holder that already carries a value is loaded again.
	ErrAlreadyInitialized = errors.New("config: configuration already initialized")
	// ErrNotInitialized is returned when the configuration is read before a successful load.
	ErrNotInitialized = errors.New("config: configuration not initialized")
)

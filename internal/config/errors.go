package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidStorageConfigs indicates a missing or in-memory DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidSessionConfigs indicates inconsistent session lifetimes.
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidExportConfigs indicates invalid export defaults.
	ErrInvalidExportConfigs = errors.New("invalid export configuration")
)

package i18n

import "errors"

var (
	ErrNilAdapter    = errors.New("translation adapter is nil")
	ErrNilFilesystem = errors.New("translation filesystem is nil")

	// YAML operations
	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")

	// File operations
	ErrLoadingTranslationsCancelled = errors.New("loading translations cancelled")
	ErrFailedToReadDirectory        = errors.New("failed to read translations directory")
	ErrFailedToReadFile             = errors.New("failed to read translation file")
	ErrEmptyTranslationFile         = errors.New("translation file is empty")
	ErrNoTranslationFiles           = errors.New("no translation files found")
)

// Package logger builds *slog.Logger values for the storefront binaries and
// libraries and keeps attribute names consistent between them.
//
// New takes Option functions. WithEnvironment picks a level and format preset
// from the deployment name and tags every record with the service and env:
//
//	development  debug  text
//	staging      info   json
//	production   info   json
//
// Later options override the preset, so a configured level or format wins:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "storefront"),
//		logger.WithOutput(os.Stderr),
//		logger.WithLevelName(cfg.LogLevel),
//	)
//
// The handler is wrapped in LogHandlerDecorator, which adds attributes stored
// in the context with WithAttrs and those returned by ContextExtractor
// callbacks. A form tags its context with logger.Mode so records written by
// the auth backend during a submit carry the mode too:
//
//	ctx = logger.WithAttrs(ctx, logger.Mode(form.ModeSignUp))
//	log.InfoContext(ctx, "account created", logger.UserID(uid))
//
// Attribute helpers (Error, Errors, UserID, Field, Mode, Status, Backend,
// Duration, Component, Event, Group) live in attr.go. Error, Errors and
// UserID return an empty attribute for nil or empty input, which slog drops,
// so callers need no nil checks.
//
// Discard returns a logger that drops everything; it is the default of every
// component that accepts a logger option.
package logger

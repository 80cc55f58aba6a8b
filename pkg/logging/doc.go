// Package logging provides structured logging configuration for the token
// engine and its tooling.
//
// The package wraps log/slog. The engine itself only logs render
// diagnostics at debug level; everything else is up to the embedding
// application.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	engine := token.NewWithConfig(token.Config{Logger: logger})
//
// Components should accept a *slog.Logger in their constructor. If no
// logger is provided, use logging.Nop() for a no-op logger.
package logging

/*
Package log provides structured logging for epoch using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with component-specific loggers, configurable log levels, and helper
functions for common logging patterns. All logs include timestamps and
support filtering by severity level.

# Core Components

Global Logger:
  - Package-level zerolog.Logger instance
  - Initialized once via log.Init()
  - Accessible from all epoch packages

Context Loggers:
  - WithComponent: tag logs with a subsystem name ("conn", "query", "txn")
  - WithConnection: tag logs with the named Connection they concern
  - WithEntity: tag logs with the entity id involved
  - WithQuery: tag logs with a query's clause count

# Usage

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true, Output: os.Stdout})

	connLog := log.WithConnection("inventory")
	connLog.Info().Int("snapshot", 3).Msg("transact committed")

	log.Logger.Error().Err(err).Str("entity_id", "pat1").Msg("update failed")

# Design Patterns

Context Logger Pattern:
  - Create child loggers with context fields via With*
  - Pass context loggers down instead of the bare global Logger
  - Avoids repeating field names at every call site

Error Logging Pattern:
  - Always attach errors with .Err(err), never string-interpolate them
  - Keeps error values inspectable by log aggregation tooling

# See Also

  - Zerolog documentation: https://github.com/rs/zerolog
  - pkg/metrics for the companion Prometheus instrumentation
*/
package log

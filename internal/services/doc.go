// Package services defines shared utilities consumed by the sync engine and
// its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp the sync session, Steam account and stage
//     for logging.
//   - Structured error markers plus the Wrap helper so callers can tell
//     locally recoverable failures (format, network) from fatal ones
//     (validation, not found).
//   - Summary and Truncate, which bound error text shown to users while the
//     full error goes to the log.
package services

// Package logging assembles structured slog loggers for emustation.
//
// It owns the console and JSON handlers, level parsing, and output fan-out to
// stderr plus an optional log file. Context helpers tag lines with the sync
// session, the Steam account, and the current stage so per-account work can
// be followed in a single log stream.
package logging

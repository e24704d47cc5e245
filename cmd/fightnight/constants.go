package main

import "time"

// Defaults for CLI commands.
const (
	DefaultShutdownTimeout = 10 * time.Second
	timestampLayout        = "2006-01-02 15:04:05 MST"
)

// Valid export formats.
var validFormats = []string{"json", "csv", "markdown", "ics"}

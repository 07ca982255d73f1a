// Package memory provides in-memory implementations of driven ports.
// They hold state for the life of the process and back tests and the
// "memory" audit backend.
package memory

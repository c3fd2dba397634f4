// Package memory provides in-process implementations of the storage ports.
// Nothing survives the process; they back tests and ephemeral sessions.
package memory

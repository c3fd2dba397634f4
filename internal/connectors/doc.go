// Package connectors provides document sources that feed the ingestion
// pipeline. Each connector lists the files in a source and can watch it
// for changes.
package connectors

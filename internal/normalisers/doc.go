// Package normalisers provides implementations of the Normaliser interface
// for the supported upload formats. Each normaliser extracts text from the
// file extensions it declares.
//
// Normalisers are registered with a Registry at startup; the registry
// dispatches on the lowercase file extension.
package normalisers

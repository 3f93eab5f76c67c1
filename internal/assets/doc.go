// Package assets turns CSS and JS sources into named, integrity-hashed
// artifacts.
//
// Each asset runs through the same fixed sequence: the external minifier,
// the global token pass, the provenance header, revision naming and finally
// a SHA-384 subresource-integrity digest over the exact bytes written.
package assets

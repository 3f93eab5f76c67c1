// Package git resolves the content revision identifier embedded in output
// file names and provenance headers.
//
// The identifier is the abbreviated HEAD commit of the repository holding
// the source tree. Trees outside a repository can fall back to a digest of
// their working files.
package git

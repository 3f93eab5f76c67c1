// Package errors provides the classified error primitives used across pagegen.
//
// Every failure in a build is fatal: a duplicate catalog name, an undeclared
// category, a failing minifier or an output path that already exists all stop
// the build. The category tells the CLI which exit code to use and the context
// carries the identifier that triggered the failure.
//
// Example usage:
//
//	err := errors.ConfigError("duplicate tool name").
//		WithContext("tool", name).
//		Build()
package errors

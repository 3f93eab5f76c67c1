// Package build provides the canonical build execution pipeline for pagegen.
//
// A build is a fixed sequence of stages run against a shared State: resolve
// the revision, load content, compile fragments, load static fragments,
// process assets, render pages and write every artifact. Any stage error
// aborts the build; nothing is retried. All execution paths (the build and
// check commands, the preview server, tests) route through BuildService.
package build

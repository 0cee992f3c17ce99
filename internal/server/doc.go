// Package server exposes document comparison over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness probe
//	POST /api/v1/compare   multipart upload of "master" and "test"
//
// The compare endpoint purges stale staged uploads, stages both files,
// compares them and removes the staged files again before the report is
// written. The optional "format" field selects json (default), markdown
// or html output.
package server

// Package staging stores uploaded documents on disk while they are compared.
//
// The comparison core works on file paths, so the HTTP server first persists
// each upload here under a unique name, runs the comparison and removes the
// files again. Uploads larger than the configured cap are rejected with
// ErrOversizedInput while they are being written, and Purge removes files
// left behind by interrupted requests once they reach a maximum age.
package staging

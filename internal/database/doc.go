// Package database provides SQLite-based storage for clausediff.
//
// This package implements the PageCache, which stores the pages extracted
// from PDF documents keyed by a fingerprint of the file contents and the
// extraction settings. Re-comparing a document that was already extracted,
// typically a master contract checked against many counterparties, skips
// both native extraction and OCR.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
// 1. No external dependencies - the cache is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. WAL mode lets a running server read while the CLI writes
//
// The cache holds document text. It lives in the user cache directory and
// can be purged by age.
package database

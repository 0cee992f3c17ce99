// Package log provides secure logging functionality with automatic
// redaction of document content and credentials, built on top of the
// standard slog package.
//
// Contracts under review are confidential. Log lines end up in terminals,
// CI output and log aggregators that are far less protected than the
// documents themselves, so the handler in this package keeps document text
// out of them:
//   - Attributes whose key names document text (text, sentence, content,
//     snippet, master, test and keys ending in _text) are replaced by a
//     length marker such as "[redacted 142 chars]".
//   - Credential-style keys (authorization, password, token...) and values
//     that look like bearer tokens, JWTs or private keys are masked.
//
// File paths, page numbers, counts and fingerprints are left untouched.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("ocr triggered",
//	    "path", "lease.pdf",          // kept
//	    "page", 3,                    // kept
//	    "text", "The tenant shall…",  // logged as [redacted 17 chars]
//	)
//
//	slog.SetDefault(logger)
package log

// Package did assembles did:ipid documents.
//
// Build is pure: the same public key and source metadata always give the
// same document.
package did

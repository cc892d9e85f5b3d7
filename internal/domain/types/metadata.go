package types

import "time"

// SourceKind names the kind of credential a key was produced from.
type SourceKind string

const (
	SourcePGP      SourceKind = "pgp"
	SourceMnemonic SourceKind = "mnemonic"
	SourceFile     SourceKind = "file"
)

// SourceMetadata is what a key source knows about the credential besides the
// key itself. Timestamps are passed through to the DID document unmodified.
type SourceMetadata struct {
	Source           SourceKind
	Created          *time.Time
	Expires          *time.Time
	Updated          *time.Time
	ArmoredPublicKey string
	Fingerprint      Fingerprint
	UserIDs          []string
	// Format is the detected encoding for file sources.
	Format string
}

// PGPKeyInfo describes one stored PGP credential for listing.
type PGPKeyInfo struct {
	Fingerprint Fingerprint
	KeyID       string
	Algorithm   string
	Created     time.Time
	Expires     *time.Time
	UserIDs     []string
	HasSecret   bool
	Ed25519     bool
}

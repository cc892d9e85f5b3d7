package types

// KeyID is the multibase/multihash peer identifier of an ed25519 public key.
// It is derived from the public key and never stored on its own.
type KeyID string

// String returns the string form of the key identifier.
func (id KeyID) String() string { return string(id) }

// DID returns the did:ipid identifier built on this key identifier.
func (id KeyID) DID() string { return DIDMethodPrefix + string(id) }

// DIDMethodPrefix is the scheme and method prefix of every document id.
const DIDMethodPrefix = "did:ipid:"

// PointerName is the mutable name a document is published under.
type PointerName string

// String returns the string form of the pointer name.
func (n PointerName) String() string { return string(n) }

// Fingerprint is a short identifier for keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

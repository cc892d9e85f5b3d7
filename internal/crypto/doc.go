// Package crypto holds the canonical in-memory ed25519 key used by dpgpid.
//
// Contents
//
//   - KeyMaterial, the 32-byte seed plus its derived public key (FromSeed,
//     FromPrivateKey, FromPublic)
//   - Signing without handing out the expanded private key (Sign)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// KeyMaterial is owned by exactly one pipeline invocation. Every constructor
// copies its input, and Zero wipes the seed; callers defer Zero right after a
// successful constructor so the secret is wiped on every exit path. Buffers
// returned by PrivateKey and Seed are fresh copies the caller must wipe with
// memzero.Zero.
package crypto

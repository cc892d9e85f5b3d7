// Package keysource turns identity credentials into canonical ed25519 keys.
//
// Three adapters share the domain.KeySource contract: PGP secret keys from a
// keystore, deterministic mnemonic or login/password credentials, and key
// files in any format the codec package can detect. Every adapter returns
// exactly one KeyMaterial; the caller owns it and must Zero it.
package keysource

package crypto

import (
	"crypto/ed25519"
	"crypto/subtle"
	"errors"
	"fmt"

	"dpgpid/internal/util/memzero"
)

const (
	// PublicKeySize is the size of an ed25519 public key.
	PublicKeySize = ed25519.PublicKeySize
	// SeedSize is the size of the canonical secret form.
	SeedSize = ed25519.SeedSize
	// PrivateKeySize is the size of the expanded seed||public secret.
	PrivateKeySize = ed25519.PrivateKeySize
)

var (
	// ErrNoSecret is returned when a secret operation runs on a public-only key.
	ErrNoSecret = errors.New("key has no secret material")
	// ErrKeyMismatch is returned when an expanded secret's public half does not
	// match the public key derived from its seed.
	ErrKeyMismatch = errors.New("public key does not match secret")
	// ErrKeySize is returned for inputs of the wrong length.
	ErrKeySize = errors.New("invalid key size")
)

// KeyMaterial is the canonical ed25519 keypair.
//
// The public key is always derived from the seed when a seed is present.
// Values are immutable after construction apart from Zero.
type KeyMaterial struct {
	public    [PublicKeySize]byte
	seed      [SeedSize]byte
	hasSecret bool
}

// DerivePublic returns the ed25519 public key for seed.
func DerivePublic(seed *[SeedSize]byte) [PublicKeySize]byte {
	priv := ed25519.NewKeyFromSeed(seed[:])
	defer memzero.Zero(priv)
	var pub [PublicKeySize]byte
	copy(pub[:], priv[SeedSize:])
	return pub
}

// FromSeed builds a KeyMaterial from a 32-byte seed. The input is copied.
func FromSeed(seed []byte) (*KeyMaterial, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes, got %d", ErrKeySize, SeedSize, len(seed))
	}
	k := &KeyMaterial{hasSecret: true}
	copy(k.seed[:], seed)
	k.public = DerivePublic(&k.seed)
	return k, nil
}

// FromPrivateKey builds a KeyMaterial from a 64-byte expanded secret
// (seed || public). The trailing public key must match the seed.
func FromPrivateKey(priv []byte) (*KeyMaterial, error) {
	if len(priv) != PrivateKeySize {
		return nil, fmt.Errorf("%w: secret must be %d bytes, got %d", ErrKeySize, PrivateKeySize, len(priv))
	}
	k, err := FromSeed(priv[:SeedSize])
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(k.public[:], priv[SeedSize:]) != 1 {
		k.Zero()
		return nil, ErrKeyMismatch
	}
	return k, nil
}

// FromPublic builds a public-only KeyMaterial.
func FromPublic(pub []byte) (*KeyMaterial, error) {
	if len(pub) != PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d", ErrKeySize, PublicKeySize, len(pub))
	}
	k := &KeyMaterial{}
	copy(k.public[:], pub)
	return k, nil
}

// HasSecret reports whether k carries a seed.
func (k *KeyMaterial) HasSecret() bool { return k != nil && k.hasSecret }

// Public returns a copy of the public key.
func (k *KeyMaterial) Public() ed25519.PublicKey {
	out := make([]byte, PublicKeySize)
	copy(out, k.public[:])
	return out
}

// Seed returns a copy of the 32-byte seed. The caller must wipe it.
func (k *KeyMaterial) Seed() ([]byte, error) {
	if !k.HasSecret() {
		return nil, ErrNoSecret
	}
	out := make([]byte, SeedSize)
	copy(out, k.seed[:])
	return out, nil
}

// PrivateKey returns a fresh 64-byte expanded secret. The caller must wipe it.
func (k *KeyMaterial) PrivateKey() (ed25519.PrivateKey, error) {
	if !k.HasSecret() {
		return nil, ErrNoSecret
	}
	return ed25519.NewKeyFromSeed(k.seed[:]), nil
}

// Sign signs msg with the key's secret.
func (k *KeyMaterial) Sign(msg []byte) ([]byte, error) {
	priv, err := k.PrivateKey()
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(priv)
	return ed25519.Sign(priv, msg), nil
}

// PublicOnly returns a copy of k without secret material.
func (k *KeyMaterial) PublicOnly() *KeyMaterial {
	return &KeyMaterial{public: k.public}
}

// Equal compares public keys only; secrets are never compared.
func (k *KeyMaterial) Equal(other *KeyMaterial) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.public == other.public
}

// Zero wipes the seed. It is safe to call more than once and on nil.
func (k *KeyMaterial) Zero() {
	if k == nil {
		return
	}
	memzero.Zero(k.seed[:])
	k.hasSecret = false
}

// String never prints secret material.
func (k *KeyMaterial) String() string {
	if k == nil {
		return "<nil key>"
	}
	return "ed25519:" + Fingerprint(k.public[:])
}

package codec

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"

	jose "github.com/go-jose/go-jose/v4"

	"dpgpid/internal/crypto"
	"dpgpid/internal/util/memzero"
)

// jwkFields is read before handing the document to go-jose so that field
// sizes are checked on the wire bytes, not on go-jose's padded copies.
type jwkFields struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	D   string `json:"d"`
}

func encodeJWK(k *crypto.KeyMaterial, part Part) ([]byte, error) {
	if part == Public {
		return jose.JSONWebKey{Key: k.Public()}.MarshalJSON()
	}
	priv, err := k.PrivateKey()
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(priv)
	return jose.JSONWebKey{Key: priv}.MarshalJSON()
}

func decodeJWK(data []byte) (*crypto.KeyMaterial, error) {
	var f jwkFields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if f.Kty != "OKP" || f.Crv != "Ed25519" {
		return nil, fmt.Errorf("%w: kty=%q crv=%q", ErrUnsupportedKey, f.Kty, f.Crv)
	}
	if err := checkB64URL(f.X, crypto.PublicKeySize); err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	if f.D != "" {
		if err := checkB64URL(f.D, crypto.SeedSize); err != nil {
			return nil, fmt.Errorf("d: %w", err)
		}
	}

	var jwk jose.JSONWebKey
	if err := jwk.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch key := jwk.Key.(type) {
	case ed25519.PrivateKey:
		defer memzero.Zero(key)
		k, err := crypto.FromPrivateKey(key)
		if err != nil {
			return nil, ErrMismatch
		}
		return k, nil
	case ed25519.PublicKey:
		return crypto.FromPublic(key)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, jwk.Key)
	}
}

func checkB64URL(s string, size int) error {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer memzero.Zero(b)
	if len(b) != size {
		return ErrBadLength
	}
	return nil
}

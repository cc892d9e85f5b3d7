package codec

import (
	"errors"

	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
)

var (
	ErrBadLength       = errors.New("invalid decoded length")
	ErrChecksum        = errors.New("checksum mismatch")
	ErrBadPrefix       = errors.New("unexpected prefix")
	ErrMalformed       = errors.New("malformed input")
	ErrMismatch        = errors.New("public key does not match secret")
	ErrUnsupportedKey  = errors.New("not an ed25519 key")
	ErrPartUnsupported = errors.New("format cannot carry this part of the key")
	ErrUnrecognized    = errors.New("format not recognized")
	ErrTooLarge        = errors.New("input too large")
)

// maxInput bounds what any decoder will look at.
const maxInput = 64 << 10

// Encode renders part of k in format f. Secret encodings contain key material
// the caller must wipe once written.
func Encode(f Format, k *crypto.KeyMaterial, part Part) ([]byte, error) {
	if k == nil {
		return nil, encodeErr(f, ErrMalformed)
	}
	if !f.Supports(part) {
		if f.String() == "unknown" {
			return nil, domain.Usagef("unknown key format %d", f)
		}
		return nil, encodeErr(f, ErrPartUnsupported)
	}
	if part == Secret && !k.HasSecret() {
		return nil, encodeErr(f, crypto.ErrNoSecret)
	}

	var (
		out []byte
		err error
	)
	switch f {
	case Base58:
		out, err = encodeRaw(base58Text, k, part)
	case Base64:
		out, err = encodeRaw(base64Text, k, part)
	case B58MH:
		out, err = encodePeerID(b58mhBase, k)
	case B64MH:
		out, err = encodePeerID(b64mhBase, k)
	case B36MF:
		out, err = encodeChecked(base36Text, k, part)
	case B58MF:
		out, err = encodeChecked(base58Text, k, part)
	case JWK:
		out, err = encodeJWK(k, part)
	case PEM:
		out, err = encodePEM(k, part)
	case PubSec:
		out, err = encodePubSec(k)
	}
	if err != nil {
		return nil, encodeErr(f, err)
	}
	return out, nil
}

// Decode parses data in format f. The part hint matters only for the raw
// base58/base64 formats, whose 32 bytes could be either half; self-describing
// formats return everything they carry.
func Decode(f Format, data []byte, part Part) (*crypto.KeyMaterial, error) {
	if len(data) > maxInput {
		return nil, decodeErr(f, ErrTooLarge)
	}
	var (
		k   *crypto.KeyMaterial
		err error
	)
	switch f {
	case Base58:
		k, err = decodeRaw(base58Text, data, part)
	case Base64:
		k, err = decodeRaw(base64Text, data, part)
	case B58MH:
		k, err = decodePeerID(b58mhBase, data)
	case B64MH:
		k, err = decodePeerID(b64mhBase, data)
	case B36MF:
		k, err = decodeChecked(base36Text, data)
	case B58MF:
		k, err = decodeChecked(base58Text, data)
	case JWK:
		k, err = decodeJWK(data)
	case PEM:
		k, err = decodePEM(data)
	case PubSec:
		k, err = decodePubSec(data)
	default:
		return nil, domain.Usagef("unknown key format %d", f)
	}
	if err != nil {
		k.Zero()
		return nil, decodeErr(f, err)
	}
	return k, nil
}

func encodeErr(f Format, err error) error {
	return &domain.CodecError{Format: f.String(), Op: "encode", Err: err}
}

func decodeErr(f Format, err error) error {
	return &domain.CodecError{Format: f.String(), Op: "decode", Err: err}
}

// keyFromPart builds a key from exactly 32 decoded bytes.
func keyFromPart(b []byte, part Part) (*crypto.KeyMaterial, error) {
	if len(b) != crypto.SeedSize {
		return nil, ErrBadLength
	}
	if part == Secret {
		return crypto.FromSeed(b)
	}
	return crypto.FromPublic(b)
}

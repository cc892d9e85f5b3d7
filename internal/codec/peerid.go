package codec

import (
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
	"github.com/multiformats/go-varint"

	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
)

var (
	b58mhBase multibase.Encoding = multibase.Base58BTC
	b64mhBase multibase.Encoding = multibase.Base64
)

// PeerIDBytes returns the identity multihash of varint(ed25519-pub) || pub.
func PeerIDBytes(pub []byte) ([]byte, error) {
	if len(pub) != crypto.PublicKeySize {
		return nil, ErrBadLength
	}
	buf := varint.ToUvarint(uint64(multicodec.Ed25519Pub))
	buf = append(buf, pub...)
	return multihash.Encode(buf, multihash.IDENTITY)
}

// KeyID returns the canonical identifier of k: its base58btc peer id. The
// identifier format is fixed so one key always has one identity.
func KeyID(k *crypto.KeyMaterial) (domain.KeyID, error) {
	out, err := encodePeerID(b58mhBase, k)
	if err != nil {
		return "", encodeErr(B58MH, err)
	}
	return domain.KeyID(out), nil
}

func encodePeerID(base multibase.Encoding, k *crypto.KeyMaterial) ([]byte, error) {
	mh, err := PeerIDBytes(k.Public())
	if err != nil {
		return nil, err
	}
	s, err := multibase.Encode(base, mh)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func decodePeerID(want multibase.Encoding, data []byte) (*crypto.KeyMaterial, error) {
	s, err := text(data)
	if err != nil {
		return nil, err
	}
	base, raw, err := multibase.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	// base64url is accepted alongside base64 on input.
	if base != want && !(want == multibase.Base64 && base == multibase.Base64url) {
		return nil, fmt.Errorf("%w: multibase %q", ErrBadPrefix, s[:1])
	}
	dm, err := multihash.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dm.Code != multihash.IDENTITY {
		return nil, fmt.Errorf("%w: multihash %s, want identity", ErrBadPrefix, dm.Name)
	}
	code, n, err := varint.FromUvarint(dm.Digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if code != uint64(multicodec.Ed25519Pub) {
		return nil, fmt.Errorf("%w: multicodec 0x%x, want ed25519-pub", ErrBadPrefix, code)
	}
	return keyFromPart(dm.Digest[n:], Public)
}

package codec_test

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-base36"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"

	"dpgpid/internal/codec"
)

func b58(b []byte) string    { return base58.Encode(b) }
func b64(b []byte) string    { return base64.StdEncoding.EncodeToString(b) }
func b64url(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

// peerIDWith builds a b58mh string around an arbitrary payload.
func peerIDWith(payload []byte) string {
	mh, err := multihash.Encode(append([]byte{0xed, 0x01}, payload...), multihash.IDENTITY)
	if err != nil {
		panic(err)
	}
	s, err := multibase.Encode(multibase.Base58BTC, mh)
	if err != nil {
		panic(err)
	}
	return s
}

// checked builds version || payload || checksum without length checks.
func checked(version byte, payload []byte) []byte {
	body := append([]byte{version}, payload...)
	first := sha256.Sum256(body)
	second := sha256.Sum256(first[:])
	return append(body, second[:4]...)
}

func decodeAlphabet(t *testing.T, f codec.Format, s string) []byte {
	t.Helper()
	var (
		b   []byte
		err error
	)
	switch f {
	case codec.B58MF:
		b, err = base58.Decode(s)
	case codec.B36MF:
		b, err = base36.DecodeString(s)
	default:
		t.Fatalf("no alphabet for %s", f)
	}
	if err != nil {
		t.Fatalf("decode %s: %v", f, err)
	}
	return b
}

func encodeAlphabet(f codec.Format, b []byte) string {
	if f == codec.B36MF {
		return base36.EncodeToStringLc(b)
	}
	return base58.Encode(b)
}

func hexPub(b []byte) string { return hex.EncodeToString(b) }

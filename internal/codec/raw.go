package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-base36"

	"dpgpid/internal/crypto"
	"dpgpid/internal/util/memzero"
)

// textEncoding is a byte <-> text alphabet.
type textEncoding struct {
	encode func([]byte) string
	decode func(string) ([]byte, error)
}

var (
	base58Text = textEncoding{encode: base58.Encode, decode: base58.Decode}
	base64Text = textEncoding{
		encode: base64.StdEncoding.EncodeToString,
		decode: base64.StdEncoding.DecodeString,
	}
	base36Text = textEncoding{encode: base36.EncodeToStringLc, decode: base36.DecodeString}
)

// text trims surrounding whitespace and rejects empty or multi-token input.
func text(data []byte) (string, error) {
	s := bytes.TrimSpace(data)
	if len(s) == 0 || bytes.ContainsAny(s, " \t\r\n") {
		return "", ErrMalformed
	}
	return string(s), nil
}

func (e textEncoding) decodeText(data []byte) ([]byte, error) {
	s, err := text(data)
	if err != nil {
		return nil, err
	}
	raw, err := e.decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return raw, nil
}

func encodeRaw(enc textEncoding, k *crypto.KeyMaterial, part Part) ([]byte, error) {
	if part == Public {
		return []byte(enc.encode(k.Public())), nil
	}
	seed, err := k.Seed()
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(seed)
	return []byte(enc.encode(seed)), nil
}

func decodeRaw(enc textEncoding, data []byte, part Part) (*crypto.KeyMaterial, error) {
	raw, err := enc.decodeText(data)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(raw)
	return keyFromPart(raw, part)
}

package codec

import (
	"bufio"
	"bytes"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"dpgpid/internal/crypto"
	"dpgpid/internal/util/memzero"
)

func encodePubSec(k *crypto.KeyMaterial) ([]byte, error) {
	priv, err := k.PrivateKey()
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(priv)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "pub: %s\n", base58.Encode(k.Public()))
	fmt.Fprintf(&buf, "sec: %s\n", base58.Encode(priv))
	return buf.Bytes(), nil
}

func decodePubSec(data []byte) (*crypto.KeyMaterial, error) {
	var pubText, secText string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			if line == "" {
				continue
			}
			return nil, fmt.Errorf("%w: unexpected line", ErrMalformed)
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(key) {
		case "pub":
			pubText = value
		case "sec":
			secText = value
		case "type":
			if !strings.EqualFold(value, "PubSec") {
				return nil, fmt.Errorf("%w: type %q", ErrBadPrefix, value)
			}
		case "version":
		default:
			return nil, fmt.Errorf("%w: unexpected field %q", ErrMalformed, key)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if pubText == "" || secText == "" {
		return nil, fmt.Errorf("%w: missing pub or sec line", ErrMalformed)
	}

	pub, err := base58.Decode(pubText)
	if err != nil || len(pub) != crypto.PublicKeySize {
		return nil, fmt.Errorf("pub: %w", ErrBadLength)
	}
	sec, err := base58.Decode(secText)
	if err != nil {
		return nil, fmt.Errorf("sec: %w", ErrMalformed)
	}
	defer memzero.Zero(sec)

	var k *crypto.KeyMaterial
	switch len(sec) {
	case crypto.SeedSize:
		k, err = crypto.FromSeed(sec)
	case crypto.PrivateKeySize:
		k, err = crypto.FromPrivateKey(sec)
	default:
		return nil, fmt.Errorf("sec: %w", ErrBadLength)
	}
	if err != nil {
		return nil, ErrMismatch
	}
	if subtle.ConstantTimeCompare(k.Public(), pub) != 1 {
		k.Zero()
		return nil, ErrMismatch
	}
	return k, nil
}

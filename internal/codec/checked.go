package codec

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"dpgpid/internal/crypto"
	"dpgpid/internal/util/memzero"
)

// Version bytes of the checksummed formats.
const (
	versionPublic byte = 0x00
	versionSeed   byte = 0x01

	checksumSize = 4
	checkedSize  = 1 + crypto.SeedSize + checksumSize
)

// checksum is the first four bytes of sha256(sha256(b)).
func checksum(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:checksumSize]
}

func encodeChecked(enc textEncoding, k *crypto.KeyMaterial, part Part) ([]byte, error) {
	buf := make([]byte, 0, checkedSize)
	defer memzero.Zero(buf[:cap(buf)])

	if part == Public {
		buf = append(buf, versionPublic)
		buf = append(buf, k.Public()...)
	} else {
		seed, err := k.Seed()
		if err != nil {
			return nil, err
		}
		buf = append(buf, versionSeed)
		buf = append(buf, seed...)
		memzero.Zero(seed)
	}
	buf = append(buf, checksum(buf)...)
	return []byte(enc.encode(buf)), nil
}

func decodeChecked(enc textEncoding, data []byte) (*crypto.KeyMaterial, error) {
	raw, err := enc.decodeText(data)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(raw)

	if len(raw) != checkedSize {
		return nil, ErrBadLength
	}
	body, sum := raw[:checkedSize-checksumSize], raw[checkedSize-checksumSize:]
	if subtle.ConstantTimeCompare(checksum(body), sum) != 1 {
		return nil, ErrChecksum
	}
	switch body[0] {
	case versionPublic:
		return keyFromPart(body[1:], Public)
	case versionSeed:
		return keyFromPart(body[1:], Secret)
	default:
		return nil, fmt.Errorf("%w: version byte 0x%02x", ErrBadPrefix, body[0])
	}
}

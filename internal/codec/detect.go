package codec

import (
	"fmt"

	"go.uber.org/multierr"

	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
)

// DetectionOrder is the fixed precedence used by Detect: structured formats
// first, then prefixed identifiers, then checksummed text, and the bare
// alphabets last since almost any short token decodes under them.
var DetectionOrder = []Format{PEM, JWK, PubSec, B58MH, B64MH, B58MF, B36MF, Base58, Base64}

// Detection is the tagged result of a successful Detect.
type Detection struct {
	Format Format
	Key    *crypto.KeyMaterial
}

// Detect decodes data with the first format in DetectionOrder that accepts
// it. Bare base58/base64 input is read as a 32-byte seed. When nothing
// matches, the error wraps ErrUnrecognized together with every attempt's
// reason.
func Detect(data []byte) (Detection, error) {
	if len(data) > maxInput {
		return Detection{}, &domain.CodecError{Format: "auto", Op: "decode", Err: ErrTooLarge}
	}
	var attempts error
	for _, f := range DetectionOrder {
		k, err := Decode(f, data, Secret)
		if err == nil {
			return Detection{Format: f, Key: k}, nil
		}
		attempts = multierr.Append(attempts, err)
	}
	return Detection{}, &domain.CodecError{
		Format: "auto",
		Op:     "decode",
		Err:    fmt.Errorf("%w (tried %d formats): %v", ErrUnrecognized, len(DetectionOrder), attempts),
	}
}

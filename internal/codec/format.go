package codec

import (
	"strings"

	"dpgpid/internal/domain"
)

// Format is one key encoding.
type Format uint8

const (
	Base58 Format = iota + 1
	Base64
	B58MH
	B64MH
	B36MF
	B58MF
	JWK
	PEM
	PubSec
)

var formatNames = [...]string{
	Base58: "base58",
	Base64: "base64",
	B58MH:  "b58mh",
	B64MH:  "b64mh",
	B36MF:  "b36mf",
	B58MF:  "b58mf",
	JWK:    "jwk",
	PEM:    "pem",
	PubSec: "pubsec",
}

// All returns every format in declaration order.
func All() []Format {
	out := make([]Format, 0, len(formatNames)-1)
	for f := Base58; int(f) < len(formatNames); f++ {
		out = append(out, f)
	}
	return out
}

// String returns the command-line name of the format.
func (f Format) String() string {
	if f == 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat maps a command-line name to a Format.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range All() {
		if formatNames[f] == name {
			return f, nil
		}
	}
	return 0, domain.Usagef("unknown key format %q (want one of %s)", name, strings.Join(Names(), ", "))
}

// Names lists the command-line names of every format.
func Names() []string {
	out := make([]string, 0, len(formatNames)-1)
	for _, f := range All() {
		out = append(out, f.String())
	}
	return out
}

// Part selects which half of a key an encoding carries.
type Part uint8

const (
	Public Part = iota
	Secret
)

func (p Part) String() string {
	if p == Secret {
		return "secret"
	}
	return "public"
}

// Supports reports whether f can represent the given part.
func (f Format) Supports(p Part) bool {
	switch f {
	case B58MH, B64MH:
		return p == Public
	case PubSec:
		return p == Secret
	case Base58, Base64, B36MF, B58MF, JWK, PEM:
		return true
	default:
		return false
	}
}

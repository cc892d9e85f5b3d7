package pgpstore

import (
	"bytes"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"dpgpid/internal/domain"
)

var algorithmNames = map[packet.PublicKeyAlgorithm]string{
	packet.PubKeyAlgoRSA:            "rsa",
	packet.PubKeyAlgoRSAEncryptOnly: "rsa",
	packet.PubKeyAlgoRSASignOnly:    "rsa",
	packet.PubKeyAlgoElGamal:        "elgamal",
	packet.PubKeyAlgoDSA:            "dsa",
	packet.PubKeyAlgoECDH:           "ecdh",
	packet.PubKeyAlgoECDSA:          "ecdsa",
	packet.PubKeyAlgoEdDSA:          "eddsa",
	packet.PubKeyAlgoX25519:         "x25519",
	packet.PubKeyAlgoX448:           "x448",
	packet.PubKeyAlgoEd25519:        "ed25519",
	packet.PubKeyAlgoEd448:          "ed448",
}

// AlgorithmName returns a short lower-case name for the key algorithm,
// including the curve for legacy EdDSA keys.
func AlgorithmName(pk *packet.PublicKey) string {
	name, ok := algorithmNames[pk.PubKeyAlgo]
	if !ok {
		return "unknown"
	}
	if pk.PubKeyAlgo == packet.PubKeyAlgoEdDSA || pk.PubKeyAlgo == packet.PubKeyAlgoECDSA || pk.PubKeyAlgo == packet.PubKeyAlgoECDH {
		if curve, err := pk.Curve(); err == nil {
			name += "/" + strings.ToLower(string(curve))
		}
	}
	return name
}

// IsEd25519 reports whether pk is an ed25519 signing key, either the legacy
// EdDSA form on Curve25519 or the native Ed25519 algorithm.
func IsEd25519(pk *packet.PublicKey) bool {
	switch pk.PubKeyAlgo {
	case packet.PubKeyAlgoEd25519:
		return true
	case packet.PubKeyAlgoEdDSA:
		curve, err := pk.Curve()
		return err == nil && curve == packet.Curve25519
	default:
		return false
	}
}

// FingerprintOf returns the upper-case hex fingerprint of the primary key.
func FingerprintOf(e *openpgp.Entity) domain.Fingerprint {
	return domain.Fingerprint(strings.ToUpper(hex.EncodeToString(e.PrimaryKey.Fingerprint)))
}

// UserIDs returns the entity's user IDs with the primary identity first and
// the rest sorted.
func UserIDs(e *openpgp.Entity) []string {
	var primary string
	if id := e.PrimaryIdentity(); id != nil {
		primary = id.Name
	}
	out := make([]string, 0, len(e.Identities))
	for name := range e.Identities {
		if name != primary {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	if primary != "" {
		out = append([]string{primary}, out...)
	}
	return out
}

// Expiry returns when the primary key expires according to its current
// self-signature, or nil for keys without an expiry.
func Expiry(e *openpgp.Entity) *time.Time {
	sig, _ := e.PrimarySelfSignature()
	if sig == nil || sig.KeyLifetimeSecs == nil || *sig.KeyLifetimeSecs == 0 {
		return nil
	}
	t := e.PrimaryKey.CreationTime.Add(time.Duration(*sig.KeyLifetimeSecs) * time.Second).UTC()
	return &t
}

// LastUpdate returns the newest self-signature time when it is later than
// the key's creation, or nil.
func LastUpdate(e *openpgp.Entity) *time.Time {
	created := e.PrimaryKey.CreationTime
	latest := created
	consider := func(sig *packet.Signature) {
		if sig != nil && sig.CreationTime.After(latest) {
			latest = sig.CreationTime
		}
	}
	consider(e.SelfSignature)
	for _, id := range e.Identities {
		consider(id.SelfSignature)
	}
	for _, sub := range e.Subkeys {
		consider(sub.Sig)
	}
	if !latest.After(created) {
		return nil
	}
	t := latest.UTC()
	return &t
}

// ArmoredPublic serializes the public part of e as an ASCII-armored block.
func ArmoredPublic(e *openpgp.Entity) (string, error) {
	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		return "", err
	}
	if err := e.Serialize(w); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

// Describe summarises e for listing.
func Describe(e *openpgp.Entity) domain.PGPKeyInfo {
	info := domain.PGPKeyInfo{
		Fingerprint: FingerprintOf(e),
		KeyID:       e.PrimaryKey.KeyIdString(),
		Algorithm:   AlgorithmName(e.PrimaryKey),
		Created:     e.PrimaryKey.CreationTime.UTC(),
		Expires:     Expiry(e),
		UserIDs:     UserIDs(e),
		HasSecret:   e.PrivateKey != nil && !e.PrivateKey.Dummy(),
		Ed25519:     IsEd25519(e.PrimaryKey),
	}
	if key, ok := e.SigningKey(time.Now()); ok {
		info.Ed25519 = IsEd25519(key.PublicKey)
		info.HasSecret = key.PrivateKey != nil && !key.PrivateKey.Dummy()
	}
	return info
}

// Match reports whether e is selected by pattern. Hex patterns (optionally
// 0x-prefixed, spaces ignored) match a fingerprint or key id suffix of the
// primary key or any subkey; anything else is a case-insensitive substring
// of a user ID. The empty pattern matches everything.
func Match(e *openpgp.Entity, pattern string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return true
	}
	if h, ok := hexPattern(pattern); ok {
		if hexMatch(e.PrimaryKey, h) {
			return true
		}
		for _, sub := range e.Subkeys {
			if hexMatch(sub.PublicKey, h) {
				return true
			}
		}
	}
	needle := strings.ToLower(pattern)
	for name := range e.Identities {
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}
	return false
}

func hexPattern(p string) (string, bool) {
	p = strings.TrimPrefix(strings.TrimPrefix(p, "0x"), "0X")
	p = strings.ToUpper(strings.ReplaceAll(p, " ", ""))
	if len(p) < 8 {
		return "", false
	}
	if _, err := hex.DecodeString(p); err != nil || len(p)%2 != 0 {
		return "", false
	}
	return p, true
}

func hexMatch(pk *packet.PublicKey, h string) bool {
	fpr := strings.ToUpper(hex.EncodeToString(pk.Fingerprint))
	return strings.HasSuffix(fpr, h) || strings.ToUpper(pk.KeyIdString()) == h
}

// filter keeps the entities matching pattern, preserving order.
func filter(all openpgp.EntityList, pattern string) openpgp.EntityList {
	var out openpgp.EntityList
	for _, e := range all {
		if Match(e, pattern) {
			out = append(out, e)
		}
	}
	return out
}

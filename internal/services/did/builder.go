package did

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/mr-tron/base58"

	"dpgpid/internal/codec"
	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
	types "dpgpid/internal/domain/types"
)

// Build returns the DID document for k. The identifier is always derived from
// the b58mh peer id of the public key.
func Build(k *crypto.KeyMaterial, meta domain.SourceMetadata) (domain.DIDDocument, error) {
	id, err := codec.KeyID(k)
	if err != nil {
		return domain.DIDDocument{}, err
	}
	jwk, err := codec.Encode(codec.JWK, k.PublicOnly(), codec.Public)
	if err != nil {
		return domain.DIDDocument{}, err
	}
	did := id.DID()

	native := domain.VerificationMethod{ID: did}
	if meta.ArmoredPublicKey != "" {
		native.Type = types.VerificationTypeGPG
		native.PublicKeyGpg = meta.ArmoredPublicKey
	} else {
		native.Type = types.VerificationTypeEd25519
		native.PublicKeyBase58 = base58.Encode(k.Public())
	}

	return domain.DIDDocument{
		Context: types.DIDContext,
		ID:      did,
		Created: timestamp(meta.Created),
		Expires: timestamp(meta.Expires),
		Updated: timestamp(meta.Updated),
		PublicKey: []domain.VerificationMethod{
			native,
			{ID: did, Type: types.VerificationTypeJWK, PublicKeyJwk: json.RawMessage(jwk)},
		},
	}, nil
}

// Marshal renders doc as two-space indented JSON with a trailing newline.
func Marshal(doc domain.DIDDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func timestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

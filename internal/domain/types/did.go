package types

import "encoding/json"

// DID document constants.
const (
	DIDContext              = "https://w3id.org/did/v1"
	VerificationTypeGPG     = "GpgVerificationKey2020"
	VerificationTypeJWK     = "JsonWebKey2020"
	VerificationTypeEd25519 = "Ed25519VerificationKey2018"
)

// DIDDocument is the did:ipid document describing one ed25519 key.
type DIDDocument struct {
	Context   string               `json:"@context"`
	ID        string               `json:"id"`
	Created   string               `json:"created,omitempty"`
	Expires   string               `json:"expires,omitempty"`
	Updated   string               `json:"updated,omitempty"`
	PublicKey []VerificationMethod `json:"publicKey"`
}

// VerificationMethod is one entry of DIDDocument.PublicKey. Exactly one of the
// publicKey* fields is set.
type VerificationMethod struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	PublicKeyGpg    string          `json:"publicKeyGpg,omitempty"`
	PublicKeyBase58 string          `json:"publicKeyBase58,omitempty"`
	PublicKeyJwk    json.RawMessage `json:"publicKeyJwk,omitempty"`
}

// Package codec is the registry of key encodings understood by dpgpid.
//
// The set of formats is closed: Format is an enumeration and Encode/Decode
// switch over it, so adding a format means adding a constant, a name and a
// case in each switch (TestEveryFormatHasACodec fails otherwise).
//
//	base58, base64   raw 32-byte public key or seed, no prefix
//	b58mh, b64mh     multibase(multihash(identity, varint(ed25519-pub) || pub))
//	b58mf, b36mf     version || payload || sha256d(version || payload)[:4]
//	jwk              {"kty":"OKP","crv":"Ed25519","x":...,"d":...}
//	pem              PKCS8 PRIVATE KEY or PKIX PUBLIC KEY
//	pubsec           "pub: <b58>" / "sec: <b58 seed||pub>" lines
//
// Decoding is atomic: it returns a complete, consistent KeyMaterial or a
// *domain.CodecError, never a partially filled key. Detect tries the formats
// in a fixed order for inputs of unknown encoding.
package codec

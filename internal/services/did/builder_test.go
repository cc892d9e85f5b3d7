package did_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
	"dpgpid/internal/services/did"
)

const (
	vecDID = "did:ipid:z14V8BbWT5iWMogkWkTuBc8bm51VeGUJZ2t29ah9TpAgUAueV1"
	vecJWK = `{"kty":"OKP","crv":"Ed25519","x":"iojj3XQJ8ZX9UtstPLpdcspnCb8dlBIb83SIAbQPb1w"}`
)

func seedKey(t *testing.T) *crypto.KeyMaterial {
	t.Helper()
	k, err := crypto.FromSeed(bytes.Repeat([]byte{0x01}, crypto.SeedSize))
	require.NoError(t, err)
	t.Cleanup(k.Zero)
	return k
}

func TestBuildPGPDocument(t *testing.T) {
	created := time.Date(2021, 3, 4, 5, 6, 7, 0, time.FixedZone("CET", 3600))
	expires := created.AddDate(2, 0, 0)
	meta := domain.SourceMetadata{
		Source:           domain.SourcePGP,
		Created:          &created,
		Expires:          &expires,
		ArmoredPublicKey: "-----BEGIN PGP PUBLIC KEY BLOCK-----\n...\n",
	}

	doc, err := did.Build(seedKey(t), meta)
	require.NoError(t, err)

	assert.Equal(t, "https://w3id.org/did/v1", doc.Context)
	assert.Equal(t, vecDID, doc.ID)
	assert.Equal(t, "2021-03-04T04:06:07Z", doc.Created)
	assert.Equal(t, "2023-03-04T04:06:07Z", doc.Expires)
	assert.Empty(t, doc.Updated)

	require.Len(t, doc.PublicKey, 2)
	assert.Equal(t, "GpgVerificationKey2020", doc.PublicKey[0].Type)
	assert.Equal(t, meta.ArmoredPublicKey, doc.PublicKey[0].PublicKeyGpg)
	assert.Equal(t, vecDID, doc.PublicKey[0].ID)
	assert.Equal(t, "JsonWebKey2020", doc.PublicKey[1].Type)
	assert.JSONEq(t, vecJWK, string(doc.PublicKey[1].PublicKeyJwk))
	assert.Equal(t, vecDID, doc.PublicKey[1].ID)
}

func TestBuildWithoutArmoredKey(t *testing.T) {
	doc, err := did.Build(seedKey(t), domain.SourceMetadata{Source: domain.SourceMnemonic})
	require.NoError(t, err)
	assert.Equal(t, "Ed25519VerificationKey2018", doc.PublicKey[0].Type)
	assert.Equal(t, "AKnL4NNf3DGWZJS6cPknBuEGnVsV4A4m5tgebLHaRSZ9", doc.PublicKey[0].PublicKeyBase58)
	assert.Empty(t, doc.Created)
	assert.Empty(t, doc.Expires)
}

func TestBuildIsPure(t *testing.T) {
	k := seedKey(t)
	updated := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	meta := domain.SourceMetadata{Updated: &updated}

	a, err := did.Build(k, meta)
	require.NoError(t, err)
	b, err := did.Build(k.PublicOnly(), meta)
	require.NoError(t, err)
	ja, err := did.Marshal(a)
	require.NoError(t, err)
	jb, err := did.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ja, jb)
}

func TestMarshalShape(t *testing.T) {
	updated := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	doc, err := did.Build(seedKey(t), domain.SourceMetadata{Updated: &updated})
	require.NoError(t, err)
	out, err := did.Marshal(doc)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasSuffix(s, "}\n"))
	assert.True(t, strings.HasPrefix(s, "{\n  \"@context\": \"https://w3id.org/did/v1\",\n  \"id\": \""+vecDID+"\",\n"))
	assert.Contains(t, s, `"updated": "2022-01-01T00:00:00Z"`)
	assert.NotContains(t, s, `"created"`)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	keys := generic["publicKey"].([]any)
	require.Len(t, keys, 2)
	jwk := keys[1].(map[string]any)["publicKeyJwk"].(map[string]any)
	assert.Equal(t, "OKP", jwk["kty"])
	assert.NotContains(t, jwk, "d")
}

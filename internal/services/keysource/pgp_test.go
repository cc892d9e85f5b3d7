package keysource_test

import (
	"context"
	"crypto/ed25519"
	"errors"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	pgped25519 "github.com/ProtonMail/go-crypto/openpgp/ed25519"
	"github.com/ProtonMail/go-crypto/openpgp/eddsa"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dpgpid/internal/domain"
	"dpgpid/internal/pgpstore"
	"dpgpid/internal/services/keysource"
)

func TestPGPLoadEdDSA(t *testing.T) {
	e := newEntity(t, "alice", nil)
	want := e.PrimaryKey.PublicKey.(*eddsa.PublicKey).X

	k, meta, err := keysource.NewPGP(memStore{entities: openpgp.EntityList{e}}).Load(context.Background(), domain.Request{Locator: "alice"})
	require.NoError(t, err)
	defer k.Zero()

	require.True(t, k.HasSecret())
	assert.Equal(t, want, []byte(k.Public()))

	assert.Equal(t, domain.SourcePGP, meta.Source)
	require.NotNil(t, meta.Created)
	assert.Equal(t, testCreated.UTC(), *meta.Created)
	assert.Nil(t, meta.Expires)
	assert.Nil(t, meta.Updated)
	assert.Equal(t, pgpstore.FingerprintOf(e), meta.Fingerprint)
	assert.True(t, strings.HasPrefix(meta.ArmoredPublicKey, "-----BEGIN PGP PUBLIC KEY BLOCK-----"))
	assert.Equal(t, []string{"alice <alice@example.org>"}, meta.UserIDs)
}

func TestPGPLoadNativeEd25519(t *testing.T) {
	e := newEntity(t, "neo", &packet.Config{Algorithm: packet.PubKeyAlgoEd25519})
	want := e.PrimaryKey.PublicKey.(*pgped25519.PublicKey).Point

	k, _, err := keysource.NewPGP(memStore{entities: openpgp.EntityList{e}}).Load(context.Background(), domain.Request{Locator: "neo"})
	require.NoError(t, err)
	defer k.Zero()
	assert.Equal(t, want, []byte(k.Public()))
}

func TestPGPSignaturesVerifyUnderPGPKey(t *testing.T) {
	e := newEntity(t, "alice", nil)
	pub := append([]byte(nil), e.PrimaryKey.PublicKey.(*eddsa.PublicKey).X...)

	k, _, err := keysource.NewPGP(memStore{entities: openpgp.EntityList{e}}).Load(context.Background(), domain.Request{})
	require.NoError(t, err)
	defer k.Zero()

	sig, err := k.Sign([]byte("hello"))
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(pub, []byte("hello"), sig))
}

func TestPGPEncryptedKey(t *testing.T) {
	fresh := func() *openpgp.Entity {
		e := newEntity(t, "alice", nil)
		require.NoError(t, e.EncryptPrivateKeys([]byte("correct horse"), nil))
		return e
	}

	secrets := &staticSecrets{pass: "correct horse"}
	k, _, err := keysource.NewPGP(memStore{entities: openpgp.EntityList{fresh()}}).
		Load(context.Background(), domain.Request{Locator: "alice", Secrets: secrets})
	require.NoError(t, err)
	k.Zero()
	require.Len(t, secrets.prompts, 1)
	assert.Contains(t, secrets.prompts[0], "alice")

	_, _, err = keysource.NewPGP(memStore{entities: openpgp.EntityList{fresh()}}).
		Load(context.Background(), domain.Request{Locator: "alice", Secrets: &staticSecrets{pass: "wrong"}})
	assert.ErrorIs(t, err, domain.ErrUnlock)

	_, _, err = keysource.NewPGP(memStore{entities: openpgp.EntityList{fresh()}}).
		Load(context.Background(), domain.Request{Locator: "alice"})
	assert.ErrorIs(t, err, domain.ErrNoSecretProvider)
}

func TestPGPFirstMatchWins(t *testing.T) {
	first := newEntity(t, "alice", nil)
	second := newEntity(t, "alice.work", nil)
	want := append([]byte(nil), first.PrimaryKey.PublicKey.(*eddsa.PublicKey).X...)

	k, meta, err := keysource.NewPGP(memStore{entities: openpgp.EntityList{first, second}}).
		Load(context.Background(), domain.Request{Locator: "alice"})
	require.NoError(t, err)
	defer k.Zero()
	assert.Equal(t, want, []byte(k.Public()))
	assert.Equal(t, pgpstore.FingerprintOf(first), meta.Fingerprint)
}

func TestPGPErrors(t *testing.T) {
	rsaKey := newEntity(t, "rsa", &packet.Config{Algorithm: packet.PubKeyAlgoRSA, RSABits: 1024})

	publicOnly := newEntity(t, "pub", nil)
	publicOnly.PrivateKey = nil
	for i := range publicOnly.Subkeys {
		publicOnly.Subkeys[i].PrivateKey = nil
	}

	store := memStore{entities: openpgp.EntityList{rsaKey, publicOnly}}
	cases := []struct {
		locator string
		want    error
	}{
		{"carol", domain.ErrNoMatch},
		{"rsa", domain.ErrUnsupportedAlgorithm},
		{"pub", domain.ErrNoSigningKey},
	}
	for _, tc := range cases {
		k, _, err := keysource.NewPGP(store).Load(context.Background(), domain.Request{Locator: tc.locator})
		assert.Nil(t, k)
		assert.ErrorIs(t, err, tc.want, tc.locator)
		var kse *domain.KeySourceError
		require.ErrorAs(t, err, &kse)
		assert.Equal(t, domain.SourcePGP, kse.Source)
	}

	_, _, err := keysource.NewPGP(store).Load(context.Background(), domain.Request{Locator: "carol"})
	assert.EqualError(t, err, `pgp source "carol": no matching credential`)

	boom := errors.New("keyring unreadable")
	_, _, err = keysource.NewPGP(memStore{err: boom}).Load(context.Background(), domain.Request{Locator: "x"})
	assert.ErrorIs(t, err, boom)
}

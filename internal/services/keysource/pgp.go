package keysource

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	pgped25519 "github.com/ProtonMail/go-crypto/openpgp/ed25519"
	"github.com/ProtonMail/go-crypto/openpgp/eddsa"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	logging "github.com/ipfs/go-log/v2"

	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
	"dpgpid/internal/pgpstore"
	"dpgpid/internal/util/memzero"
)

var log = logging.Logger("dpgpid/keysource")

// PGP maps the signing key of a stored OpenPGP credential to an ed25519 key.
// Only ed25519 signing keys (legacy EdDSA on Curve25519 or RFC 9580 Ed25519)
// are accepted; their 32-byte secret is the seed.
type PGP struct {
	store domain.PGPStore
	now   func() time.Time
}

var _ domain.KeySource = (*PGP)(nil)

// NewPGP returns a PGP adapter reading credentials from store.
func NewPGP(store domain.PGPStore) *PGP {
	return &PGP{store: store, now: time.Now}
}

func (p *PGP) Kind() domain.SourceKind { return domain.SourcePGP }

// Load uses the first entity matching req.Locator in keystore order.
func (p *PGP) Load(ctx context.Context, req domain.Request) (*crypto.KeyMaterial, domain.SourceMetadata, error) {
	fail := func(err error) (*crypto.KeyMaterial, domain.SourceMetadata, error) {
		return nil, domain.SourceMetadata{}, &domain.KeySourceError{Source: domain.SourcePGP, Locator: req.Locator, Err: err}
	}

	entities, err := p.store.Find(ctx, req.Locator)
	if err != nil {
		return fail(err)
	}
	if len(entities) == 0 {
		return fail(domain.ErrNoMatch)
	}
	e := entities[0]
	if len(entities) > 1 {
		log.Infof("%d keys match %q, using the first (%s)", len(entities), req.Locator, pgpstore.FingerprintOf(e))
	}

	key, ok := e.SigningKey(p.now())
	if !ok || key.PrivateKey == nil || key.PrivateKey.Dummy() {
		return fail(domain.ErrNoSigningKey)
	}
	if !pgpstore.IsEd25519(key.PublicKey) {
		return fail(fmt.Errorf("%w: %s", domain.ErrUnsupportedAlgorithm, pgpstore.AlgorithmName(key.PublicKey)))
	}
	if err := unlock(ctx, req.Secrets, e, key); err != nil {
		return fail(err)
	}

	k, err := keyFromPGP(key)
	if err != nil {
		return fail(err)
	}

	meta, err := pgpMetadata(e)
	if err != nil {
		k.Zero()
		return fail(err)
	}
	log.Debugf("pgp key %s mapped to %s", meta.Fingerprint, k)
	return k, meta, nil
}

func unlock(ctx context.Context, secrets domain.SecretProvider, e *openpgp.Entity, key openpgp.Key) error {
	if !key.PrivateKey.Encrypted {
		return nil
	}
	if secrets == nil {
		return domain.ErrNoSecretProvider
	}
	prompt := fmt.Sprintf("Passphrase for %s (%s): ", primaryName(e), key.PublicKey.KeyIdString())
	pass, err := secrets.Secret(ctx, prompt)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnlock, err)
	}
	defer memzero.Zero(pass)
	if err := key.PrivateKey.Decrypt(pass); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnlock, err)
	}
	return nil
}

// keyFromPGP copies the seed out of the decrypted packet, wipes the packet's
// copy, and checks the derived public key against the packet's public point.
func keyFromPGP(key openpgp.Key) (*crypto.KeyMaterial, error) {
	var seed, point []byte
	switch priv := key.PrivateKey.PrivateKey.(type) {
	case *eddsa.PrivateKey:
		seed = append([]byte(nil), priv.D...)
		memzero.Zero(priv.D)
		point = priv.PublicKey.X
	case *pgped25519.PrivateKey:
		seed = append([]byte(nil), priv.Seed()...)
		memzero.Zero(priv.Key)
		point = priv.PublicKey.Point
	default:
		return nil, fmt.Errorf("%w: %T", domain.ErrUnsupportedAlgorithm, key.PrivateKey.PrivateKey)
	}
	defer memzero.Zero(seed)

	k, err := crypto.FromSeed(seed)
	if err != nil {
		return nil, err
	}
	if pub := publicPoint(key.PublicKey); pub != nil {
		point = pub
	}
	if len(point) == crypto.PublicKeySize && subtle.ConstantTimeCompare(point, k.Public()) != 1 {
		k.Zero()
		return nil, crypto.ErrKeyMismatch
	}
	return k, nil
}

func publicPoint(pk *packet.PublicKey) []byte {
	switch pub := pk.PublicKey.(type) {
	case *eddsa.PublicKey:
		return pub.X
	case *pgped25519.PublicKey:
		return pub.Point
	default:
		return nil
	}
}

func pgpMetadata(e *openpgp.Entity) (domain.SourceMetadata, error) {
	armored, err := pgpstore.ArmoredPublic(e)
	if err != nil {
		return domain.SourceMetadata{}, fmt.Errorf("armor public key: %w", err)
	}
	created := e.PrimaryKey.CreationTime.UTC()
	return domain.SourceMetadata{
		Source:           domain.SourcePGP,
		Created:          &created,
		Expires:          pgpstore.Expiry(e),
		Updated:          pgpstore.LastUpdate(e),
		ArmoredPublicKey: armored,
		Fingerprint:      pgpstore.FingerprintOf(e),
		UserIDs:          pgpstore.UserIDs(e),
	}, nil
}

func primaryName(e *openpgp.Entity) string {
	if id := e.PrimaryIdentity(); id != nil {
		return id.Name
	}
	return string(pgpstore.FingerprintOf(e))
}

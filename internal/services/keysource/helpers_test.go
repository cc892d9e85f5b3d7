package keysource_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/stretchr/testify/require"

	"dpgpid/internal/pgpstore"
)

var testCreated = time.Now().Add(-time.Hour).Truncate(time.Second)

func newEntity(t *testing.T, name string, cfg *packet.Config) *openpgp.Entity {
	t.Helper()
	if cfg == nil {
		cfg = &packet.Config{Algorithm: packet.PubKeyAlgoEdDSA, Curve: packet.Curve25519}
	}
	cfg.Time = func() time.Time { return testCreated }
	e, err := openpgp.NewEntity(name, "", name+"@example.org", cfg)
	require.NoError(t, err)
	return e
}

// memStore serves a fixed entity list with the keyring matching rules.
type memStore struct {
	entities openpgp.EntityList
	err      error
}

func (m memStore) Find(_ context.Context, pattern string) (openpgp.EntityList, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out openpgp.EntityList
	for _, e := range m.entities {
		if pgpstore.Match(e, pattern) {
			out = append(out, e)
		}
	}
	return out, nil
}

// staticSecrets answers every prompt with the same passphrase.
type staticSecrets struct {
	pass    string
	prompts []string
}

func (s *staticSecrets) Secret(_ context.Context, prompt string) ([]byte, error) {
	s.prompts = append(s.prompts, prompt)
	if s.pass == "" {
		return nil, errors.New("no passphrase")
	}
	return []byte(s.pass), nil
}

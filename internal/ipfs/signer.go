package ipfs

import (
	"errors"

	ic "github.com/libp2p/go-libp2p/core/crypto"
	pb "github.com/libp2p/go-libp2p/core/crypto/pb"

	"dpgpid/internal/crypto"
)

var errSecretNotExported = errors.New("secret key is not exported")

// keySigner lets libp2p sign with a KeyMaterial. The expanded private key
// only exists for the duration of each Sign call and is never handed to
// libp2p.
type keySigner struct {
	k   *crypto.KeyMaterial
	pub ic.PubKey
}

var _ ic.PrivKey = keySigner{}

func newKeySigner(k *crypto.KeyMaterial) (keySigner, error) {
	if !k.HasSecret() {
		return keySigner{}, crypto.ErrNoSecret
	}
	pub, err := ic.UnmarshalEd25519PublicKey(k.Public())
	if err != nil {
		return keySigner{}, err
	}
	return keySigner{k: k, pub: pub}, nil
}

func (s keySigner) Sign(msg []byte) ([]byte, error) { return s.k.Sign(msg) }

func (s keySigner) GetPublic() ic.PubKey { return s.pub }

func (s keySigner) Type() pb.KeyType { return pb.KeyType_Ed25519 }

// Raw refuses to export the secret.
func (s keySigner) Raw() ([]byte, error) { return nil, errSecretNotExported }

func (s keySigner) Equals(other ic.Key) bool {
	o, ok := other.(ic.PrivKey)
	return ok && s.pub.Equals(o.GetPublic())
}

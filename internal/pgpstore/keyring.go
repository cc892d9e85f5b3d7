package pgpstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	logging "github.com/ipfs/go-log/v2"

	"dpgpid/internal/domain"
)

var log = logging.Logger("dpgpid/pgpstore")

// Keyring is a PGPStore backed by a keyring file: either binary packets or
// one or more concatenated ASCII-armored key blocks.
type Keyring struct {
	path string
}

var _ domain.PGPStore = (*Keyring)(nil)

// NewKeyring returns a store reading the keyring at path on every lookup.
func NewKeyring(path string) *Keyring { return &Keyring{path: path} }

// Find returns the entities matching pattern in file order.
func (k *Keyring) Find(ctx context.Context, pattern string) (openpgp.EntityList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(k.path)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer f.Close()

	all, err := ReadKeys(f)
	if err != nil {
		return nil, fmt.Errorf("read keyring %s: %w", k.path, err)
	}
	out := filter(all, pattern)
	log.Debugf("keyring %s: %d of %d entities match %q", k.path, len(out), len(all), pattern)
	return out, nil
}

// List describes every entity matching pattern.
func (k *Keyring) List(ctx context.Context, pattern string) ([]domain.PGPKeyInfo, error) {
	entities, err := k.Find(ctx, pattern)
	if err != nil {
		return nil, err
	}
	return describeAll(entities), nil
}

// ReadKeys parses r as a binary keyring or as a sequence of armored blocks.
func ReadKeys(r io.Reader) (openpgp.EntityList, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), armorMarker) {
		return openpgp.ReadKeyRing(bytes.NewReader(data))
	}

	var all openpgp.EntityList
	for _, chunk := range splitArmor(data) {
		block, err := armor.Decode(bytes.NewReader(chunk))
		if err != nil {
			return nil, err
		}
		el, err := openpgp.ReadKeyRing(block.Body)
		if err != nil {
			return nil, err
		}
		all = append(all, el...)
	}
	if len(all) == 0 {
		return nil, errors.New("no armored key blocks found")
	}
	return all, nil
}

var armorMarker = []byte("-----BEGIN ")

// splitArmor cuts data at every armor header line. armor.Decode consumes its
// reader past the end of a block, so each block is decoded on its own.
func splitArmor(data []byte) [][]byte {
	var chunks [][]byte
	for {
		i := bytes.Index(data, armorMarker)
		if i < 0 {
			return chunks
		}
		data = data[i:]
		next := bytes.Index(data[len(armorMarker):], armorMarker)
		if next < 0 {
			return append(chunks, data)
		}
		cut := len(armorMarker) + next
		chunks = append(chunks, data[:cut])
		data = data[cut:]
	}
}

func describeAll(entities openpgp.EntityList) []domain.PGPKeyInfo {
	out := make([]domain.PGPKeyInfo, 0, len(entities))
	for _, e := range entities {
		out = append(out, Describe(e))
	}
	return out
}

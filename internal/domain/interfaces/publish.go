package interfaces

import (
	"context"

	"github.com/ipfs/go-cid"

	"dpgpid/internal/crypto"
	domaintypes "dpgpid/internal/domain/types"
)

// ContentStore adds immutable bytes to a content-addressed store.
type ContentStore interface {
	Put(ctx context.Context, data []byte) (cid.Cid, error)
}

// NameService publishes a mutable pointer to content, signed by key.
type NameService interface {
	Publish(ctx context.Context, target cid.Cid, key *crypto.KeyMaterial, minSequence uint64) (domaintypes.PointerName, uint64, error)
}

// PublicationLog remembers successful publications.
type PublicationLog interface {
	Last(id domaintypes.KeyID) (domaintypes.Publication, bool, error)
	Record(p domaintypes.Publication) error
}

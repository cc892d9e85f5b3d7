package ipfs

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"

	"dpgpid/internal/domain"
)

// ErrCIDMismatch is returned when the node reports a different CID than the
// one computed locally for the same bytes.
var ErrCIDMismatch = errors.New("node returned a different CID")

var _ domain.ContentStore = (*Client)(nil)

// DocumentCID is the CIDv1 (json codec, sha2-256) of a serialized document.
func DocumentCID(data []byte) (cid.Cid, error) {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(uint64(multicodec.Json), mh), nil
}

// Put stores data as a single json block and returns its CID.
func (c *Client) Put(ctx context.Context, data []byte) (cid.Cid, error) {
	want, err := DocumentCID(data)
	if err != nil {
		return cid.Undef, storeErr(fmt.Errorf("%w: %v", errBadResponse, err))
	}

	args := url.Values{}
	args.Set("cid-codec", multicodec.Json.String())
	args.Set("mhtype", multihash.Codes[multihash.SHA2_256])
	args.Set("pin", "true")

	var out struct {
		Key  string `json:"Key"`
		Size int    `json:"Size"`
	}
	if err := c.post(ctx, "block/put", args, data, &out); err != nil {
		return cid.Undef, storeErr(err)
	}

	got, err := cid.Decode(out.Key)
	if err != nil {
		return cid.Undef, storeErr(fmt.Errorf("%w: key %q: %v", errBadResponse, out.Key, err))
	}
	if !got.Equals(want) {
		return cid.Undef, storeErr(fmt.Errorf("%w: got %s, want %s", ErrCIDMismatch, got, want))
	}
	log.Debugf("stored %d bytes as %s", len(data), got)
	return got, nil
}

func storeErr(err error) error {
	kind := domain.Rejected
	if isUnreachable(err) && !errors.Is(err, ErrCIDMismatch) {
		kind = domain.Unreachable
	}
	return &domain.PublishError{Op: domain.OpStore, Kind: kind, Err: err}
}

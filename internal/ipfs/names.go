package ipfs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"

	"github.com/ipfs/boxo/ipns"
	"github.com/ipfs/boxo/path"
	"github.com/ipfs/go-cid"
	ic "github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"

	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
)

var _ domain.NameService = (*Client)(nil)

// NameOf returns the IPNS name owned by an ed25519 public key.
func NameOf(pub []byte) (ipns.Name, error) {
	pk, err := ic.UnmarshalEd25519PublicKey(pub)
	if err != nil {
		return ipns.Name{}, err
	}
	pid, err := peer.IDFromPublicKey(pk)
	if err != nil {
		return ipns.Name{}, err
	}
	return ipns.NameFromPeer(pid), nil
}

// Publish points the key's IPNS name at target. The sequence number is one
// past the record the node currently resolves, and never below minSequence.
func (c *Client) Publish(ctx context.Context, target cid.Cid, k *crypto.KeyMaterial, minSequence uint64) (domain.PointerName, uint64, error) {
	name, err := NameOf(k.Public())
	if err != nil {
		return "", 0, publishErr(fmt.Errorf("%w: %v", errBadResponse, err))
	}

	seq := minSequence
	current, found, err := c.currentSequence(ctx, name)
	if err != nil {
		return "", 0, publishErr(err)
	}
	if found && current+1 > seq {
		seq = current + 1
	}

	record, err := c.signRecord(k, name, target, seq)
	if err != nil {
		return "", 0, &domain.PublishError{Op: domain.OpPublish, Kind: domain.Rejected, Err: err}
	}

	args := url.Values{}
	args.Set("arg", routingKey(name))
	args.Set("allow-offline", "true")
	if err := c.post(ctx, "routing/put", args, record, nil); err != nil {
		return "", 0, publishErr(err)
	}
	log.Infof("published %s -> %s (sequence %d)", name, target, seq)
	return domain.PointerName(name.String()), seq, nil
}

// signRecord builds, signs and self-validates the IPNS record.
func (c *Client) signRecord(k *crypto.KeyMaterial, name ipns.Name, target cid.Cid, seq uint64) ([]byte, error) {
	sk, err := newKeySigner(k)
	if err != nil {
		return nil, err
	}

	eol := c.now().Add(c.RecordLifetime)
	rec, err := ipns.NewRecord(sk, path.FromCid(target), seq, eol, c.RecordTTL)
	if err != nil {
		return nil, fmt.Errorf("sign ipns record: %w", err)
	}
	if err := ipns.ValidateWithName(rec, name); err != nil {
		return nil, fmt.Errorf("validate ipns record: %w", err)
	}
	return ipns.MarshalRecord(rec)
}

// currentSequence asks the node for the record it resolves for name. A
// missing or unusable record is reported as not found.
func (c *Client) currentSequence(ctx context.Context, name ipns.Name) (uint64, bool, error) {
	args := url.Values{}
	args.Set("arg", routingKey(name))

	var ev struct {
		Extra string `json:"Extra"`
		Type  int    `json:"Type"`
	}
	err := c.post(ctx, "routing/get", args, nil, &ev)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.notFound() {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	raw, err := base64.StdEncoding.DecodeString(ev.Extra)
	if err != nil {
		log.Warnf("ignoring undecodable record for %s: %v", name, err)
		return 0, false, nil
	}
	rec, err := ipns.UnmarshalRecord(raw)
	if err == nil {
		err = ipns.ValidateWithName(rec, name)
	}
	if err != nil {
		log.Warnf("ignoring invalid record for %s: %v", name, err)
		return 0, false, nil
	}
	seq, err := rec.Sequence()
	if err != nil {
		return 0, false, nil
	}
	return seq, true, nil
}

func routingKey(name ipns.Name) string {
	return "/ipns/" + name.String()
}

func publishErr(err error) error {
	kind := domain.Rejected
	if isUnreachable(err) {
		kind = domain.Unreachable
	}
	return &domain.PublishError{Op: domain.OpPublish, Kind: kind, Err: err}
}

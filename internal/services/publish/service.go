package publish

import (
	"context"
	"errors"
	"time"

	"github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"

	"dpgpid/internal/codec"
	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
	"dpgpid/internal/services/did"
)

var log = logging.Logger("dpgpid/publish")

// Result describes what a Publish call achieved. CID is set as soon as the
// document is stored, even when naming fails afterwards.
type Result struct {
	KeyID    domain.KeyID
	Document domain.DIDDocument
	CID      cid.Cid
	Name     domain.PointerName
	Sequence uint64
}

// Stored reports whether the document reached the content store.
func (r Result) Stored() bool { return r.CID.Defined() }

// Service runs build, store and publish in order, without retries.
type Service struct {
	store domain.ContentStore
	names domain.NameService
	log   domain.PublicationLog
	now   func() time.Time
}

// New returns a publish service. history may be nil.
func New(store domain.ContentStore, names domain.NameService, history domain.PublicationLog) *Service {
	return &Service{store: store, names: names, log: history, now: time.Now}
}

// Publish stores the DID document for k and publishes it under the key's
// name. When naming fails after a successful store, the returned Result
// still carries the CID together with the error.
func (s *Service) Publish(ctx context.Context, k *crypto.KeyMaterial, meta domain.SourceMetadata) (Result, error) {
	if !k.HasSecret() {
		return Result{}, domain.Usagef("publishing needs the secret key")
	}
	doc, err := did.Build(k, meta)
	if err != nil {
		return Result{}, err
	}
	id, err := codec.KeyID(k)
	if err != nil {
		return Result{}, err
	}
	res := Result{KeyID: id, Document: doc}

	body, err := did.Marshal(doc)
	if err != nil {
		return res, err
	}
	c, err := s.store.Put(ctx, body)
	if err != nil {
		return res, err
	}
	res.CID = c
	log.Infof("stored DID document for %s as %s", id, c)

	floor, err := s.sequenceFloor(id)
	if err != nil {
		log.Warnf("publication log unreadable, not using it: %v", err)
	}
	name, seq, err := s.names.Publish(ctx, c, k, floor)
	if err != nil {
		log.Warnf("document %s stored but not referenced: %v", c, err)
		return res, err
	}
	res.Name = name
	res.Sequence = seq

	if s.log != nil {
		p := domain.Publication{KeyID: id, CID: c, Name: name, Sequence: seq, Published: s.now().UTC()}
		if err := s.log.Record(p); err != nil {
			log.Warnf("could not record publication: %v", err)
		}
	}
	return res, nil
}

// sequenceFloor is one past the last locally recorded sequence.
func (s *Service) sequenceFloor(id domain.KeyID) (uint64, error) {
	if s.log == nil {
		return 0, nil
	}
	last, ok, err := s.log.Last(id)
	if err != nil || !ok {
		return 0, err
	}
	return last.Sequence + 1, nil
}

// IsPartial reports whether err left a stored but unreferenced document.
func IsPartial(res Result, err error) bool {
	var pe *domain.PublishError
	return err != nil && res.Stored() && errors.As(err, &pe) && pe.Op == domain.OpPublish
}

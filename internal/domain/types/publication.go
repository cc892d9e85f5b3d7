package types

import (
	"time"

	"github.com/ipfs/go-cid"
)

// Publication records one successful store + publish round.
type Publication struct {
	KeyID     KeyID       `json:"key_id"`
	CID       cid.Cid     `json:"cid"`
	Name      PointerName `json:"name"`
	Sequence  uint64      `json:"sequence"`
	Published time.Time   `json:"published"`
}

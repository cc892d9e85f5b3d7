package app

import (
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"

	"dpgpid/internal/domain"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
	ExitPartial = 3
)

// PartialPublishError marks a document that was stored but could not be
// referenced by its name.
type PartialPublishError struct {
	CID cid.Cid
	Err error
}

func (e *PartialPublishError) Error() string {
	return fmt.Sprintf("stored as %s but unreferenced: %v", e.CID, e.Err)
}

func (e *PartialPublishError) Unwrap() error { return e.Err }

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var partial *PartialPublishError
	switch {
	case errors.As(err, &partial):
		return ExitPartial
	case domain.IsUsage(err):
		return ExitUsage
	default:
		return ExitFailure
	}
}

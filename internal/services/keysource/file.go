package keysource

import (
	"context"
	"fmt"
	"os"

	"dpgpid/internal/codec"
	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
	"dpgpid/internal/util/memzero"
)

// File decodes a key file by autodetection. When req.Data is empty the file
// at req.Locator is read.
type File struct{}

var _ domain.KeySource = File{}

// NewFile returns the raw-file adapter.
func NewFile() File { return File{} }

func (File) Kind() domain.SourceKind { return domain.SourceFile }

func (File) Load(ctx context.Context, req domain.Request) (*crypto.KeyMaterial, domain.SourceMetadata, error) {
	fail := func(err error) (*crypto.KeyMaterial, domain.SourceMetadata, error) {
		return nil, domain.SourceMetadata{}, &domain.KeySourceError{Source: domain.SourceFile, Locator: req.Locator, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	data := req.Data
	if len(data) == 0 {
		if req.Locator == "" {
			return nil, domain.SourceMetadata{}, domain.Usagef("no key file given")
		}
		b, err := os.ReadFile(req.Locator)
		if err != nil {
			return fail(fmt.Errorf("read key file: %w", err))
		}
		defer memzero.Zero(b)
		data = b
	}

	det, err := codec.Detect(data)
	if err != nil {
		return fail(err)
	}
	log.Debugf("key file %s detected as %s", req.Locator, det.Format)
	return det.Key, domain.SourceMetadata{Source: domain.SourceFile, Format: det.Format.String()}, nil
}

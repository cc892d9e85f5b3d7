package commands

import (
	"context"

	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
)

// loadPGP loads the key matching pattern. The caller zeroes the key.
func loadPGP(ctx context.Context, pattern string) (*crypto.KeyMaterial, domain.SourceMetadata, error) {
	return wire.Load(ctx, domain.SourcePGP, domain.Request{Locator: pattern})
}

package interfaces

import (
	"context"

	"github.com/ProtonMail/go-crypto/openpgp"

	"dpgpid/internal/crypto"
	domaintypes "dpgpid/internal/domain/types"
)

// SecretProvider supplies unlock secrets (passphrases) on demand. The caller
// owns the returned buffer and must wipe it.
type SecretProvider interface {
	Secret(ctx context.Context, prompt string) ([]byte, error)
}

// Request is the immutable input of a key source invocation.
type Request struct {
	// Locator is the PGP pattern, the file path, or the credential username.
	Locator string
	// Passphrase is the mnemonic or credential password for mnemonic sources.
	Passphrase []byte
	// Data holds raw file bytes for file sources.
	Data []byte
	// Secrets unlocks protected credentials. It may be nil.
	Secrets SecretProvider
}

// KeySource produces exactly one KeyMaterial from a credential.
type KeySource interface {
	Kind() domaintypes.SourceKind
	Load(ctx context.Context, req Request) (*crypto.KeyMaterial, domaintypes.SourceMetadata, error)
}

// PGPStore enumerates stored PGP credentials in a stable order.
type PGPStore interface {
	// Find returns every entity matching pattern, in keystore order. An empty
	// pattern matches everything.
	Find(ctx context.Context, pattern string) (openpgp.EntityList, error)
}

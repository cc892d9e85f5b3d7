package keysource

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/scrypt"

	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
	"dpgpid/internal/util/memzero"
)

// Scrypt parameters shared by both derivations.
const (
	scryptN = 4096
	scryptR = 16
	scryptP = 1
)

// dubpSaltPrefix is hashed together with the mnemonic to form the salt.
const dubpSaltPrefix = "dubp"

// Mnemonic derives a seed from memorised credentials.
//
// With a locator (username), the seed is scrypt(password, salt=username).
// Without one, the passphrase must be a BIP39 mnemonic and the seed is
// scrypt(mnemonic, salt=sha256("dubp" || mnemonic)).
type Mnemonic struct{}

var _ domain.KeySource = Mnemonic{}

// NewMnemonic returns the mnemonic adapter.
func NewMnemonic() Mnemonic { return Mnemonic{} }

func (Mnemonic) Kind() domain.SourceKind { return domain.SourceMnemonic }

// Load prompts through req.Secrets when req.Passphrase is empty.
func (m Mnemonic) Load(ctx context.Context, req domain.Request) (*crypto.KeyMaterial, domain.SourceMetadata, error) {
	fail := func(err error) (*crypto.KeyMaterial, domain.SourceMetadata, error) {
		return nil, domain.SourceMetadata{}, &domain.KeySourceError{Source: domain.SourceMnemonic, Locator: req.Locator, Err: err}
	}

	pass, err := passphrase(ctx, req)
	if err != nil {
		return fail(err)
	}
	defer memzero.Zero(pass)

	var seed []byte
	if req.Locator != "" {
		seed, err = FromCredentials(req.Locator, pass)
	} else {
		seed, err = FromMnemonic(pass)
	}
	if err != nil {
		return fail(err)
	}
	defer memzero.Zero(seed)

	k, err := crypto.FromSeed(seed)
	if err != nil {
		return fail(err)
	}
	return k, domain.SourceMetadata{Source: domain.SourceMnemonic}, nil
}

func passphrase(ctx context.Context, req domain.Request) ([]byte, error) {
	if len(req.Passphrase) > 0 {
		return append([]byte(nil), req.Passphrase...), nil
	}
	if req.Secrets == nil {
		return nil, domain.ErrNoSecretProvider
	}
	prompt := "Mnemonic: "
	if req.Locator != "" {
		prompt = fmt.Sprintf("Password for %s: ", req.Locator)
	}
	pass, err := req.Secrets.Secret(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnlock, err)
	}
	if len(pass) == 0 {
		return nil, domain.ErrUnlock
	}
	return pass, nil
}

// FromCredentials returns scrypt(password, username). The caller wipes the
// result.
func FromCredentials(username string, password []byte) ([]byte, error) {
	return scrypt.Key(password, []byte(username), scryptN, scryptR, scryptP, crypto.SeedSize)
}

// FromMnemonic validates and normalises a BIP39 sentence, then derives the
// seed with the DUBP salt. The caller wipes the result.
func FromMnemonic(sentence []byte) ([]byte, error) {
	words := strings.Fields(strings.ToLower(string(sentence)))
	normalized := strings.Join(words, " ")
	if !bip39.IsMnemonicValid(normalized) {
		return nil, domain.ErrInvalidMnemonic
	}
	salt := sha256.Sum256([]byte(dubpSaltPrefix + normalized))
	return scrypt.Key([]byte(normalized), salt[:], scryptN, scryptR, scryptP, crypto.SeedSize)
}

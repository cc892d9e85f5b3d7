package app

import (
	"context"
	"path/filepath"

	"dpgpid/internal/crypto"
	"dpgpid/internal/domain"
	"dpgpid/internal/ipfs"
	"dpgpid/internal/pgpstore"
	"dpgpid/internal/services/keysource"
	"dpgpid/internal/services/publish"
	"dpgpid/internal/store"
)

// KeyLister enumerates stored PGP keys for display.
type KeyLister interface {
	List(ctx context.Context, pattern string) ([]domain.PGPKeyInfo, error)
}

// PGPBackend is a PGP store that can also list its keys.
type PGPBackend interface {
	domain.PGPStore
	KeyLister
}

// Wire bundles the key sources, clients and services for the CLIs.
type Wire struct {
	Config  Config
	Secrets domain.SecretProvider

	PGPStore PGPBackend
	PGP      *keysource.PGP
	Mnemonic keysource.Mnemonic
	File     keysource.File

	IPFS         *ipfs.Client
	Publications *store.PublicationLog
	Publisher    *publish.Service
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	// A keyring file replaces the gpg agent entirely.
	var backend PGPBackend
	if cfg.Keyring != "" {
		backend = pgpstore.NewKeyring(cfg.Keyring)
		log.Debugw("using keyring file", "path", cfg.Keyring)
	} else {
		backend = pgpstore.NewGPG(cfg.GPG, cfg.GPGHome)
		log.Debugw("using gpg", "binary", cfg.GPG)
	}

	client := ipfs.New(cfg.API, cfg.Timeout)

	stateDir := cfg.StateDir
	if stateDir == "" {
		stateDir = filepath.Join(".", ".dpgpid")
	}
	history := store.NewPublicationLog(stateDir)

	return &Wire{
		Config:       cfg,
		Secrets:      SecretsFor(cfg.Passphrase),
		PGPStore:     backend,
		PGP:          keysource.NewPGP(backend),
		Mnemonic:     keysource.NewMnemonic(),
		File:         keysource.NewFile(),
		IPFS:         client,
		Publications: history,
		Publisher:    publish.New(client, client, history),
	}, nil
}

// Close wipes a passphrase held by the Wire.
func (w *Wire) Close() {
	if s, ok := w.Secrets.(*StaticSecret); ok {
		s.Zero()
	}
}

// Load runs the key source for kind. The caller zeroes the key.
func (w *Wire) Load(ctx context.Context, kind domain.SourceKind, req domain.Request) (*crypto.KeyMaterial, domain.SourceMetadata, error) {
	src := w.Source(kind)
	if req.Secrets == nil {
		req.Secrets = w.Secrets
	}
	k, meta, err := src.Load(ctx, req)
	if err != nil {
		return nil, domain.SourceMetadata{}, err
	}
	log.Debugw("key loaded", "source", src.Kind(), "key", k)
	return k, meta, nil
}

// Source returns the key source for kind.
func (w *Wire) Source(kind domain.SourceKind) domain.KeySource {
	switch kind {
	case domain.SourceMnemonic:
		return w.Mnemonic
	case domain.SourceFile:
		return w.File
	default:
		return w.PGP
	}
}

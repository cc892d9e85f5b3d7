package domain

import (
	interfaces "dpgpid/internal/domain/interfaces"
	types "dpgpid/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	KeyID              = types.KeyID
	PointerName        = types.PointerName
	Fingerprint        = types.Fingerprint
	SourceKind         = types.SourceKind
	SourceMetadata     = types.SourceMetadata
	PGPKeyInfo         = types.PGPKeyInfo
	DIDDocument        = types.DIDDocument
	VerificationMethod = types.VerificationMethod
	Publication        = types.Publication
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SecretProvider = interfaces.SecretProvider
	Request        = interfaces.Request
	KeySource      = interfaces.KeySource
	PGPStore       = interfaces.PGPStore
	ContentStore   = interfaces.ContentStore
	NameService    = interfaces.NameService
	PublicationLog = interfaces.PublicationLog
)

// Re-exported constants.
const (
	SourcePGP      = types.SourcePGP
	SourceMnemonic = types.SourceMnemonic
	SourceFile     = types.SourceFile

	DIDMethodPrefix = types.DIDMethodPrefix
)

// Package pgpstore reads OpenPGP credentials from a keyring file or from the
// local gpg installation.
//
// Both stores return entities in keystore order so that the first match for
// a pattern is stable between runs.
package pgpstore

// Package commands defines the keygen CLI.
//
// keygen derives one ed25519 key from credentials, a BIP39 mnemonic, an
// encoded key file or a PGP key, then prints it or writes it to a file.
package commands

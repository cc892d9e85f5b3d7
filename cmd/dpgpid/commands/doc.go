// Package commands defines the dpgpid CLI and wires dependencies for subcommands.
//
// Commands
//
//   - list     List PGP keys in the keystore
//   - show     Print a PGP key as an ed25519 key and its DID
//   - publish  Store the DID document and publish it under the key's IPNS name
//   - export   Write the ed25519 secret key to a file
//   - history  Show past publications of a DID from the local log
//
// # Implementation
//
// The root command loads the INI configuration, applies flag overrides and
// builds the dependency graph (PGP store, key sources, kubo client, publish
// service) before any subcommand runs.
package commands

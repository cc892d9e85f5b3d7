// Package app wires application dependencies for the dpgpid and keygen CLIs.
//
// It loads the INI configuration, picks a passphrase source, and builds the
// PGP store, key sources, kubo client and publish service from Config,
// exposing them via the Wire struct for commands to use.
package app

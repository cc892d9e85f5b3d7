// Package ipfs talks to a kubo node over its HTTP RPC API.
//
// The node stores DID documents as blocks and carries IPNS records. Records
// are signed in this process; only the signed record is sent to the node.
package ipfs

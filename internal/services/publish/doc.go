// Package publish stores a key's DID document and points the key's IPNS name
// at it.
package publish

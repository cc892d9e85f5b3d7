// Package store provides file-based persistence for dpgpid.
//
// It writes exported key files and keeps the publication log. Every write
// goes through a temp file in the target directory followed by a rename, so
// readers never observe a half-written file. Files holding secret material
// are created owner-only (0600).
package store

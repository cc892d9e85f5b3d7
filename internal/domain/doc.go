// Package domain defines core data models, contracts and the error taxonomy
// shared across dpgpid. It contains plain types (types/), interfaces
// (interfaces/) and typed errors only; no I/O.
package domain

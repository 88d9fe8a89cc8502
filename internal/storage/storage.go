// Package storage defines the Storage interface, the key/value contract
// the roster is persisted through.
//
// WHY SO SMALL?
// ─────────────
// The whole roster lives in ONE value: a JSON array stored under a single
// key. The store never looks inside the value, so it only needs to read
// and overwrite strings by key:
//
//   - No partial updates: every mutation rewrites the full array.
//   - No transactions and no schema versioning.
//
// Depending on this interface instead of a concrete backend means:
//
//   - Production uses the SQLite-backed store (storage/sqlite).
//   - Tests and demos use the in-memory store (storage/memory).
//
// This is the Dependency Inversion Principle in practice.
package storage

import "context"

// DefaultKey is the key the roster is stored under.
const DefaultKey = "students"

// Storage is the persistence contract.
// Any concrete type that implements both methods satisfies it implicitly.
type Storage interface {
	// Get returns the value stored under key.
	// ok is false (with a nil error) when the key was never written;
	// callers treat that as "empty", not as a failure.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
}

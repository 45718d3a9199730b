// Package store implements durable whole-collection persistence for the
// patient record set. The entire collection lives under one key of a
// byte-valued KV store; every mutation is a read-all, transform, write-all
// cycle. There is exactly one writer, so no locking discipline exists here.
package store

import "context"

// DefaultPatientsKey is the fixed key the patient collection is stored
// under, kept identical to the legacy browser storage key so old backups
// restore cleanly.
const DefaultPatientsKey = "LZRYEK_EPILEPSY_PATIENTS"

// KV is the persistence boundary: a byte store addressed by string keys.
// Get reports found=false for an absent key rather than an error.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Package service holds the business rules of the follow-up system: how a
// form submission becomes a patient record or a visit, how reminders are
// derived, and how imported record sets merge into the store.
package service

import "errors"

// ErrValidation marks recoverable input failures: missing required fields,
// malformed import payloads, out-of-range scores. Handlers map it to a 400
// response; everything else is a server error.
var ErrValidation = errors.New("validation failed")

// ErrNotFound marks lookups of a patient that does not exist. Updates and
// deletes on unknown IDs stay silent no-ops at the store level; this error
// only surfaces where the caller asked for a specific record.
var ErrNotFound = errors.New("not found")

package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is not in a state that permits the
// requested operation.
var ErrConflict = errors.New("conflict with current state")

// ErrTransferFailed indicates an execution failure while applying a transfer.
// The underlying cause is logged, never surfaced to the end user.
var ErrTransferFailed = errors.New("transfer failed")

// ErrPartiallyApplied indicates a transfer left the ledger in a partially
// applied state. The pgsql store applies transfers in a single database
// transaction and never returns this; it exists for stores that cannot
// guarantee multi-row atomicity, so operators can reconcile.
var ErrPartiallyApplied = errors.New("transfer partially applied")

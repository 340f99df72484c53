package errors

import "errors"

// ErrOptimisticLock the row was modified by another operation; the
// caller should re-read and retry.
var ErrOptimisticLock = errors.New("record was modified by another operation, refresh and retry")

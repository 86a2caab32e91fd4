package errors

import "errors"

// ErrOptimisticLock the record was modified by another operation
var ErrOptimisticLock = errors.New("record was modified by another operation, reload and retry")

// ErrLockNotAcquired another holder owns the lock
var ErrLockNotAcquired = errors.New("lock is held by another operation")

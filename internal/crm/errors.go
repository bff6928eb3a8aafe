package crm

import (
	"fmt"
	"strings"
)

// ValidationError reports a single rule violation, including reference
// lookups that found nothing. API callers see the reason verbatim.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// AggregateValidationError carries the per-item failures of a bulk
// operation. It is always paired with a full rollback of the batch.
type AggregateValidationError struct {
	Errors []string
}

func (e AggregateValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// StorageError wraps a persistence failure that aborted an operation.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error {
	return e.Err
}

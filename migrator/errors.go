package migrator

import (
	"errors"
	"fmt"
)

// Kind classifies fatal migration failures. Every kind terminates the run
// except IntegrityMismatch, which the operator may override at the prompt.
type Kind string

const (
	KindPermissionDenied         Kind = "PermissionDenied"
	KindDeviceNotFound           Kind = "DeviceNotFound"
	KindConcurrentRunDetected    Kind = "ConcurrentRunDetected"
	KindPartitionOrFormatFailure Kind = "PartitionOrFormatFailure"
	KindCopyFailure              Kind = "CopyFailure"
	KindIntegrityMismatch        Kind = "IntegrityMismatch"
	KindMountSwapFailure         Kind = "MountSwapFailure"
	KindUUIDResolutionFailure    Kind = "UUIDResolutionFailure"
	KindConfigUpdateFailure      Kind = "ConfigUpdateFailure"
)

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the classification of err, or "" for unclassified errors.
func KindOf(err error) Kind {
	var migrationErr *Error
	if errors.As(err, &migrationErr) {
		return migrationErr.Kind
	}
	return ""
}

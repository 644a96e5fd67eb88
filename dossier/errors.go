package dossier

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an operation failure so callers can decide whether to
// fix their input, retry after a state change, or give up.
type ErrorKind int

const (
	// KindValidation means the input shape or bounds were wrong. The caller
	// must correct the input; retrying unchanged will fail again.
	KindValidation ErrorKind = iota

	// KindStateConflict means the operation is inapplicable to the dossier's
	// current lifecycle state (already paused, released, disabled, ...).
	// These are routine and may succeed later after another transition.
	KindStateConflict

	// KindNotFound means the target dossier record does not exist in the
	// caller's namespace. Non-owner access surfaces as this kind, since
	// owner scoping is part of the lookup key.
	KindNotFound

	// KindAuthorization means the caller is not permitted to perform the
	// operation (e.g. not a guardian of the dossier).
	KindAuthorization
)

// ErrorCode identifies the exact failure.
type ErrorCode string

const (
	CodeInvalidInterval        ErrorCode = "INVALID_INTERVAL"
	CodeCapacityExceeded       ErrorCode = "CAPACITY_EXCEEDED"
	CodeInvalidRecipients      ErrorCode = "INVALID_RECIPIENTS"
	CodeInvalidFiles           ErrorCode = "INVALID_FILES"
	CodeEmptyHash              ErrorCode = "EMPTY_HASH"
	CodeMaxFilesReached        ErrorCode = "MAX_FILES_REACHED"
	CodeMaxRecipientsReached   ErrorCode = "MAX_RECIPIENTS_REACHED"
	CodeDuplicateRecipient     ErrorCode = "DUPLICATE_RECIPIENT"
	CodeRecipientNotFound      ErrorCode = "RECIPIENT_NOT_FOUND"
	CodeCannotRemoveLast       ErrorCode = "CANNOT_REMOVE_LAST_RECIPIENT"
	CodeInvalidAddress         ErrorCode = "INVALID_ADDRESS"
	CodeTooManyGuardians       ErrorCode = "TOO_MANY_GUARDIANS"
	CodeMaxGuardiansReached    ErrorCode = "MAX_GUARDIANS_REACHED"
	CodeInvalidThreshold       ErrorCode = "INVALID_THRESHOLD"
	CodeInvalidGuardianAddress ErrorCode = "INVALID_GUARDIAN_ADDRESS"
	CodeDuplicateGuardian      ErrorCode = "DUPLICATE_GUARDIAN"
	CodeGuardianNotFound       ErrorCode = "GUARDIAN_NOT_FOUND"
	CodeOwnerCannotBeGuardian  ErrorCode = "OWNER_CANNOT_BE_GUARDIAN"
	CodeNotFound               ErrorCode = "NOT_FOUND"
	CodeNoDossiers             ErrorCode = "NO_DOSSIERS"
	CodeNothingToDo            ErrorCode = "NOTHING_TO_DO"
	CodePaused                 ErrorCode = "PAUSED"
	CodeAlreadyPaused          ErrorCode = "ALREADY_PAUSED"
	CodeAlreadyActive          ErrorCode = "ALREADY_ACTIVE"
	CodeAlreadyReleased        ErrorCode = "ALREADY_RELEASED"
	CodePermanentlyDisabled    ErrorCode = "PERMANENTLY_DISABLED"
	CodeAlreadyDisabled        ErrorCode = "ALREADY_DISABLED"
	CodeMustBeActiveToEdit     ErrorCode = "MUST_BE_ACTIVE_TO_EDIT"
	CodeAlreadyConfirmed       ErrorCode = "ALREADY_CONFIRMED"
	CodeNotConfirmed           ErrorCode = "NOT_CONFIRMED"
	CodeNotAGuardian           ErrorCode = "NOT_A_GUARDIAN"
)

// Error is a typed operation failure. All failures are synchronous and
// non-retryable by the core itself; on any failure no partial state change
// is observable.
type Error struct {
	Code    ErrorCode
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newErr(code ErrorCode, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Code: code, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrNotFound builds the existence error for a missing (owner, id) slot.
func ErrNotFound(owner string, id uint64) *Error {
	return newErr(CodeNotFound, KindNotFound, "dossier %d not found for owner %s", id, owner)
}

// CodeOf returns the error code when err is (or wraps) a dossier Error.
func CodeOf(err error) (ErrorCode, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}

// KindOf returns the error kind when err is (or wraps) a dossier Error.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindValidation
}

// IsStateConflict reports whether err is a lifecycle-state conflict.
func IsStateConflict(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindStateConflict
}

// IsNotFound reports whether err is an existence failure.
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

// IsAuthorization reports whether err is an authorization failure.
func IsAuthorization(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindAuthorization
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

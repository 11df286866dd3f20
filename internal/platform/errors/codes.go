// Package errors provides structured error handling for the submission
// pipeline. Every failure a caller may need to branch on carries one of
// the codes below and can be matched with errors.Is.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeValidationFailed indicates the call target, action, or spool
	// directory failed validation. Raised before any filesystem write.
	CodeValidationFailed Code = "VALIDATION_FAILED"

	// CodeAccountUnknown indicates the owning user does not resolve to
	// a system account.
	CodeAccountUnknown Code = "ACCOUNT_UNKNOWN"

	// CodeOwnershipChange indicates the account resolved but changing
	// ownership of the temporary file failed.
	CodeOwnershipChange Code = "OWNERSHIP_CHANGE_FAILED"

	// CodeSpoolPlacement indicates the final move into the spool
	// directory failed.
	CodeSpoolPlacement Code = "SPOOL_PLACEMENT_FAILED"

	// CodeNoAction indicates a submission was attempted without an
	// action to realize.
	CodeNoAction Code = "NO_ACTION"
)

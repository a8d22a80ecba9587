package sshuser

// UserError is the account-admin error taxonomy. Values serialize as their
// bare name over the wire, e.g. {"Err": "UserAlreadyExists"}.
type UserError string

const (
	ErrUserAlreadyExists  UserError = "UserAlreadyExists"
	ErrInvalidUserOrGroup UserError = "InvalidUserOrGroup"
	ErrInvalidShell       UserError = "InvalidShell"
	ErrInvalidExpDate     UserError = "InvalidExpDate"
	ErrInvalidPassHash    UserError = "InvalidPasswordHash"
	ErrPermissionDenied   UserError = "PermissionDenied"
	ErrUnexpected         UserError = "UnexpectedError"
	ErrProcessTerminated  UserError = "ProcessTerminated"
	ErrCommandNotFound    UserError = "CommandNotFound"
	ErrInvalidTraceFile   UserError = "InvalidTraceFile"

	// Reserved; no operation triggers it yet.
	ErrCannotDeleteYourSelf UserError = "CannotDeleteYourSelf"
)

func (e UserError) Error() string { return string(e) }

package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// InvalidArgument is returned when an argument (or a record derived from one) fails validation.
	InvalidArgument = ErrorKind("Invalid Argument")

	// Unsupported is returned when a feature or configuration value is not supported.
	Unsupported = ErrorKind("Unsupported")

	// ConflictSetting is returned when persisted indexer state conflicts with the running binary.
	ConflictSetting = ErrorKind("Conflict Setting")

	// InternalError is returned for unexpected internal states.
	InternalError = ErrorKind("Internal Error")

	// SomethingWentWrong is a generic error for unexpected failures.
	SomethingWentWrong = ErrorKind("Something Went Wrong")

	// Timeout is returned when an operation does not finish in time.
	Timeout = ErrorKind("Timeout")

	// Unrecoverable is returned when the indexer must halt and wait for operator intervention.
	Unrecoverable = ErrorKind("Unrecoverable")

	OverflowUint64  = ErrorKind("overflow uint64")
	OverflowUint128 = ErrorKind("overflow uint128")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

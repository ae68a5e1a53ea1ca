package errors

var (
	ErrUnknown            = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument    = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrThresholdExceeded  = New(ERR_THRESHOLD_EXCEEDED, "threshold exceeded")
	ErrNotFound           = New(ERR_NOT_FOUND, "not found")
	ErrProcessing         = New(ERR_PROCESSING, "error processing")
	ErrConfiguration      = New(ERR_CONFIGURATION, "configuration error")
	ErrContext            = New(ERR_CONTEXT, "context error")
	ErrContextCanceled    = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrError              = New(ERR_ERROR, "generic error")
	ErrServiceUnavailable = New(ERR_SERVICE_UNAVAILABLE, "service unavailable")
	ErrServiceError       = New(ERR_SERVICE_ERROR, "service error")
	ErrStorageUnavailable = New(ERR_STORAGE_UNAVAILABLE, "storage unavailable")
	ErrStorageError       = New(ERR_STORAGE_ERROR, "storage error")
	ErrSpent              = New(ERR_SPENT, "state already spent")
	ErrInsufficientFunds  = New(ERR_INSUFFICIENT_FUNDS, "insufficient funds")
	ErrLockContention     = New(ERR_LOCK_CONTENTION, "lock contention")
	ErrUnsupportedBackend = New(ERR_UNSUPPORTED_BACKEND, "unsupported backend")
	ErrInvalidCriteria    = New(ERR_INVALID_CRITERIA, "invalid selection criteria")
)

// errors initialization functions

func NewUnknownError(message string, params ...interface{}) error {
	return New(ERR_UNKNOWN, message, params...)
}
func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewThresholdExceededError(message string, params ...interface{}) error {
	return New(ERR_THRESHOLD_EXCEEDED, message, params...)
}
func NewNotFoundError(message string, params ...interface{}) error {
	return New(ERR_NOT_FOUND, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewContextError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT, message, params...)
}
func NewContextCanceledError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT_CANCELED, message, params...)
}
func NewError(message string, params ...interface{}) error {
	return New(ERR_ERROR, message, params...)
}
func NewServiceUnavailableError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_UNAVAILABLE, message, params...)
}
func NewServiceError(message string, params ...interface{}) error {
	return New(ERR_SERVICE_ERROR, message, params...)
}
func NewStorageUnavailableError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_UNAVAILABLE, message, params...)
}
func NewStorageError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_ERROR, message, params...)
}
func NewSpentError(message string, params ...interface{}) error {
	return New(ERR_SPENT, message, params...)
}

// NewInsufficientFundsError records the requested target and the quantity that was
// actually available in the error data.
func NewInsufficientFundsError(target, available int64, message string, params ...interface{}) error {
	e := New(ERR_INSUFFICIENT_FUNDS, message, params...)
	e.SetData("target", target)
	e.SetData("available", available)

	return e
}
func NewLockContentionError(message string, params ...interface{}) error {
	return New(ERR_LOCK_CONTENTION, message, params...)
}
func NewUnsupportedBackendError(message string, params ...interface{}) error {
	return New(ERR_UNSUPPORTED_BACKEND, message, params...)
}
func NewInvalidCriteriaError(message string, params ...interface{}) error {
	return New(ERR_INVALID_CRITERIA, message, params...)
}

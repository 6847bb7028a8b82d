package errors

var (
	ErrMissingAmount = &DomainError{
		Code:    "MISSING_AMOUNT",
		Message: "body is missing a payment amount",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "payment amount is invalid",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient funds",
	}
	ErrJobNotFound = &DomainError{
		Code:    "JOB_NOT_FOUND",
		Message: "job does not exist for this profile",
	}
	ErrClientMismatch = &DomainError{
		Code:    "CLIENT_MISMATCH",
		Message: "client id mismatch",
	}
	ErrProfileRequired = &DomainError{
		Code:    "PROFILE_REQUIRED",
		Message: "caller profile could not be identified",
	}
	ErrInternal = &DomainError{
		Code:    "INTERNAL",
		Message: "payment processing failed",
	}
)

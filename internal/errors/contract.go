package errors

var (
	ErrInvalidContractID = &DomainError{
		Code:    "INVALID_CONTRACT_ID",
		Message: "contract id in path is invalid",
	}
	ErrContractNotFound = &DomainError{
		Code:    "CONTRACT_NOT_FOUND",
		Message: "contract does not exist for this profile",
	}
)

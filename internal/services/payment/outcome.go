package payment

// Outcome is the closed set of results a payment operation can report.
// Callers must handle every member: ContractorDoesNotExist is declared but not
// produced yet.
type Outcome string

const (
	OutcomeSuccess                    Outcome = "SUCCESS"
	OutcomeClientDoesNotExist         Outcome = "CLIENT_DOES_NOT_EXIST"
	OutcomeContractorDoesNotExist     Outcome = "CONTRACTOR_DOES_NOT_EXIST"
	OutcomeDepositExceedsMaxAmount    Outcome = "DEPOSIT_EXCEEDS_MAX_AMOUNT"
	OutcomeMustExceedZero             Outcome = "MUST_EXCEED_ZERO"
	OutcomeFailed                     Outcome = "FAILED"
	OutcomeJobDoesNotExist            Outcome = "JOB_DOES_NOT_EXIST"
	OutcomePaymentAmountExceedsJobPay Outcome = "PAYMENT_AMOUNT_EXCEEDS_JOB_PAY"
	OutcomeJobAlreadyPaid             Outcome = "JOB_ALREADY_PAID"
	OutcomeContractTerminated         Outcome = "CONTRACT_TERMINATED"
)

var outcomeMessages = map[Outcome]string{
	OutcomeSuccess:                    "Success",
	OutcomeClientDoesNotExist:         "Client does not exist.",
	OutcomeContractorDoesNotExist:     "Contractor does not exist.",
	OutcomeDepositExceedsMaxAmount:    "Deposit exceeds maximum amount.",
	OutcomeMustExceedZero:             "Payment amount must be greater than $0.00",
	OutcomeFailed:                     "Failed",
	OutcomeJobDoesNotExist:            "Job does not exist.",
	OutcomePaymentAmountExceedsJobPay: "Payment amount exceeds job pay.",
	OutcomeJobAlreadyPaid:             "Job has already been paid.",
	OutcomeContractTerminated:         "Contract has been terminated.",
}

// Outcomes lists every member of the vocabulary.
func Outcomes() []Outcome {
	return []Outcome{
		OutcomeSuccess,
		OutcomeClientDoesNotExist,
		OutcomeContractorDoesNotExist,
		OutcomeDepositExceedsMaxAmount,
		OutcomeMustExceedZero,
		OutcomeFailed,
		OutcomeJobDoesNotExist,
		OutcomePaymentAmountExceedsJobPay,
		OutcomeJobAlreadyPaid,
		OutcomeContractTerminated,
	}
}

// Message is the human readable description of the outcome.
func (o Outcome) Message() string {
	if msg, ok := outcomeMessages[o]; ok {
		return msg
	}
	return string(o)
}

func (o Outcome) IsSuccess() bool {
	return o == OutcomeSuccess
}

func (o Outcome) String() string {
	return string(o)
}

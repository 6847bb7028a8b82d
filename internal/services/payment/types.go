package payment

import "github.com/shopspring/decimal"

const (
	OperationDeposit = "deposit"
	OperationPayJob  = "pay_job"
)

// DepositCapRatio bounds a deposit to a quarter of the client's outstanding jobs.
var DepositCapRatio = decimal.RequireFromString("0.25")

// DepositResult carries the outcome and, when known, the client's balance:
// the new balance on success, the untouched balance when the cap is hit and
// nil otherwise.
type DepositResult struct {
	Outcome Outcome          `json:"outcome"`
	Balance *decimal.Decimal `json:"balance"`
}

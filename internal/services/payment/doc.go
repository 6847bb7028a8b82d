/*
Package payment moves money between the profiles of the marketplace.

The service exposes two operations:
- Deposit credits a client's balance, bounded by DepositCapRatio of the
  client's unpaid jobs on non-terminated contracts
- PayJob transfers an amount from a job's client to its contractor and marks
  the job paid

Usage:

	svc := payment.NewService(repositories.NewPaymentRepository(db), profileRepo, metrics, log)

	result, err := svc.Deposit(ctx, clientID, decimal.RequireFromString("250.00"))

	outcome, err := svc.PayJob(ctx, jobID, decimal.RequireFromString("100.00"))

Outcomes:

Business rejections are not errors. Both operations report one member of the
closed Outcome set; a non-nil error wraps ErrProcessingFailed and means the
database misbehaved.

Consistency:

Mutations run in one transaction on rows locked with SELECT ... FOR UPDATE.
The job row is claimed first, so two payments of the same job cannot both
succeed. Results are re-read from the database after commit.
*/
package payment

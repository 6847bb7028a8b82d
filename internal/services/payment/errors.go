package payment

import "errors"

// ErrProcessingFailed wraps unexpected persistence faults. The transaction has
// been rolled back when it is returned; callers should answer with a 5xx.
var ErrProcessingFailed = errors.New("payment processing failed")

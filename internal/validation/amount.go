// Package validation checks request input before it reaches the payment service.
package validation

import (
	"bytes"
	"encoding/json"
	"strings"

	"jobpay/internal/errors"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the precision of every monetary amount.
const AmountPlaces = 2

// ParseAmount reads a payment amount given either as a JSON number or as a
// numeric string. Zero is accepted; the payment service decides what a
// non-positive amount means.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, errors.ErrMissingAmount
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, errors.ErrInvalidAmount.WithMessage("payment amount of %s is invalid", raw)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return decimal.Zero, errors.ErrMissingAmount
		}
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, errors.ErrInvalidAmount.WithMessage("payment amount of %s is invalid", text)
	}
	if amount.IsNegative() {
		return decimal.Zero, errors.ErrInvalidAmount.WithMessage("payment amount of %s is negative", text)
	}
	if !amount.Equal(amount.Round(AmountPlaces)) {
		return decimal.Zero, errors.ErrInvalidAmount.WithMessage("payment amount of %s has more than %d decimal places", text, AmountPlaces)
	}
	return amount, nil
}

package types

import "fmt"

// PaymentStatus describes the payment state of an expense entry.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentDue     PaymentStatus = "due"
	PaymentOverdue PaymentStatus = "overdue"
)

var ErrInvalidPaymentStatus = fmt.Errorf("not a valid payment status")

// ParsePaymentStatus parses a payment status string. An empty string
// defaults to "due" for newly created expenses.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case "":
		return PaymentDue, nil
	case PaymentPaid, PaymentDue, PaymentOverdue:
		return PaymentStatus(s), nil
	}

	return PaymentDue, fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, s)
}

func (p PaymentStatus) String() string {
	return string(p)
}

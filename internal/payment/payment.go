// Package payment validates checkout submissions. Validation is pure:
// it takes a draft plus the current order total and either returns a
// normalized submission or one of the sentinel errors.
package payment

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidMethod      = errors.New("unknown payment method")
	ErrMissingAddress     = errors.New("delivery address is required")
	ErrMissingPhone       = errors.New("contact phone is required")
	ErrInsufficientChange = errors.New("change amount is below the order total")
)

// Method is the payment method recorded with the order. Payment is not
// executed here, only captured.
type Method string

const (
	MethodCard Method = "card"
	MethodCash Method = "cash"
	MethodPix  Method = "pix"
)

func (m Method) String() string {
	return string(m)
}

// Draft is the submission as entered by the customer, before validation
type Draft struct {
	Method      Method
	ChangeFor   decimal.Decimal
	Address     string
	Phone       string
	Observation string
}

// Submission is a validated, normalized payment submission. ChangeFor is
// meaningful only when Method is cash; Validate zeroes it otherwise.
type Submission struct {
	Method      Method
	ChangeFor   decimal.Decimal
	Address     string
	Phone       string
	Observation string
}

// Change returns how much change the customer is owed for a cash payment
func (s Submission) Change(total decimal.Decimal) decimal.Decimal {
	if s.Method != MethodCash {
		return decimal.Decimal{}
	}
	return s.ChangeFor.Sub(total)
}

// Validate checks the draft against the order total. Address and phone
// must be non-blank; a cash payment must bring at least the total.
// Strings are trimmed in the returned submission.
func Validate(draft Draft, total decimal.Decimal) (Submission, error) {
	switch draft.Method {
	case MethodCard, MethodCash, MethodPix:
	default:
		return Submission{}, ErrInvalidMethod
	}

	address := strings.TrimSpace(draft.Address)
	if address == "" {
		return Submission{}, ErrMissingAddress
	}

	phone := strings.TrimSpace(draft.Phone)
	if phone == "" {
		return Submission{}, ErrMissingPhone
	}

	sub := Submission{
		Method:      draft.Method,
		Address:     address,
		Phone:       phone,
		Observation: strings.TrimSpace(draft.Observation),
	}

	if draft.Method == MethodCash {
		if draft.ChangeFor.LessThan(total) {
			return Submission{}, ErrInsufficientChange
		}
		sub.ChangeFor = draft.ChangeFor
	}

	return sub, nil
}

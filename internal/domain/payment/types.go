package payment

import "errors"

var (
	ErrInvalidFeeType    = errors.New("invalid fee type")
	ErrInvalidStatus     = errors.New("invalid obligation status")
	ErrInvalidMethod     = errors.New("invalid payment method")
	ErrNotPending        = errors.New("obligation is not pending")
	ErrAlreadySettled    = errors.New("obligation already settled")
	ErrNoLinkedTxn       = errors.New("obligation has no linked transaction")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
	ErrNotRefundable     = errors.New("fee type is not refundable")
	ErrNothingApplicable = errors.New("no obligation in an applicable state")
)

// FeeType identifies one fee line of the schedule. Each reservation carries
// at most one obligation per fee type.
type FeeType string

const (
	// FeeDeposit is refundable and due immediately on approval.
	FeeDeposit FeeType = "deposit"
	// FeeFacility is non-refundable, tiered by weekday vs weekend/holiday.
	FeeFacility FeeType = "facility"
	// FeeCleaning is non-refundable, flat.
	FeeCleaning FeeType = "cleaning"
)

func (f FeeType) String() string {
	return string(f)
}

func (f FeeType) IsValid() bool {
	switch f {
	case FeeDeposit, FeeFacility, FeeCleaning:
		return true
	default:
		return false
	}
}

func (f FeeType) Refundable() bool {
	return f == FeeDeposit
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusWaived    Status = "waived"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusWaived, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

type Method string

const (
	MethodCash     Method = "cash"
	MethodCheck    Method = "check"
	MethodCard     Method = "card"
	MethodTransfer Method = "transfer"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodCheck, MethodCard, MethodTransfer:
		return true
	default:
		return false
	}
}

func NewMethod(s string) (Method, error) {
	m := Method(s)
	if !m.IsValid() {
		return "", ErrInvalidMethod
	}
	return m, nil
}

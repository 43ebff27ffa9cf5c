package statement

import (
	"github.com/shopspring/decimal"
)

// Direction indicates whether a movement reduces or increases the account balance
type Direction string

const (
	DirectionCharge Direction = "CHARGE" // reduces the balance
	DirectionCredit Direction = "CREDIT" // increases the balance
)

// IsValid checks if the direction is valid
func (d Direction) IsValid() bool {
	return d == DirectionCharge || d == DirectionCredit
}

// String returns the string representation
func (d Direction) String() string {
	return string(d)
}

// BankMovement is one normalized bank-statement line.
// Date is the bank's posting date in ISO form when the source format was
// recognized; unrecognized dates pass through unchanged.
type BankMovement struct {
	Date           string           `json:"date"`
	Description    string           `json:"description"`
	Reference      string           `json:"reference"`
	Amount         decimal.Decimal  `json:"amount"`
	Direction      Direction        `json:"direction"`
	RunningBalance *decimal.Decimal `json:"running_balance,omitempty"`
}

// IsCharge returns true if the movement reduces the account balance
func (m BankMovement) IsCharge() bool {
	return m.Direction == DirectionCharge
}

// SignedAmount returns the amount with charges negated
func (m BankMovement) SignedAmount() decimal.Decimal {
	if m.IsCharge() {
		return m.Amount.Neg()
	}
	return m.Amount
}

package models

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

var errNegativeAmount = errors.New("money amount cannot be negative")

// Money is a non-negative decimal amount. Comparisons are by value, so
// "50.00" and "50.0" are the same amount.
type Money struct {
	amount decimal.Decimal
}

var ZeroMoney = Money{amount: decimal.Zero}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errNegativeAmount
	}
	return Money{amount: amount}, nil
}

func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(amount)
}

func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) MultiplyInt(factor int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(factor))}
}

func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := NewMoneyFromString(s)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// Package amountpkg converts between uint64 amounts and their decimal representations.
package amountpkg

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotInteger indicates that the amount has a fractional part.
	ErrNotInteger = errors.New("amount must be an integer")
	// ErrNegative indicates that the amount is below zero.
	ErrNegative = errors.New("amount can not be negative")
	// ErrOutOfRange indicates that the amount does not fit into 64 bits.
	ErrOutOfRange = errors.New("amount is out of range")
)

var maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)

// FromUint64 returns the decimal value of the amount.
func FromUint64(amount uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0)
}

// ToUint64 converts d into uint64 if it is a non-negative integer that fits.
func ToUint64(d decimal.Decimal) (uint64, error) {
	if !d.Equal(d.Truncate(0)) {
		return 0, ErrNotInteger
	}

	if d.IsNegative() {
		return 0, ErrNegative
	}

	if d.GreaterThan(maxUint64) {
		return 0, ErrOutOfRange
	}

	return d.BigInt().Uint64(), nil
}

// Parse converts a decimal string, e.g. a NUMERIC column value, into uint64.
func Parse(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	return ToUint64(d)
}

// Format returns the base 10 representation of the amount.
func Format(amount uint64) string {
	return strconv.FormatUint(amount, 10)
}

// Negate returns the base 10 representation of -amount.
func Negate(amount uint64) string {
	return FromUint64(amount).Neg().String()
}

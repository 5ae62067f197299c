// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

// BankSize is the size in bytes of a stored bank record: discriminator,
// name length prefix, name, balance and owner key.
const BankSize = 8 + 4 + 20 + 8 + 32

// MaxNameLen is the exclusive upper bound of a bank name length in bytes.
const MaxNameLen = 20

var (
	// ErrEmptyName indicates that the bank name is an empty string.
	ErrEmptyName = errors.New("bank name can not be empty string")
	// ErrNameTooLong indicates that the bank name is 20 bytes or longer.
	ErrNameTooLong = errors.New("bank name must be shorter than 20 bytes")
	// ErrZeroAmount indicates that the deposit or withdraw amount is zero.
	ErrZeroAmount = errors.New("the deposit/withdraw amount can not be zero")
	// ErrInsufficientFunds indicates that the user does not have enough disposable funds.
	ErrInsufficientFunds = errors.New("user does not have enough funds")
	// ErrUnauthorized indicates that the requester is not the bank owner.
	ErrUnauthorized = errors.New("only bank's owner can withdraw funds")
	// ErrInsufficientBankBalance indicates that the bank balance is lower than the withdraw amount.
	ErrInsufficientBankBalance = errors.New("bank balance is lower than withdraw amount requested")
	// ErrBankAlreadyExists indicates that the owner already has a bank.
	ErrBankAlreadyExists = errors.New("bank already exists")
	// ErrBankNotFound indicates that there is no bank at the given address.
	ErrBankNotFound = errors.New("bank not found")
	// ErrAmountOverflow indicates that the holding total would not fit into 64 bits.
	ErrAmountOverflow = errors.New("amount overflows bank holding")
	// ErrReserveViolation indicates that the holding funds dropped below the reserved minimum.
	ErrReserveViolation = errors.New("bank holding is below reserved minimum")
)

// Bank is a named balance funded by anyone and withdrawable by its owner only.
//
// Balance is derived from the holding funds minus the reserved minimum and is
// recomputed on every deposit and withdrawal.
type Bank struct {
	Address   string    `json:"address"`
	Name      string    `json:"name"`
	Balance   uint64    `json:"balance,string"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBankParams is the input data to store a new bank record.
type CreateBankParams struct {
	Address string
	Name    string
	Owner   string
}

// ValidateName checks the bank name length in bytes.
func ValidateName(name string) error {
	if len(name) == 0 {
		return ErrEmptyName
	}

	if len(name) >= MaxNameLen {
		return ErrNameTooLong
	}

	return nil
}

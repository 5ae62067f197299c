package domain

import (
	"errors"
	"time"
)

// Entry kinds.
const (
	EntryCreate   = "create"
	EntryDeposit  = "deposit"
	EntryWithdraw = "withdraw"
)

// ErrEntryNotFound indicates that there is no entry with the given id.
var ErrEntryNotFound = errors.New("entry not found")

// Entry records a single movement of funds into or out of a bank holding.
type Entry struct {
	ID          int64     `json:"id"`
	BankAddress string    `json:"bank_address"`
	Username    string    `json:"username"`
	Kind        string    `json:"kind"`
	Amount      string    `json:"amount"` // negative when funds leave the holding
	CreatedAt   time.Time `json:"created_at"`
}

// CreateEntryParams is the input data to record an entry.
type CreateEntryParams struct {
	BankAddress string
	Username    string
	Kind        string
	Amount      string
}

package memstore

import (
	"context"

	"github.com/go-petr/vaultbank/internal/bankservice"
	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/go-petr/vaultbank/pkg/errorspkg"
)

const maxAmount = ^uint64(0)

type txView struct {
	st *state
}

func (v txView) Banks() bankservice.Repo {
	return banks(v)
}

func (v txView) Holdings() bankservice.HoldingStore {
	return holdings(v)
}

func (v txView) Wallets() bankservice.Wallet {
	return wallets(v)
}

func (v txView) Entries() bankservice.EntryRecorder {
	return entries(v)
}

type banks txView

func (b banks) Create(ctx context.Context, arg domain.CreateBankParams) (domain.Bank, error) {
	if _, ok := b.st.users[arg.Owner]; !ok {
		return domain.Bank{}, domain.ErrUserNotFound
	}

	if _, ok := b.st.owners[arg.Owner]; ok {
		return domain.Bank{}, domain.ErrBankAlreadyExists
	}

	if _, ok := b.st.banks[arg.Address]; ok {
		return domain.Bank{}, domain.ErrBankAlreadyExists
	}

	bank := domain.Bank{
		Address:   arg.Address,
		Name:      arg.Name,
		Owner:     arg.Owner,
		CreatedAt: now(),
	}

	b.st.banks[arg.Address] = bank
	b.st.owners[arg.Owner] = arg.Address

	return bank, nil
}

func (b banks) Get(ctx context.Context, address string) (domain.Bank, error) {
	bank, ok := b.st.banks[address]
	if !ok {
		return domain.Bank{}, domain.ErrBankNotFound
	}

	return bank, nil
}

// GetForUpdate needs no row lock, the whole transaction holds the store mutex.
func (b banks) GetForUpdate(ctx context.Context, address string) (domain.Bank, error) {
	return b.Get(ctx, address)
}

func (b banks) UpdateBalance(ctx context.Context, address string, balance uint64) (domain.Bank, error) {
	bank, ok := b.st.banks[address]
	if !ok {
		return domain.Bank{}, domain.ErrBankNotFound
	}

	bank.Balance = balance
	b.st.banks[address] = bank

	return bank, nil
}

type holdings txView

func (h holdings) AddFunds(ctx context.Context, address string, amount uint64) error {
	if _, ok := h.st.banks[address]; !ok {
		return domain.ErrBankNotFound
	}

	funds := h.st.holdings[address]
	if funds > maxAmount-amount {
		return domain.ErrAmountOverflow
	}

	h.st.holdings[address] = funds + amount

	return nil
}

func (h holdings) RemoveFunds(ctx context.Context, address string, amount uint64) error {
	funds := h.st.holdings[address]
	if funds < amount {
		return domain.ErrInsufficientBankBalance
	}

	h.st.holdings[address] = funds - amount

	return nil
}

func (h holdings) TotalFunds(ctx context.Context, address string) (uint64, error) {
	return h.st.holdings[address], nil
}

type wallets txView

func (w wallets) DisposableFunds(ctx context.Context, username string) (uint64, error) {
	u, ok := w.st.users[username]
	if !ok {
		return 0, domain.ErrUserNotFound
	}

	return u.Funds, nil
}

func (w wallets) Debit(ctx context.Context, username string, amount uint64) error {
	u, ok := w.st.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}

	if u.Funds < amount {
		return domain.ErrInsufficientFunds
	}

	u.Funds -= amount
	w.st.users[username] = u

	return nil
}

func (w wallets) Credit(ctx context.Context, username string, amount uint64) error {
	u, ok := w.st.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}

	if u.Funds > maxAmount-amount {
		return domain.ErrAmountOverflow
	}

	u.Funds += amount
	w.st.users[username] = u

	return nil
}

type entries txView

func (e entries) Create(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	if _, ok := e.st.banks[arg.BankAddress]; !ok {
		return domain.Entry{}, domain.ErrBankNotFound
	}

	e.st.lastID++

	entry := domain.Entry{
		ID:          e.st.lastID,
		BankAddress: arg.BankAddress,
		Username:    arg.Username,
		Kind:        arg.Kind,
		Amount:      arg.Amount,
		CreatedAt:   now(),
	}

	e.st.entries = append(e.st.entries, entry)

	return entry, nil
}

func (e entries) List(ctx context.Context, address string, limit, offset int32) ([]domain.Entry, error) {
	if limit < 0 || offset < 0 {
		return nil, errorspkg.ErrInternal
	}

	items := []domain.Entry{}

	for _, entry := range e.st.entries {
		if entry.BankAddress != address {
			continue
		}

		if offset > 0 {
			offset--
			continue
		}

		if int32(len(items)) == limit {
			break
		}

		items = append(items, entry)
	}

	return items, nil
}

// Package bankservice manages business logic layer of banks.
//
// A bank balance is never trusted across operations: every deposit and
// withdrawal reconciles it from the live holding total minus the reserved
// minimum before mutating it.
package bankservice

import (
	"context"
	"encoding/hex"

	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/go-petr/vaultbank/pkg/amountpkg"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"
)

const addressSeed = "user_bank"

// Repo provides bank records access needed by bank service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package bankservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateBankParams) (domain.Bank, error)
	Get(ctx context.Context, address string) (domain.Bank, error)
	GetForUpdate(ctx context.Context, address string) (domain.Bank, error)
	UpdateBalance(ctx context.Context, address string, balance uint64) (domain.Bank, error)
}

// HoldingStore keeps the funds physically backing each bank.
type HoldingStore interface {
	AddFunds(ctx context.Context, address string, amount uint64) error
	RemoveFunds(ctx context.Context, address string, amount uint64) error
	TotalFunds(ctx context.Context, address string) (uint64, error)
}

// Wallet moves funds into and out of an identity's disposable funds.
type Wallet interface {
	DisposableFunds(ctx context.Context, username string) (uint64, error)
	Debit(ctx context.Context, username string, amount uint64) error
	Credit(ctx context.Context, username string, amount uint64) error
}

// EntryRecorder records fund movements.
type EntryRecorder interface {
	Create(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error)
	List(ctx context.Context, address string, limit, offset int32) ([]domain.Entry, error)
}

// Tx gives access to the collaborators bound to a single transaction.
type Tx interface {
	Banks() Repo
	Holdings() HoldingStore
	Wallets() Wallet
	Entries() EntryRecorder
}

// Store runs fn atomically: either all its changes are applied or none.
type Store interface {
	ExecTx(ctx context.Context, fn func(tx Tx) error) error
}

// ReservePolicy returns the funds a record of the given size must keep.
type ReservePolicy interface {
	ReservedMinimum(ctx context.Context, recordSize int) (uint64, error)
}

// Service facilitates bank service layer logic.
type Service struct {
	store   Store
	reserve ReservePolicy
}

// New returns bank service struct to manage bank business logic.
func New(store Store, reserve ReservePolicy) *Service {
	return &Service{
		store:   store,
		reserve: reserve,
	}
}

// DeriveAddress returns the bank address owned by the given user.
// Every user has exactly one possible bank address.
func DeriveAddress(owner string) string {
	sum := blake2b.Sum256([]byte(addressSeed + owner))
	return hex.EncodeToString(sum[:])
}

// Create creates a bank named name for the owner.
//
// The owner pays the reserved minimum into the new bank's holding, so the
// bank starts with zero balance.
func (s *Service) Create(ctx context.Context, owner, name string) (domain.Bank, error) {
	l := zerolog.Ctx(ctx)

	if err := domain.ValidateName(name); err != nil {
		l.Info().Err(err).Send()
		return domain.Bank{}, err
	}

	arg := domain.CreateBankParams{
		Address: DeriveAddress(owner),
		Name:    name,
		Owner:   owner,
	}

	var bank domain.Bank

	err := s.store.ExecTx(ctx, func(tx Tx) error {
		reserve, err := s.reserve.ReservedMinimum(ctx, domain.BankSize)
		if err != nil {
			return err
		}

		bank, err = tx.Banks().Create(ctx, arg)
		if err != nil {
			return err
		}

		if err := debit(ctx, tx.Wallets(), owner, reserve); err != nil {
			return err
		}

		if err := tx.Holdings().AddFunds(ctx, arg.Address, reserve); err != nil {
			return err
		}

		_, err = tx.Entries().Create(ctx, domain.CreateEntryParams{
			BankAddress: arg.Address,
			Username:    owner,
			Kind:        domain.EntryCreate,
			Amount:      amountpkg.Format(reserve),
		})

		return err
	})
	if err != nil {
		l.Info().Err(err).Str("owner", owner).Msg("bank creation failed")
		return domain.Bank{}, err
	}

	return bank, nil
}

// Get returns the bank stored at the given address.
func (s *Service) Get(ctx context.Context, address string) (domain.Bank, error) {
	var bank domain.Bank

	err := s.store.ExecTx(ctx, func(tx Tx) error {
		var err error
		bank, err = tx.Banks().Get(ctx, address)

		return err
	})
	if err != nil {
		return domain.Bank{}, err
	}

	return bank, nil
}

// ListEntries returns the fund movements recorded for the bank, oldest first.
// Only the bank owner may read them.
func (s *Service) ListEntries(ctx context.Context, requester, address string, limit, offset int32) ([]domain.Entry, error) {
	var items []domain.Entry

	err := s.store.ExecTx(ctx, func(tx Tx) error {
		bank, err := tx.Banks().Get(ctx, address)
		if err != nil {
			return err
		}

		if bank.Owner != requester {
			zerolog.Ctx(ctx).Warn().Str("requester", requester).Str("address", address).Msg("entries read by non-owner")
			return domain.ErrUnauthorized
		}

		items, err = tx.Entries().List(ctx, address, limit, offset)

		return err
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Deposit moves amount from the depositor's disposable funds into the bank.
// Anyone may deposit into any bank.
func (s *Service) Deposit(ctx context.Context, depositor, address string, amount uint64) (domain.Bank, error) {
	l := zerolog.Ctx(ctx)

	if amount == 0 {
		l.Info().Err(domain.ErrZeroAmount).Send()
		return domain.Bank{}, domain.ErrZeroAmount
	}

	var bank domain.Bank

	err := s.store.ExecTx(ctx, func(tx Tx) error {
		if _, err := tx.Banks().GetForUpdate(ctx, address); err != nil {
			return err
		}

		if err := debit(ctx, tx.Wallets(), depositor, amount); err != nil {
			return err
		}

		if err := tx.Holdings().AddFunds(ctx, address, amount); err != nil {
			return err
		}

		balance, err := s.reconcile(ctx, tx, address)
		if err != nil {
			return err
		}

		bank, err = tx.Banks().UpdateBalance(ctx, address, balance)
		if err != nil {
			return err
		}

		_, err = tx.Entries().Create(ctx, domain.CreateEntryParams{
			BankAddress: address,
			Username:    depositor,
			Kind:        domain.EntryDeposit,
			Amount:      amountpkg.Format(amount),
		})

		return err
	})
	if err != nil {
		l.Info().Err(err).Str("address", address).Msg("deposit failed")
		return domain.Bank{}, err
	}

	return bank, nil
}

// Withdraw moves amount from the bank to the requester's disposable funds.
// Only the bank owner may withdraw.
func (s *Service) Withdraw(ctx context.Context, requester, address string, amount uint64) (domain.Bank, error) {
	l := zerolog.Ctx(ctx)

	if amount == 0 {
		l.Info().Err(domain.ErrZeroAmount).Send()
		return domain.Bank{}, domain.ErrZeroAmount
	}

	var bank domain.Bank

	err := s.store.ExecTx(ctx, func(tx Tx) error {
		var err error

		bank, err = tx.Banks().GetForUpdate(ctx, address)
		if err != nil {
			return err
		}

		if bank.Owner != requester {
			l.Warn().Str("requester", requester).Str("address", address).Msg("withdraw by non-owner")
			return domain.ErrUnauthorized
		}

		// The stored balance is replaced by the reconciled one before the check.
		bank.Balance, err = s.reconcile(ctx, tx, address)
		if err != nil {
			return err
		}

		if bank.Balance < amount {
			return domain.ErrInsufficientBankBalance
		}

		if err := tx.Holdings().RemoveFunds(ctx, address, amount); err != nil {
			return err
		}

		if err := tx.Wallets().Credit(ctx, requester, amount); err != nil {
			return err
		}

		bank, err = tx.Banks().UpdateBalance(ctx, address, bank.Balance-amount)
		if err != nil {
			return err
		}

		_, err = tx.Entries().Create(ctx, domain.CreateEntryParams{
			BankAddress: address,
			Username:    requester,
			Kind:        domain.EntryWithdraw,
			Amount:      amountpkg.Negate(amount),
		})

		return err
	})
	if err != nil {
		l.Info().Err(err).Str("address", address).Msg("withdraw failed")
		return domain.Bank{}, err
	}

	return bank, nil
}

// reconcile derives the bank balance from the live holding total.
func (s *Service) reconcile(ctx context.Context, tx Tx, address string) (uint64, error) {
	total, err := tx.Holdings().TotalFunds(ctx, address)
	if err != nil {
		return 0, err
	}

	reserve, err := s.reserve.ReservedMinimum(ctx, domain.BankSize)
	if err != nil {
		return 0, err
	}

	if total < reserve {
		zerolog.Ctx(ctx).Error().
			Str("address", address).
			Uint64("total", total).
			Uint64("reserve", reserve).
			Err(domain.ErrReserveViolation).
			Send()

		return 0, domain.ErrReserveViolation
	}

	return total - reserve, nil
}

func debit(ctx context.Context, w Wallet, username string, amount uint64) error {
	funds, err := w.DisposableFunds(ctx, username)
	if err != nil {
		return err
	}

	if funds < amount {
		return domain.ErrInsufficientFunds
	}

	return w.Debit(ctx, username, amount)
}

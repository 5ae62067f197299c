package integrationtest

import (
	"context"
	"testing"

	"github.com/go-petr/vaultbank/internal/bankrepo"
	"github.com/go-petr/vaultbank/internal/bankservice"
	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/go-petr/vaultbank/internal/entryrepo"
	"github.com/go-petr/vaultbank/internal/holdingrepo"
	"github.com/go-petr/vaultbank/internal/sessionrepo"
	"github.com/go-petr/vaultbank/internal/userrepo"
	"github.com/go-petr/vaultbank/pkg/amountpkg"
	"github.com/go-petr/vaultbank/pkg/dbpkg"
	"github.com/go-petr/vaultbank/pkg/passpkg"
	"github.com/go-petr/vaultbank/pkg/randompkg"
)

// SeedUser creates random User with the given disposable funds inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface, funds uint64) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
		Funds:          funds,
	}

	userRepo := userrepo.NewRepoPGS(tx)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedBank creates a bank owned by owner with the given holding funds inside a test transaction.
func SeedBank(t *testing.T, tx dbpkg.SQLInterface, owner string, holding uint64) domain.Bank {
	t.Helper()

	arg := domain.CreateBankParams{
		Address: bankservice.DeriveAddress(owner),
		Name:    randompkg.BankName(),
		Owner:   owner,
	}

	bank, err := bankrepo.NewRepoPGS(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("bankRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	if holding == 0 {
		return bank
	}

	if err := holdingrepo.NewRepoPGS(tx).AddFunds(context.Background(), bank.Address, holding); err != nil {
		t.Fatalf("holdingRepo.AddFunds(context.Background(), %v, %v) returned error: %v",
			bank.Address, holding, err)
	}

	return bank
}

// SeedEntry creates Entry inside a test transaction.
func SeedEntry(t *testing.T, tx dbpkg.SQLInterface, bank domain.Bank, kind string, amount uint64) domain.Entry {
	t.Helper()

	arg := domain.CreateEntryParams{
		BankAddress: bank.Address,
		Username:    bank.Owner,
		Kind:        kind,
		Amount:      amountpkg.Format(amount),
	}

	if kind == domain.EntryWithdraw {
		arg.Amount = amountpkg.Negate(amount)
	}

	entry, err := entryrepo.NewRepoPGS(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("entryRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return entry
}

// SeedEntries creates count deposit entries with random amounts inside a test transaction.
func SeedEntries(t *testing.T, tx dbpkg.SQLInterface, bank domain.Bank, count int) []domain.Entry {
	t.Helper()

	entries := make([]domain.Entry, count)

	for i := range entries {
		entries[i] = SeedEntry(t, tx, bank, domain.EntryDeposit, randompkg.Uint64Between(1, 1000))
	}

	return entries
}

// SeedSession stores the session described by arg.
func SeedSession(t *testing.T, tx dbpkg.SQLInterface, arg domain.CreateSessionParams) domain.Session {
	t.Helper()

	session, err := sessionrepo.NewRepoPGS(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("sessionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return session
}

// Package bankrepo manages repository layer of banks.
package bankrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/go-petr/vaultbank/pkg/amountpkg"
	"github.com/go-petr/vaultbank/pkg/dbpkg"
	"github.com/go-petr/vaultbank/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates bank repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns bank RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    banks (address, name, owner)
VALUES
    ($1, $2, $3)
RETURNING address, name, balance, owner, created_at
`

// Create creates the bank with zero balance and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateBankParams) (domain.Bank, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.Address, arg.Name, arg.Owner)

	b, err := scanBank(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "banks_pkey", "banks_owner_key":
				return domain.Bank{}, domain.ErrBankAlreadyExists
			case "banks_owner_fkey":
				return domain.Bank{}, domain.ErrUserNotFound
			}
		}

		return domain.Bank{}, errorspkg.ErrInternal
	}

	return b, nil
}

const getQuery = `
SELECT 
	address, name, balance, owner, created_at 
FROM banks
WHERE address = $1
`

// Get returns the bank with the given address.
func (r *RepoPGS) Get(ctx context.Context, address string) (domain.Bank, error) {
	return r.get(ctx, getQuery, address)
}

const getForUpdateQuery = getQuery + `FOR UPDATE
`

// GetForUpdate returns the bank with the given address and locks its row
// until the surrounding transaction ends.
func (r *RepoPGS) GetForUpdate(ctx context.Context, address string) (domain.Bank, error) {
	return r.get(ctx, getForUpdateQuery, address)
}

func (r *RepoPGS) get(ctx context.Context, query, address string) (domain.Bank, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, address)

	b, err := scanBank(row)
	if err != nil {
		if err == sql.ErrNoRows {
			l.Info().Err(err).Str("address", address).Send()
			return domain.Bank{}, domain.ErrBankNotFound
		}

		l.Error().Err(err).Send()

		return domain.Bank{}, errorspkg.ErrInternal
	}

	return b, nil
}

const updateBalanceQuery = `
UPDATE banks
SET balance = $1
WHERE address = $2
RETURNING address, name, balance, owner, created_at
`

// UpdateBalance sets the bank balance and returns the changed bank.
func (r *RepoPGS) UpdateBalance(ctx context.Context, address string, balance uint64) (domain.Bank, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateBalanceQuery, amountpkg.Format(balance), address)

	b, err := scanBank(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.Bank{}, domain.ErrBankNotFound
		}

		return domain.Bank{}, errorspkg.ErrInternal
	}

	return b, nil
}

func scanBank(row *sql.Row) (domain.Bank, error) {
	var (
		b       domain.Bank
		balance string
	)

	err := row.Scan(
		&b.Address,
		&b.Name,
		&balance,
		&b.Owner,
		&b.CreatedAt,
	)
	if err != nil {
		return domain.Bank{}, err
	}

	b.Balance, err = amountpkg.Parse(balance)
	if err != nil {
		return domain.Bank{}, err
	}

	return b, nil
}

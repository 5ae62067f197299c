// Package holdingrepo manages repository layer of the funds backing banks.
package holdingrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/go-petr/vaultbank/pkg/amountpkg"
	"github.com/go-petr/vaultbank/pkg/dbpkg"
	"github.com/go-petr/vaultbank/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates holding repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns holding RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const addFundsQuery = `
INSERT INTO
    holdings (address, funds)
VALUES
    ($1, $2)
ON CONFLICT (address) DO UPDATE
SET funds = holdings.funds + EXCLUDED.funds, updated_at = now()
RETURNING funds
`

// AddFunds adds amount to the holding of the bank at address.
func (r *RepoPGS) AddFunds(ctx context.Context, address string, amount uint64) error {
	_, err := r.exec(ctx, addFundsQuery, address, amountpkg.Format(amount))
	return err
}

const removeFundsQuery = `
UPDATE holdings
SET funds = funds - $2, updated_at = now()
WHERE address = $1
RETURNING funds
`

// RemoveFunds takes amount from the holding of the bank at address.
func (r *RepoPGS) RemoveFunds(ctx context.Context, address string, amount uint64) error {
	_, err := r.exec(ctx, removeFundsQuery, address, amountpkg.Format(amount))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrInsufficientBankBalance
	}

	return err
}

const totalFundsQuery = `
SELECT funds FROM holdings
WHERE address = $1
`

// TotalFunds returns all the funds held for the bank at address,
// including the reserved minimum. A missing holding holds nothing.
func (r *RepoPGS) TotalFunds(ctx context.Context, address string) (uint64, error) {
	funds, err := r.exec(ctx, totalFundsQuery, address)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}

	return funds, err
}

// exec runs a query returning the funds column. sql.ErrNoRows is passed through.
func (r *RepoPGS) exec(ctx context.Context, query string, args ...interface{}) (uint64, error) {
	l := zerolog.Ctx(ctx)

	var raw string

	err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}

		l.Error().Err(err).Send()

		switch dbpkg.Constraint(err) {
		case "holdings_address_fkey":
			return 0, domain.ErrBankNotFound
		case "holdings_funds_check":
			return 0, domain.ErrInsufficientBankBalance
		case "holdings_funds_max_check":
			return 0, domain.ErrAmountOverflow
		}

		return 0, errorspkg.ErrInternal
	}

	funds, err := amountpkg.Parse(raw)
	if err != nil {
		l.Error().Err(err).Str("funds", raw).Send()
		return 0, errorspkg.ErrInternal
	}

	return funds, nil
}

// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/go-petr/vaultbank/pkg/amountpkg"
	"github.com/go-petr/vaultbank/pkg/dbpkg"
	"github.com/go-petr/vaultbank/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// CreateQuery inserts into users table.
const CreateQuery = `
INSERT INTO users (
    username,
    hashed_password,
    full_name,
    email,
    funds
) VALUES (
    $1, $2, $3, $4, $5
) RETURNING username, hashed_password, full_name, email, funds, password_changed_at, created_at
`

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, CreateQuery,
		arg.Username,
		arg.HashedPassword,
		arg.FullName,
		arg.Email,
		amountpkg.Format(arg.Funds),
	)

	u, err := scanUser(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" {
				switch pqErr.Constraint {
				case "users_pkey":
					return domain.User{}, domain.ErrUsernameAlreadyExists
				case "users_email_key":
					return domain.User{}, domain.ErrEmailALreadyExists
				}
			}
		}

		return domain.User{}, errorspkg.ErrInternal
	}

	return u, nil
}

const getQuery = `
SELECT 
	username, 
	hashed_password, 
	full_name, 
	email, 
	funds,
	password_changed_at, 
	created_at 
FROM users
WHERE username = $1
`

// Get returns the user with the given username.
func (r *RepoPGS) Get(ctx context.Context, username string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, username)

	u, err := scanUser(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}

		return domain.User{}, errorspkg.ErrInternal
	}

	return u, nil
}

const fundsQuery = `
SELECT funds FROM users
WHERE username = $1
`

// DisposableFunds returns the funds the user can spend.
func (r *RepoPGS) DisposableFunds(ctx context.Context, username string) (uint64, error) {
	return r.funds(ctx, fundsQuery, username)
}

const debitQuery = `
UPDATE users
SET funds = funds - $1
WHERE username = $2
RETURNING funds
`

// Debit takes amount from the user's disposable funds.
func (r *RepoPGS) Debit(ctx context.Context, username string, amount uint64) error {
	_, err := r.funds(ctx, debitQuery, amountpkg.Format(amount), username)
	return err
}

const creditQuery = `
UPDATE users
SET funds = funds + $1
WHERE username = $2
RETURNING funds
`

// Credit adds amount to the user's disposable funds.
func (r *RepoPGS) Credit(ctx context.Context, username string, amount uint64) error {
	_, err := r.funds(ctx, creditQuery, amountpkg.Format(amount), username)
	return err
}

func (r *RepoPGS) funds(ctx context.Context, query string, args ...interface{}) (uint64, error) {
	l := zerolog.Ctx(ctx)

	var raw string

	err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if err != nil {
		l.Error().Err(err).Send()

		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}

		switch dbpkg.Constraint(err) {
		case "users_funds_check":
			return 0, domain.ErrInsufficientFunds
		case "users_funds_max_check":
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

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u     domain.User
		funds string
	)

	err := row.Scan(
		&u.Username,
		&u.HashedPassword,
		&u.FullName,
		&u.Email,
		&funds,
		&u.PasswordChangedAt,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	u.Funds, err = amountpkg.Parse(funds)
	if err != nil {
		return domain.User{}, err
	}

	return u, nil
}

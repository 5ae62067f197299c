// Package entryrepo manages repository layer of entries.
package entryrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/go-petr/vaultbank/pkg/dbpkg"
	"github.com/go-petr/vaultbank/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS keeps the append-only entry journal in postgres.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const entryColumns = `id, bank_address, username, kind, amount, created_at`

const createQuery = `
INSERT INTO entries (bank_address, username, kind, amount)
VALUES ($1, $2, $3, $4)
RETURNING ` + entryColumns

// Create appends an entry to the journal.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	row := r.db.QueryRowContext(ctx, createQuery, arg.BankAddress, arg.Username, arg.Kind, arg.Amount)

	e, err := scanEntry(row)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("bank_address", arg.BankAddress).Send()

		switch dbpkg.Constraint(err) {
		case "entries_bank_address_fkey":
			return domain.Entry{}, domain.ErrBankNotFound
		case "entries_username_fkey":
			return domain.Entry{}, domain.ErrUserNotFound
		}

		return domain.Entry{}, errorspkg.ErrInternal
	}

	return e, nil
}

const getQuery = `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`

// Get returns the entry with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Entry, error) {
	e, err := scanEntry(r.db.QueryRowContext(ctx, getQuery, id))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.Entry{}, domain.ErrEntryNotFound
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Int64("entry_id", id).Send()
		return domain.Entry{}, errorspkg.ErrInternal
	}

	return e, nil
}

const listQuery = `
SELECT ` + entryColumns + ` FROM entries
WHERE bank_address = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns a page of the entries recorded for the bank at address, oldest first.
func (r *RepoPGS) List(ctx context.Context, address string, limit, offset int32) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, address, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	entries := []domain.Entry{}

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (domain.Entry, error) {
	var e domain.Entry

	err := row.Scan(&e.ID, &e.BankAddress, &e.Username, &e.Kind, &e.Amount, &e.CreatedAt)

	return e, err
}

// Package ledgerrepo runs bank operations inside postgres transactions.
package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/vaultbank/internal/bankrepo"
	"github.com/go-petr/vaultbank/internal/bankservice"
	"github.com/go-petr/vaultbank/internal/entryrepo"
	"github.com/go-petr/vaultbank/internal/holdingrepo"
	"github.com/go-petr/vaultbank/internal/userrepo"
	"github.com/go-petr/vaultbank/pkg/errorspkg"
	"github.com/rs/zerolog"
)

var _ bankservice.Store = (*RepoPGS)(nil)

// RepoPGS holds the connection used to start transactions.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn: conn,
	}
}

type txRepos struct {
	banks    *bankrepo.RepoPGS
	holdings *holdingrepo.RepoPGS
	wallets  *userrepo.RepoPGS
	entries  *entryrepo.RepoPGS
}

func (t txRepos) Banks() bankservice.Repo {
	return t.banks
}

func (t txRepos) Holdings() bankservice.HoldingStore {
	return t.holdings
}

func (t txRepos) Wallets() bankservice.Wallet {
	return t.wallets
}

func (t txRepos) Entries() bankservice.EntryRecorder {
	return t.entries
}

// ExecTx runs fn within a single db transaction.
//
// The transaction is committed only if fn returns nil.
func (r *RepoPGS) ExecTx(ctx context.Context, fn func(tx bankservice.Tx) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	repos := txRepos{
		banks:    bankrepo.NewRepoPGS(tx),
		holdings: holdingrepo.NewRepoPGS(tx),
		wallets:  userrepo.NewRepoPGS(tx),
		entries:  entryrepo.NewRepoPGS(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

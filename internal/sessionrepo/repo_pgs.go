// Package sessionrepo manages repository layer of sessions.
package sessionrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/go-petr/vaultbank/pkg/dbpkg"
	"github.com/go-petr/vaultbank/pkg/errorspkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RepoPGS stores refresh sessions in postgres.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns session RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const sessionColumns = `id, username, refresh_token, user_agent, client_ip, is_blocked, expires_at, created_at`

const createQuery = `
INSERT INTO sessions (id, username, refresh_token, user_agent, client_ip, is_blocked, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + sessionColumns

// Create persists the session. An unknown username yields domain.ErrUserNotFound.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx, createQuery,
		arg.ID, arg.Username, arg.RefreshToken, arg.UserAgent, arg.ClientIP, arg.IsBlocked, arg.ExpiresAt)

	s, err := scanSession(row)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("username", arg.Username).Send()

		if dbpkg.Constraint(err) == "sessions_username_fkey" {
			return domain.Session{}, domain.ErrUserNotFound
		}

		return domain.Session{}, errorspkg.ErrInternal
	}

	return s, nil
}

const getQuery = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

// Get returns the session with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	l := zerolog.Ctx(ctx)

	s, err := scanSession(r.db.QueryRowContext(ctx, getQuery, id))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		l.Info().Err(err).Str("session_id", id.String()).Send()
		return domain.Session{}, domain.ErrSessionNotFound
	case err != nil:
		l.Error().Err(err).Send()
		return domain.Session{}, errorspkg.ErrInternal
	}

	return s, nil
}

func scanSession(row *sql.Row) (domain.Session, error) {
	var s domain.Session

	err := row.Scan(&s.ID, &s.Username, &s.RefreshToken, &s.UserAgent,
		&s.ClientIP, &s.IsBlocked, &s.ExpiresAt, &s.CreatedAt)

	return s, err
}

package sessionservice

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/go-petr/vaultbank/pkg/configpkg"
	"github.com/go-petr/vaultbank/pkg/errorspkg"
	"github.com/go-petr/vaultbank/pkg/randompkg"
	"github.com/go-petr/vaultbank/pkg/tokenpkg"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *MockRepo) {
	t.Helper()

	config := configpkg.Config{
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
	}

	maker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	repo := NewMockRepo(gomock.NewController(t))

	service, err := New(repo, config, maker)
	require.NoError(t, err)

	return service, repo
}

func TestNewRequiresTokenMaker(t *testing.T) {
	t.Parallel()

	_, err := New(nil, configpkg.Config{}, nil)
	require.Error(t, err)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("StoresRefreshSession", func(t *testing.T) {
		t.Parallel()

		service, repo := newTestService(t)
		arg := domain.CreateSessionParams{Username: randompkg.Owner(), UserAgent: "curl", ClientIP: "10.0.0.1"}

		var stored domain.CreateSessionParams

		repo.EXPECT().
			Create(gomock.Any(), gomock.AssignableToTypeOf(arg)).
			Times(1).
			DoAndReturn(func(ctx context.Context, got domain.CreateSessionParams) (domain.Session, error) {
				stored = got
				return domain.Session{ID: got.ID, Username: got.Username, RefreshToken: got.RefreshToken, ExpiresAt: got.ExpiresAt}, nil
			})

		accessToken, accessExpiresAt, session, err := service.Create(context.Background(), arg)
		require.NoError(t, err)
		require.NotEmpty(t, accessToken)
		require.WithinDuration(t, time.Now().Add(time.Minute), accessExpiresAt, time.Second)

		payload, err := service.TokenMaker.VerifyToken(stored.RefreshToken)
		require.NoError(t, err)
		require.Equal(t, payload.ID, stored.ID)
		require.Equal(t, arg.Username, payload.Username)

		want := domain.Session{ID: stored.ID, Username: arg.Username, RefreshToken: stored.RefreshToken, ExpiresAt: stored.ExpiresAt}
		if diff := cmp.Diff(want, session, cmpopts.EquateApproxTime(time.Second)); diff != "" {
			t.Errorf("session mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("RepoError", func(t *testing.T) {
		t.Parallel()

		service, repo := newTestService(t)

		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Times(1).
			Return(domain.Session{}, errorspkg.ErrInternal)

		_, _, _, err := service.Create(context.Background(), domain.CreateSessionParams{Username: randompkg.Owner()})
		require.ErrorIs(t, err, errorspkg.ErrInternal)
	})
}

func TestRenewAccessToken(t *testing.T) {
	t.Parallel()

	username := randompkg.Owner()

	testCases := []struct {
		name string
		// session returns the stored session for a refresh token issued to username.
		session  func(token string, payload *tokenpkg.Payload) domain.Session
		tokenFor string
		token    string
		wantErr  error
	}{
		{
			name: "OK",
			session: func(token string, payload *tokenpkg.Payload) domain.Session {
				return domain.Session{ID: payload.ID, Username: username, RefreshToken: token, ExpiresAt: payload.ExpiredAt}
			},
		},
		{
			name:    "MalformedToken",
			token:   "not-a-token",
			wantErr: tokenpkg.ErrInvalidToken,
		},
		{
			name: "BlockedSession",
			session: func(token string, payload *tokenpkg.Payload) domain.Session {
				return domain.Session{Username: username, RefreshToken: token, IsBlocked: true, ExpiresAt: payload.ExpiredAt}
			},
			wantErr: domain.ErrBlockedSession,
		},
		{
			name:     "OtherUsersSession",
			tokenFor: randompkg.Owner(),
			session: func(token string, payload *tokenpkg.Payload) domain.Session {
				return domain.Session{Username: username, RefreshToken: token, ExpiresAt: payload.ExpiredAt}
			},
			wantErr: domain.ErrInvalidUser,
		},
		{
			name: "ReplacedToken",
			session: func(token string, payload *tokenpkg.Payload) domain.Session {
				return domain.Session{Username: username, RefreshToken: "older", ExpiresAt: payload.ExpiredAt}
			},
			wantErr: domain.ErrMismatchedRefreshToken,
		},
		{
			name: "ExpiredSession",
			session: func(token string, payload *tokenpkg.Payload) domain.Session {
				return domain.Session{Username: username, RefreshToken: token, ExpiresAt: time.Now().Add(-time.Hour)}
			},
			wantErr: domain.ErrExpiredSession,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service, repo := newTestService(t)

			owner := username
			if tc.tokenFor != "" {
				owner = tc.tokenFor
			}

			token, payload, err := service.TokenMaker.CreateToken(owner, time.Hour)
			require.NoError(t, err)

			if tc.token != "" {
				token = tc.token
			}

			if tc.session == nil {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			} else {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(payload.ID)).
					Times(1).
					Return(tc.session(token, payload), nil)
			}

			accessToken, expiresAt, err := service.RenewAccessToken(context.Background(), token)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, accessToken)
			require.True(t, expiresAt.After(time.Now()))
		})
	}
}

func TestRenewAccessTokenSessionNotFound(t *testing.T) {
	t.Parallel()

	service, repo := newTestService(t)

	token, payload, err := service.TokenMaker.CreateToken(randompkg.Owner(), time.Hour)
	require.NoError(t, err)

	repo.EXPECT().
		Get(gomock.Any(), gomock.Eq(payload.ID)).
		Times(1).
		Return(domain.Session{}, domain.ErrSessionNotFound)

	_, _, err = service.RenewAccessToken(context.Background(), token)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/go-petr/vaultbank/internal/bankdelivery"
	"github.com/go-petr/vaultbank/internal/bankservice"
	"github.com/go-petr/vaultbank/internal/ledgerrepo"
	"github.com/go-petr/vaultbank/internal/memstore"
	"github.com/go-petr/vaultbank/internal/middleware"
	"github.com/go-petr/vaultbank/internal/reserve"
	"github.com/go-petr/vaultbank/internal/sessiondelivery"
	"github.com/go-petr/vaultbank/internal/sessionrepo"
	"github.com/go-petr/vaultbank/internal/sessionservice"
	"github.com/go-petr/vaultbank/internal/userdelivery"
	"github.com/go-petr/vaultbank/internal/userrepo"
	"github.com/go-petr/vaultbank/internal/userservice"
	"github.com/go-petr/vaultbank/pkg/configpkg"
	"github.com/go-petr/vaultbank/pkg/tokenpkg"
)

// ErrNoDatabase indicates that the postgres store was selected without a connection.
var ErrNoDatabase = errors.New("postgres store requires a database connection")

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

type backend struct {
	users    userservice.Repo
	sessions sessionservice.Repo
	ledger   bankservice.Store
}

func newBackend(conn *sql.DB, config configpkg.Config) (backend, error) {
	switch config.Store {
	case configpkg.StoreMemory:
		store := memstore.New()

		return backend{
			users:    store.Users(),
			sessions: store.Sessions(),
			ledger:   store,
		}, nil
	case configpkg.StorePostgres, "":
		if conn == nil {
			return backend{}, ErrNoDatabase
		}

		return backend{
			users:    userrepo.NewRepoPGS(conn),
			sessions: sessionrepo.NewRepoPGS(conn),
			ledger:   ledgerrepo.NewRepoPGS(conn),
		}, nil
	}

	return backend{}, fmt.Errorf("unknown store %q", config.Store)
}

// New creates Server type with instantiated domains and routes.
//
// conn may be nil when config.Store selects the in-memory backend.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	b, err := newBackend(conn, config)
	if err != nil {
		return nil, err
	}

	tokenMaker, err := tokenpkg.NewMaker(config.TokenKind, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	sessionService, err := sessionservice.New(b.sessions, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	policy := reserve.NewRentPolicy(reserve.NewViperSource(viper.GetViper()))

	userService := userservice.New(b.users, config.InitialUserFunds)
	bankService := bankservice.New(b.ledger, policy)

	userHandler := userdelivery.NewHandler(userService, sessionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)
	bankHandler := bankdelivery.NewHandler(bankService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.POST("/banks", bankHandler.Create)
	authRoutes.GET("/banks/:address", bankHandler.Get)
	authRoutes.POST("/banks/:address/deposits", bankHandler.Deposit)
	authRoutes.POST("/banks/:address/withdrawals", bankHandler.Withdraw)
	authRoutes.GET("/banks/:address/entries", bankHandler.ListEntries)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("amount", bankdelivery.ValidAmount)
		if err != nil {
			return nil, errors.New("cannot register amount validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}

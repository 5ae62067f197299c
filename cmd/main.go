// Package main runs the vault bank API: users, sessions and custodial banks.
package main

import (
	"database/sql"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/go-petr/vaultbank/cmd/httpserver"
	"github.com/go-petr/vaultbank/internal/middleware"
	"github.com/go-petr/vaultbank/pkg/configpkg"
	"github.com/go-petr/vaultbank/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	var db *sql.DB

	if config.Store != configpkg.StoreMemory {
		db, err = dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot connect to database")
		}
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	viper.WatchConfig()

	logger.Info().Str("store", config.Store).Msg("VAULT BANK API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

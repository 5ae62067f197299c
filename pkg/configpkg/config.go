// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver             string        `mapstructure:"DB_DRIVER"`
	DBSource             string        `mapstructure:"DB_SOURCE"`
	ServerAddress        string        `mapstructure:"SERVER_ADDRESS"`
	TokenSymmetricKey    string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	TokenKind            string        `mapstructure:"TOKEN_KIND"`
	AccessTokenDuration  time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	RefreshTokenDuration time.Duration `mapstructure:"REFRESH_TOKEN_DURATION"`
	Environement         string        `mapstructure:"GO_ENV"`
	Store                string        `mapstructure:"STORE"`
	InitialUserFunds     uint64        `mapstructure:"INITIAL_USER_FUNDS"`
}

// Reserve policy keys. They are read on every reserve computation and may
// change while the server runs.
const (
	ReserveByteRateKey         = "RESERVE_BYTE_RATE"
	ReserveOverheadBytesKey    = "RESERVE_OVERHEAD_BYTES"
	ReserveThresholdPercentKey = "RESERVE_THRESHOLD_PERCENT"
)

// SetDefaults registers fallback values for optional keys.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("STORE", StorePostgres)
	v.SetDefault("TOKEN_KIND", "paseto")
	v.SetDefault("INITIAL_USER_FUNDS", uint64(10_000_000))
	v.SetDefault(ReserveByteRateKey, uint64(3480))
	v.SetDefault(ReserveOverheadBytesKey, uint64(128))
	v.SetDefault(ReserveThresholdPercentKey, uint64(200))
}

// Load reads configuration from file or environment variables.
//
// Load does not watch the file. Live readers register with viper.OnConfigChange
// and the caller starts viper.WatchConfig once they are in place.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	SetDefaults(viper.GetViper())

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}

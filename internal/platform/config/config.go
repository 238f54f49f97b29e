// Package config loads process configuration from the environment so main
// stays lean. Values are read once at startup and never mutated.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr string `env:"EVENTS_TRACKER_ADDR" envDefault:":8080"`

	RedisURL     string        `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`

	// Signing domain. ChainID defaults to OP Mainnet, which the frontend
	// targets; a signature for one chain never verifies on another.
	SigningDomainName    string `env:"SIGNING_DOMAIN_NAME" envDefault:"BuidlGuidl Events Tracker"`
	SigningDomainVersion string `env:"SIGNING_DOMAIN_VERSION" envDefault:"1"`
	ChainID              int64  `env:"CHAIN_ID" envDefault:"10"`

	// AdminAddresses is the comma-separated admin allowlist. Loaded at
	// startup only; changing admins means restarting the process.
	AdminAddresses []string `env:"ADMIN_ADDRESSES" envSeparator:","`

	MembersURL    string        `env:"MEMBERS_URL" envDefault:"https://buidlguidl-v3.ew.r.appspot.com/builders"`
	OracleTimeout time.Duration `env:"ORACLE_TIMEOUT" envDefault:"5s"`

	ExpenseListLimit int64 `env:"EXPENSE_LIST_LIMIT" envDefault:"10000"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// FromEnv parses and validates the configuration.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	for _, a := range cfg.AdminAddresses {
		if !common.IsHexAddress(a) {
			return Config{}, fmt.Errorf("ADMIN_ADDRESSES entry %q is not a hex address", a)
		}
	}
	return cfg, nil
}

// Admins returns the allowlist as case-normalized addresses.
func (c Config) Admins() []common.Address {
	admins := make([]common.Address, 0, len(c.AdminAddresses))
	for _, a := range c.AdminAddresses {
		admins = append(admins, common.HexToAddress(a))
	}
	return admins
}

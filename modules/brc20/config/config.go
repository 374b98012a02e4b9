package config

import "github.com/gaze-network/brc20-ledger/internal/postgres"

type Config struct {
	Datasource  string          `mapstructure:"datasource"`   // Datasource to fetch brc20 transfers from. Only `opi` is supported.
	Database    string          `mapstructure:"database"`     // Database to store data. Only `postgres` is supported.
	APIHandlers []string        `mapstructure:"api_handlers"` // List of API handlers to enable. (e.g. `http`)
	Postgres    postgres.Config `mapstructure:"postgres"`
	OPI         OPIConfig       `mapstructure:"opi"`

	// ProgEnabled enables the brc20-prog (programmable module) events.
	ProgEnabled bool `mapstructure:"prog_enabled"`
}

// OPIConfig is the connection to the OPI db reader JSON-RPC service.
type OPIConfig struct {
	URL   string `mapstructure:"url"`
	Debug bool   `mapstructure:"debug"`

	// FetchConcurrency is the number of blocks fetched in parallel. Default is 8.
	FetchConcurrency int `mapstructure:"fetch_concurrency"`
}

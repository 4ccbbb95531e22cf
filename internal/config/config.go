// Package config
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

/*
YAML config example:
api_key: "..."
api_secret: "..."
testnet: true
symbol: "BTCUSDT"
quantity_step: "0.001"
listen_addr: ":8080"
chart_timeframe: "5m"
chart_limit: 50
*/

type Config struct {
	APIKey         string `yaml:"api_key"`
	APISecret      string `yaml:"api_secret"`
	Testnet        bool   `yaml:"testnet"`
	Symbol         string `yaml:"symbol"`
	QuantityStep   string `yaml:"quantity_step"`
	ListenAddr     string `yaml:"listen_addr"`
	ChartTimeframe string `yaml:"chart_timeframe"`
	ChartLimit     int    `yaml:"chart_limit"`
}

// Load builds the configuration from the environment. A .env file in
// the working directory is honored when present; credentials are never
// read anywhere else in the program.
func Load() Config {
	_ = godotenv.Load()

	testnet := true
	if v := os.Getenv("TESTNET"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			testnet = b
		}
	}

	cfg := Config{
		APIKey:         os.Getenv("API_KEY"),
		APISecret:      os.Getenv("API_SECRET"),
		Testnet:        testnet,
		Symbol:         "BTCUSDT",
		QuantityStep:   "0.001",
		ListenAddr:     ":8080",
		ChartTimeframe: "5m",
		ChartLimit:     50,
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.Symbol = v
	}
	return cfg
}

// LoadFile replaces the configuration wholesale with a YAML file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields every front end needs before it can talk
// to the venue.
func (c Config) Validate() error {
	if c.APIKey == "" || c.APISecret == "" {
		return errors.New("API_KEY and API_SECRET must be set (environment or .env)")
	}
	if c.Symbol == "" {
		return errors.New("symbol must not be empty")
	}
	if _, err := decimal.NewFromString(c.QuantityStep); err != nil {
		return fmt.Errorf("quantity_step is not a decimal: %q", c.QuantityStep)
	}
	return nil
}

// Step returns the venue quantity step as a decimal.
func (c Config) Step() decimal.Decimal {
	step, err := decimal.NewFromString(c.QuantityStep)
	if err != nil {
		return decimal.Decimal{}
	}
	return step
}

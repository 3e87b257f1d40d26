package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"cerachain/native/settlement"
)

// Config carries the host-side settings for the settlement module: where the
// ledger state and audit journal live, how many blocks span one withdrawal
// day, and which account receives platform fee sweeps by default.
type Config struct {
	DataDir         string `toml:"DataDir"`
	AuditLogPath    string `toml:"AuditLogPath"`
	BlocksPerDay    uint64 `toml:"BlocksPerDay"`
	TreasuryAccount string `toml:"TreasuryAccount"`
}

// Load loads the configuration from the given path, writing a default file
// when none exists yet.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func createDefault(path string) (*Config, error) {
	cfg := &Config{}
	applyDefaults(cfg)
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./data"
	}
	if strings.TrimSpace(cfg.AuditLogPath) == "" {
		cfg.AuditLogPath = filepath.Join(cfg.DataDir, "settlement-audit.db")
	}
	if cfg.BlocksPerDay == 0 {
		cfg.BlocksPerDay = settlement.DefaultBlocksPerDay
	}
}

// Validate checks the loaded values for internal consistency.
func (c *Config) Validate() error {
	if c.BlocksPerDay == 0 {
		return fmt.Errorf("config: BlocksPerDay must be positive")
	}
	if strings.TrimSpace(c.TreasuryAccount) != "" {
		if _, err := c.TreasuryAddress(); err != nil {
			return err
		}
	}
	return nil
}

// TreasuryAddress decodes the configured treasury account into the address
// form used by the settlement engine.
func (c *Config) TreasuryAddress() ([20]byte, error) {
	var addr [20]byte
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(c.TreasuryAccount), "0x"))
	if trimmed == "" {
		return addr, fmt.Errorf("config: TreasuryAccount not set")
	}
	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return addr, fmt.Errorf("config: invalid TreasuryAccount: %w", err)
	}
	if len(decoded) != len(addr) {
		return addr, fmt.Errorf("config: TreasuryAccount must be %d bytes, got %d", len(addr), len(decoded))
	}
	copy(addr[:], decoded)
	return addr, nil
}

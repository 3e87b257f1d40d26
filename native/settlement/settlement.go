package settlement

import (
	"fmt"

	"github.com/holiman/uint256"
)

// BpsDenominator is the basis-point denominator applied to deposit fees.
const BpsDenominator = 10_000

// DefaultBlocksPerDay is the fallback day window used when the host does not
// configure one. It matches a 6 second block cadence.
const DefaultBlocksPerDay uint64 = 14_400

// PayeeConfig captures the per-payee settlement policy. A payee without a
// stored configuration is not onboarded and cannot request settlements.
type PayeeConfig struct {
	Active          bool
	WithdrawalLimit *uint256.Int
	DailyLimit      *uint256.Int
	FeeBps          uint16
}

// Clone returns a deep copy of the configuration so callers can safely mutate
// the copy without affecting the stored instance.
func (c *PayeeConfig) Clone() *PayeeConfig {
	if c == nil {
		return nil
	}
	clone := *c
	if c.WithdrawalLimit != nil {
		clone.WithdrawalLimit = new(uint256.Int).Set(c.WithdrawalLimit)
	} else {
		clone.WithdrawalLimit = uint256.NewInt(0)
	}
	if c.DailyLimit != nil {
		clone.DailyLimit = new(uint256.Int).Set(c.DailyLimit)
	} else {
		clone.DailyLimit = uint256.NewInt(0)
	}
	return &clone
}

// SanitizePayeeConfig validates the supplied configuration and returns a
// cloned instance with non-nil limit fields. The original value is not
// mutated.
func SanitizePayeeConfig(c *PayeeConfig) (*PayeeConfig, error) {
	if c == nil {
		return nil, fmt.Errorf("settlement: nil payee config")
	}
	return c.Clone(), nil
}

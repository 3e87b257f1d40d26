package state

import (
	"fmt"

	"github.com/holiman/uint256"

	"cerachain/native/settlement"
)

var (
	settlementBalancePrefix = []byte("settlement/balance/")
	settlementConfigPrefix  = []byte("settlement/config/")
	settlementDailyPrefix   = []byte("settlement/daily/")
	settlementDayPrefix     = []byte("settlement/daily-day/")
	settlementFeePoolKey    = []byte("settlement/fees/pool")
	settlementPausedKey     = []byte("settlement/paused")
)

func settlementAddrKey(prefix []byte, addr [20]byte) []byte {
	key := make([]byte, len(prefix)+len(addr))
	copy(key, prefix)
	copy(key[len(prefix):], addr[:])
	return key
}

type storedPayeeConfig struct {
	Active          bool
	WithdrawalLimit *uint256.Int
	DailyLimit      *uint256.Int
	FeeBps          uint16
}

func (m *Manager) settlementAmount(key []byte) (*uint256.Int, error) {
	amount := new(uint256.Int)
	ok, err := m.KVGet(key, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		return uint256.NewInt(0), nil
	}
	return amount, nil
}

func (m *Manager) setSettlementAmount(key []byte, amount *uint256.Int) error {
	if amount == nil {
		amount = uint256.NewInt(0)
	}
	return m.KVPut(key, amount)
}

// SettlementPayeeBalance returns the custodial balance credited to the payee.
// Payees without an entry resolve to zero.
func (m *Manager) SettlementPayeeBalance(payee [20]byte) (*uint256.Int, error) {
	return m.settlementAmount(settlementAddrKey(settlementBalancePrefix, payee))
}

// SetSettlementPayeeBalance persists the custodial balance for the payee.
func (m *Manager) SetSettlementPayeeBalance(payee [20]byte, balance *uint256.Int) error {
	return m.setSettlementAmount(settlementAddrKey(settlementBalancePrefix, payee), balance)
}

// SettlementPayeeConfig loads the stored policy for the payee. The boolean
// result reports whether the payee has been onboarded.
func (m *Manager) SettlementPayeeConfig(payee [20]byte) (*settlement.PayeeConfig, bool, error) {
	var stored storedPayeeConfig
	ok, err := m.KVGet(settlementAddrKey(settlementConfigPrefix, payee), &stored)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	cfg := &settlement.PayeeConfig{
		Active:          stored.Active,
		WithdrawalLimit: stored.WithdrawalLimit,
		DailyLimit:      stored.DailyLimit,
		FeeBps:          stored.FeeBps,
	}
	return cfg.Clone(), true, nil
}

// SetSettlementPayeeConfig replaces the stored policy for the payee.
func (m *Manager) SetSettlementPayeeConfig(payee [20]byte, cfg *settlement.PayeeConfig) error {
	if cfg == nil {
		return fmt.Errorf("settlement state: nil payee config")
	}
	clone := cfg.Clone()
	stored := storedPayeeConfig{
		Active:          clone.Active,
		WithdrawalLimit: clone.WithdrawalLimit,
		DailyLimit:      clone.DailyLimit,
		FeeBps:          clone.FeeBps,
	}
	return m.KVPut(settlementAddrKey(settlementConfigPrefix, payee), stored)
}

// SettlementPlatformFeeBalance returns the accrued platform fee pool.
func (m *Manager) SettlementPlatformFeeBalance() (*uint256.Int, error) {
	return m.settlementAmount(settlementFeePoolKey)
}

// SetSettlementPlatformFeeBalance persists the platform fee pool.
func (m *Manager) SetSettlementPlatformFeeBalance(balance *uint256.Int) error {
	return m.setSettlementAmount(settlementFeePoolKey, balance)
}

// SettlementDailyWithdrawal returns the running total withdrawn by the payee
// within its most recently recorded day window.
func (m *Manager) SettlementDailyWithdrawal(payee [20]byte) (*uint256.Int, error) {
	return m.settlementAmount(settlementAddrKey(settlementDailyPrefix, payee))
}

// SetSettlementDailyWithdrawal persists the payee's same-day withdrawal total.
func (m *Manager) SetSettlementDailyWithdrawal(payee [20]byte, total *uint256.Int) error {
	return m.setSettlementAmount(settlementAddrKey(settlementDailyPrefix, payee), total)
}

// SettlementLastWithdrawalDay returns the day index of the payee's last
// recorded withdrawal request.
func (m *Manager) SettlementLastWithdrawalDay(payee [20]byte) (uint64, error) {
	var day uint64
	_, err := m.KVGet(settlementAddrKey(settlementDayPrefix, payee), &day)
	if err != nil {
		return 0, err
	}
	return day, nil
}

// SetSettlementLastWithdrawalDay records the day index for the payee.
func (m *Manager) SetSettlementLastWithdrawalDay(payee [20]byte, day uint64) error {
	return m.KVPut(settlementAddrKey(settlementDayPrefix, payee), day)
}

// SettlementPaused reports whether the module kill switch is engaged.
func (m *Manager) SettlementPaused() (bool, error) {
	var paused bool
	_, err := m.KVGet(settlementPausedKey, &paused)
	if err != nil {
		return false, err
	}
	return paused, nil
}

// SetSettlementPaused persists the module kill switch.
func (m *Manager) SetSettlementPaused(paused bool) error {
	return m.KVPut(settlementPausedKey, paused)
}

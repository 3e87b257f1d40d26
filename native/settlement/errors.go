package settlement

import "errors"

var (
	// ErrModulePaused rejects value-moving operations while the module is
	// halted.
	ErrModulePaused = errors.New("settlement: module paused")
	// ErrNotPaused rejects the emergency path while the module is running
	// normally.
	ErrNotPaused = errors.New("settlement: module not paused")
	// ErrPayeeNotActive flags payees without an active configuration.
	ErrPayeeNotActive = errors.New("settlement: payee not active")
	// ErrInsufficientBalance flags settlement requests above the ledger
	// balance.
	ErrInsufficientBalance = errors.New("settlement: insufficient balance")
	// ErrExceedsWithdrawalLimit flags requests above the per-request cap.
	ErrExceedsWithdrawalLimit = errors.New("settlement: exceeds withdrawal limit")
	// ErrExceedsDailyLimit flags requests that would push the same-day total
	// over the configured daily cap.
	ErrExceedsDailyLimit = errors.New("settlement: exceeds daily limit")
	// ErrOverflow flags accumulations that would exceed the numeric range.
	ErrOverflow = errors.New("settlement: amount overflow")
	// ErrZeroAmount rejects zero-valued operations that require a positive
	// amount.
	ErrZeroAmount = errors.New("settlement: zero amount")
	// ErrZeroBalance rejects settlement execution against an empty balance.
	ErrZeroBalance = errors.New("settlement: zero balance")
	// ErrUnauthorized flags callers lacking the authority an operation
	// demands.
	ErrUnauthorized = errors.New("settlement: unauthorized caller")
)

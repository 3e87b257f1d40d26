package settlement

import (
	"encoding/hex"

	"github.com/holiman/uint256"

	"cerachain/core/types"
)

const (
	EventTypeDeposit              = "settlement.deposit"
	EventTypeSettlementRequested  = "settlement.requested"
	EventTypeSettlementExecuted   = "settlement.executed"
	EventTypePayeeUpdated         = "settlement.payee_updated"
	EventTypePlatformFeeWithdrawn = "settlement.platform_fee_withdrawn"
	EventTypePaused               = "settlement.paused"
	EventTypeUnpaused             = "settlement.unpaused"
	EventTypeEmergencyWithdrawn   = "settlement.emergency_withdrawn"
)

// NewDepositEvent returns the canonical payload for a payee credit, carrying
// the gross amount and the platform fee retained from it.
func NewDepositEvent(payee [20]byte, gross, fee *uint256.Int) *types.Event {
	return &types.Event{Type: EventTypeDeposit, Attributes: map[string]string{
		"payee": hex.EncodeToString(payee[:]),
		"gross": amountString(gross),
		"fee":   amountString(fee),
	}}
}

// NewSettlementRequestedEvent returns the canonical payload recorded when a
// payee consumes withdrawal quota.
func NewSettlementRequestedEvent(payee [20]byte, amount *uint256.Int) *types.Event {
	return &types.Event{Type: EventTypeSettlementRequested, Attributes: map[string]string{
		"payee":  hex.EncodeToString(payee[:]),
		"amount": amountString(amount),
	}}
}

// NewSettlementExecutedEvent returns the canonical payload announcing the
// amount the treasury must pay out to the payee.
func NewSettlementExecutedEvent(payee [20]byte, amount *uint256.Int) *types.Event {
	return &types.Event{Type: EventTypeSettlementExecuted, Attributes: map[string]string{
		"payee":  hex.EncodeToString(payee[:]),
		"amount": amountString(amount),
	}}
}

// NewPayeeUpdatedEvent returns the canonical payload for a configuration
// replacement.
func NewPayeeUpdatedEvent(payee [20]byte) *types.Event {
	return &types.Event{Type: EventTypePayeeUpdated, Attributes: map[string]string{
		"payee": hex.EncodeToString(payee[:]),
	}}
}

// NewPlatformFeeWithdrawnEvent returns the canonical payload emitted when the
// accrued platform fee pool is swept to a destination account.
func NewPlatformFeeWithdrawnEvent(to [20]byte, amount *uint256.Int) *types.Event {
	return &types.Event{Type: EventTypePlatformFeeWithdrawn, Attributes: map[string]string{
		"to":     hex.EncodeToString(to[:]),
		"amount": amountString(amount),
	}}
}

// NewPausedEvent returns the canonical payload emitted when the kill switch is
// engaged.
func NewPausedEvent() *types.Event {
	return &types.Event{Type: EventTypePaused, Attributes: map[string]string{}}
}

// NewUnpausedEvent returns the canonical payload emitted when normal operation
// resumes.
func NewUnpausedEvent() *types.Event {
	return &types.Event{Type: EventTypeUnpaused, Attributes: map[string]string{}}
}

// NewEmergencyWithdrawnEvent returns the canonical payload for the halted-mode
// escape valve. The event is an announcement only; no ledger balance changes.
func NewEmergencyWithdrawnEvent(to [20]byte, amount *uint256.Int) *types.Event {
	return &types.Event{Type: EventTypeEmergencyWithdrawn, Attributes: map[string]string{
		"to":     hex.EncodeToString(to[:]),
		"amount": amountString(amount),
	}}
}

func amountString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

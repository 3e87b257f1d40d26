package settlement

import (
	"errors"

	"github.com/holiman/uint256"

	"cerachain/core/events"
	"cerachain/core/types"
)

var errNilState = errors.New("settlement engine: state not configured")

// engineState abstracts the subset of state manager functionality required by
// the settlement engine. Each accessor addresses one of the persistent stores;
// absent entries resolve to zero values on the state side.
type engineState interface {
	SettlementPayeeBalance(payee [20]byte) (*uint256.Int, error)
	SetSettlementPayeeBalance(payee [20]byte, balance *uint256.Int) error
	SettlementPayeeConfig(payee [20]byte) (*PayeeConfig, bool, error)
	SetSettlementPayeeConfig(payee [20]byte, cfg *PayeeConfig) error
	SettlementPlatformFeeBalance() (*uint256.Int, error)
	SetSettlementPlatformFeeBalance(balance *uint256.Int) error
	SettlementDailyWithdrawal(payee [20]byte) (*uint256.Int, error)
	SetSettlementDailyWithdrawal(payee [20]byte, total *uint256.Int) error
	SettlementLastWithdrawalDay(payee [20]byte) (uint64, error)
	SetSettlementLastWithdrawalDay(payee [20]byte, day uint64) error
	SettlementPaused() (bool, error)
	SetSettlementPaused(paused bool) error
}

type settlementEvent struct {
	evt *types.Event
}

func (e settlementEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e settlementEvent) Event() *types.Event { return e.evt }

// Engine wires the settlement ledger logic with external state and event
// emitters. All operations run synchronously against the injected state; the
// hosting runtime serialises calls and provides per-call transactional
// atomicity.
type Engine struct {
	state        engineState
	emitter      events.Emitter
	blocksPerDay uint64
	heightFn     func() uint64
}

// NewEngine creates a settlement engine with a no-op emitter and the default
// day window. Callers override both via the setters below.
func NewEngine() *Engine {
	return &Engine{
		emitter:      events.NoopEmitter{},
		blocksPerDay: DefaultBlocksPerDay,
		heightFn:     func() uint64 { return 0 },
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetBlocksPerDay configures how many host blocks span one withdrawal day.
// Zero values are ignored to keep the day index well defined.
func (e *Engine) SetBlocksPerDay(blocks uint64) {
	if blocks == 0 {
		return
	}
	e.blocksPerDay = blocks
}

// SetHeightFunc overrides the block height source used to derive the day
// index. Primarily intended for tests and host wiring.
func (e *Engine) SetHeightFunc(height func() uint64) {
	if height == nil {
		e.heightFn = func() uint64 { return 0 }
		return
	}
	e.heightFn = height
}

func (e *Engine) emit(event *types.Event) {
	if e == nil || e.emitter == nil || event == nil {
		return
	}
	e.emitter.Emit(settlementEvent{evt: event})
}

func (e *Engine) currentDay() uint64 {
	blocks := e.blocksPerDay
	if blocks == 0 {
		blocks = DefaultBlocksPerDay
	}
	return e.heightFn() / blocks
}

func (e *Engine) ensureNotPaused() error {
	paused, err := e.state.SettlementPaused()
	if err != nil {
		return err
	}
	if paused {
		return ErrModulePaused
	}
	return nil
}

func cloneAmount(v *uint256.Int) *uint256.Int {
	if v == nil {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(v)
}

func saturatingAdd(a, b *uint256.Int) *uint256.Int {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return new(uint256.Int).SetAllOne()
	}
	return sum
}

// splitGross derives the platform fee and net credit from a gross deposit.
// The gross amount is truncated to whole basis-point units before scaling, so
// deposits below the denominator accrue no fee. The net amount saturates at
// zero when the configured rate exceeds the denominator.
func splitGross(gross *uint256.Int, feeBps uint16) (fee, net *uint256.Int) {
	feeBase := new(uint256.Int).Div(gross, uint256.NewInt(BpsDenominator))
	fee, overflow := new(uint256.Int).MulOverflow(feeBase, uint256.NewInt(uint64(feeBps)))
	if overflow {
		fee.SetAllOne()
	}
	net, underflow := new(uint256.Int).SubOverflow(gross, fee)
	if underflow {
		net.Clear()
	}
	return fee, net
}

// CreditPayee credits a gross deposit to the payee, retaining the configured
// basis-point fee in the platform pool. Payees without a configuration accrue
// no fee. Requires privileged authority.
func (e *Engine) CreditPayee(caller Authority, payee [20]byte, gross *uint256.Int) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if err := requirePrivileged(caller); err != nil {
		return err
	}
	if err := e.ensureNotPaused(); err != nil {
		return err
	}
	amount := cloneAmount(gross)
	if amount.IsZero() {
		return ErrZeroAmount
	}
	feeBps := uint16(0)
	if cfg, ok, err := e.state.SettlementPayeeConfig(payee); err != nil {
		return err
	} else if ok && cfg != nil {
		feeBps = cfg.FeeBps
	}
	fee, net := splitGross(amount, feeBps)
	balance, err := e.state.SettlementPayeeBalance(payee)
	if err != nil {
		return err
	}
	if err := e.state.SetSettlementPayeeBalance(payee, saturatingAdd(cloneAmount(balance), net)); err != nil {
		return err
	}
	pool, err := e.state.SettlementPlatformFeeBalance()
	if err != nil {
		return err
	}
	if err := e.state.SetSettlementPlatformFeeBalance(saturatingAdd(cloneAmount(pool), fee)); err != nil {
		return err
	}
	e.emit(NewDepositEvent(payee, amount, fee))
	return nil
}

// RequestSettlement records a payee's intent to withdraw and consumes the
// per-request and daily quota. The caller must be the payee itself. The ledger
// balance is not debited here; ExecuteSettlement performs the debit by zeroing
// the full balance.
func (e *Engine) RequestSettlement(caller Authority, amount *uint256.Int) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	payee, err := requireAccount(caller)
	if err != nil {
		return err
	}
	if err := e.ensureNotPaused(); err != nil {
		return err
	}
	amt := cloneAmount(amount)
	if amt.IsZero() {
		return ErrZeroAmount
	}
	cfg, ok, err := e.state.SettlementPayeeConfig(payee)
	if err != nil {
		return err
	}
	if !ok || cfg == nil || !cfg.Active {
		return ErrPayeeNotActive
	}
	cfg = cfg.Clone()
	balance, err := e.state.SettlementPayeeBalance(payee)
	if err != nil {
		return err
	}
	if cloneAmount(balance).Lt(amt) {
		return ErrInsufficientBalance
	}
	if amt.Gt(cfg.WithdrawalLimit) {
		return ErrExceedsWithdrawalLimit
	}

	day := e.currentDay()
	lastDay, err := e.state.SettlementLastWithdrawalDay(payee)
	if err != nil {
		return err
	}
	usedToday := uint256.NewInt(0)
	if lastDay == day {
		used, err := e.state.SettlementDailyWithdrawal(payee)
		if err != nil {
			return err
		}
		usedToday = cloneAmount(used)
	}
	newTotal, overflow := new(uint256.Int).AddOverflow(usedToday, amt)
	if overflow {
		return ErrOverflow
	}
	if newTotal.Gt(cfg.DailyLimit) {
		return ErrExceedsDailyLimit
	}

	// Day rollover and counter update commit together; a failed precondition
	// above leaves the previous day's counter untouched.
	if lastDay != day {
		if err := e.state.SetSettlementLastWithdrawalDay(payee, day); err != nil {
			return err
		}
	}
	if err := e.state.SetSettlementDailyWithdrawal(payee, newTotal); err != nil {
		return err
	}
	e.emit(NewSettlementRequestedEvent(payee, amt))
	return nil
}

// ExecuteSettlement finalises the ledger entry for a payee by capturing and
// zeroing its full balance. The returned amount is what the external treasury
// mechanism must pay out; this engine moves no funds itself. Requires
// privileged authority.
func (e *Engine) ExecuteSettlement(caller Authority, payee [20]byte) (*uint256.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if err := requirePrivileged(caller); err != nil {
		return nil, err
	}
	if err := e.ensureNotPaused(); err != nil {
		return nil, err
	}
	balance, err := e.state.SettlementPayeeBalance(payee)
	if err != nil {
		return nil, err
	}
	amount := cloneAmount(balance)
	if amount.IsZero() {
		return nil, ErrZeroBalance
	}
	if err := e.state.SetSettlementPayeeBalance(payee, uint256.NewInt(0)); err != nil {
		return nil, err
	}
	e.emit(NewSettlementExecutedEvent(payee, amount))
	return amount, nil
}

// WithdrawPlatformFee sweeps the accrued platform fee pool and announces the
// destination. The returned amount is what the external treasury mechanism
// must transfer. Requires privileged authority.
func (e *Engine) WithdrawPlatformFee(caller Authority, to [20]byte) (*uint256.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	if err := requirePrivileged(caller); err != nil {
		return nil, err
	}
	if err := e.ensureNotPaused(); err != nil {
		return nil, err
	}
	pool, err := e.state.SettlementPlatformFeeBalance()
	if err != nil {
		return nil, err
	}
	amount := cloneAmount(pool)
	if amount.IsZero() {
		return nil, ErrZeroAmount
	}
	if err := e.state.SetSettlementPlatformFeeBalance(uint256.NewInt(0)); err != nil {
		return nil, err
	}
	e.emit(NewPlatformFeeWithdrawnEvent(to, amount))
	return amount, nil
}

// SetPayeeConfig replaces the payee's policy wholesale. Configuration is
// policy, not a fund movement, so the operation is permitted while paused.
// Requires privileged authority.
func (e *Engine) SetPayeeConfig(caller Authority, payee [20]byte, cfg *PayeeConfig) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if err := requirePrivileged(caller); err != nil {
		return err
	}
	sanitized, err := SanitizePayeeConfig(cfg)
	if err != nil {
		return err
	}
	if err := e.state.SetSettlementPayeeConfig(payee, sanitized); err != nil {
		return err
	}
	e.emit(NewPayeeUpdatedEvent(payee))
	return nil
}

// Pause engages the global kill switch. Requires privileged authority.
func (e *Engine) Pause(caller Authority) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if err := requirePrivileged(caller); err != nil {
		return err
	}
	if err := e.state.SetSettlementPaused(true); err != nil {
		return err
	}
	e.emit(NewPausedEvent())
	return nil
}

// Unpause releases the global kill switch. Requires privileged authority.
func (e *Engine) Unpause(caller Authority) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if err := requirePrivileged(caller); err != nil {
		return err
	}
	if err := e.state.SetSettlementPaused(false); err != nil {
		return err
	}
	e.emit(NewUnpausedEvent())
	return nil
}

// EmergencyWithdraw announces an out-of-band fund movement while the module is
// halted. It mutates no ledger state; callers must not assume any balance was
// adjusted by this call alone. Requires privileged authority and an engaged
// kill switch.
func (e *Engine) EmergencyWithdraw(caller Authority, to [20]byte, amount *uint256.Int) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	if err := requirePrivileged(caller); err != nil {
		return err
	}
	paused, err := e.state.SettlementPaused()
	if err != nil {
		return err
	}
	if !paused {
		return ErrNotPaused
	}
	e.emit(NewEmergencyWithdrawnEvent(to, cloneAmount(amount)))
	return nil
}

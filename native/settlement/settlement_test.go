package settlement

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestPayeeConfigCloneNormalizesNilLimits(t *testing.T) {
	cfg := &PayeeConfig{Active: true, FeeBps: 100}
	clone := cfg.Clone()
	if clone.WithdrawalLimit == nil || !clone.WithdrawalLimit.IsZero() {
		t.Fatalf("expected zero withdrawal limit, got %v", clone.WithdrawalLimit)
	}
	if clone.DailyLimit == nil || !clone.DailyLimit.IsZero() {
		t.Fatalf("expected zero daily limit, got %v", clone.DailyLimit)
	}
}

func TestPayeeConfigCloneIsDeep(t *testing.T) {
	cfg := &PayeeConfig{
		Active:          true,
		WithdrawalLimit: uint256.NewInt(500),
		DailyLimit:      uint256.NewInt(800),
		FeeBps:          250,
	}
	clone := cfg.Clone()
	clone.WithdrawalLimit.SetUint64(1)
	if !cfg.WithdrawalLimit.Eq(uint256.NewInt(500)) {
		t.Fatal("clone aliased the original limit")
	}
}

func TestSanitizePayeeConfigRejectsNil(t *testing.T) {
	if _, err := SanitizePayeeConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestSplitGrossBounds(t *testing.T) {
	cases := []struct {
		name  string
		gross uint64
		bps   uint16
		fee   uint64
		net   uint64
	}{
		{name: "sub denominator truncates", gross: 9_999, bps: 250, fee: 0, net: 9_999},
		{name: "whole units", gross: 20_000, bps: 250, fee: 500, net: 19_500},
		{name: "zero rate", gross: 1_000_000, bps: 0, fee: 0, net: 1_000_000},
		{name: "full rate", gross: 10_000, bps: 10_000, fee: 10_000, net: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fee, net := splitGross(uint256.NewInt(tc.gross), tc.bps)
			if !fee.Eq(uint256.NewInt(tc.fee)) {
				t.Fatalf("expected fee %d, got %s", tc.fee, fee.Dec())
			}
			if !net.Eq(uint256.NewInt(tc.net)) {
				t.Fatalf("expected net %d, got %s", tc.net, net.Dec())
			}
		})
	}
}

func TestSplitGrossRateAboveDenominatorSaturatesNet(t *testing.T) {
	// A rate above the denominator would drive the net negative; it saturates
	// at zero instead.
	fee, net := splitGross(uint256.NewInt(20_000), 20_000)
	if !fee.Eq(uint256.NewInt(40_000)) {
		t.Fatalf("expected fee 40000, got %s", fee.Dec())
	}
	if !net.IsZero() {
		t.Fatalf("expected saturated net, got %s", net.Dec())
	}
}

func TestAuthorityTags(t *testing.T) {
	priv := PrivilegedAuthority()
	if !priv.Privileged() {
		t.Fatal("expected privileged tag")
	}
	if _, ok := priv.Account(); ok {
		t.Fatal("privileged authority must not carry an account")
	}

	addr := newTestAddress(0x07)
	acct := AccountAuthority(addr)
	if acct.Privileged() {
		t.Fatal("account authority must not be privileged")
	}
	got, ok := acct.Account()
	if !ok || got != addr {
		t.Fatalf("unexpected account: %v ok=%v", got, ok)
	}
}

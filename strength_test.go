package passy

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestEstimateStrengthEmpty(t *testing.T) {
	got := EstimateStrength("")
	want := StrengthReport{Label: TierWeak, Color: ColorWeak, Pct: 0}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestEstimateStrengthTiers(t *testing.T) {
	tests := []struct {
		name     string
		password string
		entropy  float64
		want     StrengthReport
	}{
		{"ten lowercase", "aaaaaaaaaa", math.Log2(26) * 10, StrengthReport{TierFair, ColorFair, 0.5}},
		{"twelve mixed", "Aa1!Aa1!Aa1!", math.Log2(94) * 12, StrengthReport{TierGood, ColorGood, 0.75}},
		{"short digits", "1234", math.Log2(10) * 4, StrengthReport{TierWeak, ColorWeak, 0.33}},
		{"long mixed", "Aa1!Aa1!Aa1!Aa1!", math.Log2(94) * 16, StrengthReport{TierStrong, ColorStrong, 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Entropy(tt.password); math.Abs(got-tt.entropy) > 1e-9 {
				t.Fatalf("entropy: expected %.4f, got %.4f", tt.entropy, got)
			}
			if got := EstimateStrength(tt.password); got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestEstimateStrengthThresholdBoundaries(t *testing.T) {
	// 32 symbols give exactly 5 bits per character, so these land on the
	// thresholds themselves. A tier includes its lower bound.
	tests := []struct {
		runes int
		want  Tier
	}{
		{6, TierWeak},    // 30
		{7, TierFair},    // 35
		{11, TierFair},   // 55
		{12, TierGood},   // 60
		{15, TierGood},   // 75
		{16, TierStrong}, // 80
	}
	for _, tt := range tests {
		pw := strings.Repeat("!", tt.runes)
		if got := EstimateStrength(pw).Label; got != tt.want {
			t.Fatalf("%d symbols (%.1f bits): expected %v, got %v", tt.runes, Entropy(pw), tt.want, got)
		}
	}
}

func TestEntropyCountsRunesAndTreatsNonASCIIAsSymbol(t *testing.T) {
	got := Entropy("ééé")
	want := math.Log2(symbolPoolSize) * 3
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %.4f, got %.4f", want, got)
	}
	if EstimateStrength("ééé").Label != TierWeak {
		t.Fatal("expected Weak")
	}
}

func TestEntropyRepeatsNotPenalised(t *testing.T) {
	// The estimate is class based; repetition does not lower it.
	if Entropy("aaaaaaaaaa") != Entropy("qwertyuiop") {
		t.Fatal("equal-length single-class passwords must score alike")
	}
}

func TestTierText(t *testing.T) {
	for _, tier := range []Tier{TierWeak, TierFair, TierGood, TierStrong} {
		text, err := tier.MarshalText()
		if err != nil {
			t.Fatalf("marshal %v: %v", tier, err)
		}
		var back Tier
		if err := back.UnmarshalText(text); err != nil || back != tier {
			t.Fatalf("round trip %q: got %v err %v", text, back, err)
		}
	}
	if _, err := Tier(9).MarshalText(); err == nil {
		t.Fatal("expected error for unknown tier")
	}
	var tier Tier
	if err := tier.UnmarshalText([]byte("Mediocre")); err == nil {
		t.Fatal("expected error for unknown name")
	}
	if got := Tier(9).String(); got != "Tier(9)" {
		t.Fatalf("unexpected String %q", got)
	}
}

func TestStrengthReportJSON(t *testing.T) {
	raw, err := json.Marshal(EstimateStrength("aaaaaaaaaa"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"label":"Fair","color":"bg-orange-500","pct":0.5}`
	if string(raw) != want {
		t.Fatalf("expected %s, got %s", want, raw)
	}
}

func TestEstimatePolicyStrength(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		entropy float64
		want    Tier
	}{
		{"default", DefaultPolicy(), math.Log2(86) * 16, TierStrong},
		{"empty falls back to alphanumeric", Policy{Length: 12}, math.Log2(62) * 12, TierGood},
		{"length clamped to one", Policy{Length: -3, UseDigits: true}, math.Log2(10), TierWeak},
		{"lone case ambiguous", Policy{Length: 10, UseLower: true, AvoidAmbiguous: true}, math.Log2(23) * 10, TierFair},
		{"digits ambiguous", Policy{Length: 10, UseDigits: true, AvoidAmbiguous: true}, math.Log2(8) * 10, TierWeak},
		{"fast path still deducts", Policy{Length: 10, UseLower: true, UseUpper: true, UseDigits: true, AvoidAmbiguous: true}, math.Log2(54) * 10, TierFair},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolicyEntropy(tt.policy); math.Abs(got-tt.entropy) > 1e-9 {
				t.Fatalf("entropy: expected %.4f, got %.4f", tt.entropy, got)
			}
			if got := EstimatePolicyStrength(tt.policy).Label; got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

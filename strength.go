package passy

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Tier is a discrete strength class.
type Tier uint8

const (
	TierWeak Tier = iota
	TierFair
	TierGood
	TierStrong
)

var tierNames = [...]string{"Weak", "Fair", "Good", "Strong"}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

func (t Tier) MarshalText() ([]byte, error) {
	if int(t) >= len(tierNames) {
		return nil, fmt.Errorf("passy: unknown tier %d", uint8(t))
	}
	return []byte(tierNames[t]), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	for i, name := range tierNames {
		if string(text) == name {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("passy: unknown tier %q", text)
}

// Color tokens are the UI classes the desktop shell paints the meter with.
const (
	ColorWeak   = "bg-red-500"
	ColorFair   = "bg-orange-500"
	ColorGood   = "bg-yellow-500"
	ColorStrong = "bg-green-600"
)

// Pool sizes added per character class present.
const (
	lowerPoolSize  = 26
	upperPoolSize  = 26
	digitPoolSize  = 10
	symbolPoolSize = 32
)

// Entropy thresholds in bits. A tier covers [its threshold, next threshold).
const (
	FairThreshold   = 35.0
	GoodThreshold   = 60.0
	StrongThreshold = 80.0
)

// StrengthReport is the result of a strength estimate.
type StrengthReport struct {
	Label Tier    `json:"label"`
	Color string  `json:"color"`
	Pct   float64 `json:"pct"`
}

type tierBand struct {
	below  float64
	report StrengthReport
}

// tierTable is read-only; the first band whose upper bound exceeds the
// entropy wins.
var tierTable = [...]tierBand{
	{below: FairThreshold, report: StrengthReport{Label: TierWeak, Color: ColorWeak, Pct: 0.33}},
	{below: GoodThreshold, report: StrengthReport{Label: TierFair, Color: ColorFair, Pct: 0.5}},
	{below: StrongThreshold, report: StrengthReport{Label: TierGood, Color: ColorGood, Pct: 0.75}},
	{below: math.Inf(1), report: StrengthReport{Label: TierStrong, Color: ColorStrong, Pct: 1.0}},
}

// emptyReport is returned for the empty password; it is not derived from
// the entropy formula.
var emptyReport = StrengthReport{Label: TierWeak, Color: ColorWeak, Pct: 0}

// EstimateStrength classifies an arbitrary password by its entropy estimate.
// The classes are re-derived from the text; the empty string is always
// {Weak, bg-red-500, 0}.
func EstimateStrength(password string) StrengthReport {
	if password == "" {
		return emptyReport
	}
	return classify(Entropy(password))
}

// Entropy returns log2(pool) * rune count, where pool sums the sizes of the
// character classes present in password.
//
// This is a coarse proxy: repeats, dictionary words and keyboard patterns
// are not considered. See Advise for a pattern-aware opinion.
func Entropy(password string) float64 {
	if password == "" {
		return 0
	}
	pool := classesOf(password).poolSize()
	return math.Log2(float64(pool)) * float64(utf8.RuneCountInString(password))
}

func classify(entropy float64) StrengthReport {
	for _, band := range tierTable {
		if entropy < band.below {
			return band.report
		}
	}
	return tierTable[len(tierTable)-1].report
}

type charClasses uint8

const (
	classLower charClasses = 1 << iota
	classUpper
	classDigit
	classSymbol
)

// classesOf scans password for ASCII lower, upper and digit characters.
// Anything else, printable or not, counts as a symbol.
func classesOf(password string) charClasses {
	var c charClasses
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			c |= classLower
		case r >= 'A' && r <= 'Z':
			c |= classUpper
		case r >= '0' && r <= '9':
			c |= classDigit
		default:
			c |= classSymbol
		}
	}
	return c
}

func (c charClasses) poolSize() int {
	pool := 0
	if c&classLower != 0 {
		pool += lowerPoolSize
	}
	if c&classUpper != 0 {
		pool += upperPoolSize
	}
	if c&classDigit != 0 {
		pool += digitPoolSize
	}
	if c&classSymbol != 0 {
		pool += symbolPoolSize
	}
	if pool == 0 {
		return 1
	}
	return pool
}

// Rough ambiguity deductions used by the policy preview.
const (
	alphaAmbiguousDeduction = 6
	caseAmbiguousDeduction  = 3
	digitAmbiguousDeduction = 2
)

// EstimatePolicyStrength previews the strength of passwords a policy would
// produce, before any password exists. It sizes the pool from the enabled
// classes rather than from text.
func EstimatePolicyStrength(p Policy) StrengthReport {
	return classify(PolicyEntropy(p))
}

// PolicyEntropy is the entropy estimate behind EstimatePolicyStrength.
// A policy with no classes is previewed as the alphanumeric fallback it
// generates from.
func PolicyEntropy(p Policy) float64 {
	if !p.hasClasses() {
		p = Policy{Length: p.Length, UseLower: true, UseUpper: true, UseDigits: true}
	}

	var c charClasses
	if p.UseLower {
		c |= classLower
	}
	if p.UseUpper {
		c |= classUpper
	}
	if p.UseDigits {
		c |= classDigit
	}
	if p.UseSymbols {
		c |= classSymbol
	}
	pool := c.poolSize()

	if p.AvoidAmbiguous {
		deduction := 0
		switch {
		case p.UsesAlpha():
			deduction += alphaAmbiguousDeduction
		case p.UseLower || p.UseUpper:
			deduction += caseAmbiguousDeduction
		}
		if p.UseDigits {
			deduction += digitAmbiguousDeduction
		}
		pool = max(1, pool-deduction)
	}

	return math.Log2(float64(pool)) * float64(p.ClampedLength())
}

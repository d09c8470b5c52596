package passy

import (
	zxcvbn "github.com/ccojocar/zxcvbn-go"
)

const (
	weakAdviceScore = 3
	// maxAdviceRunes bounds the pattern search, which grows quickly with
	// input length.
	maxAdviceRunes = 256
)

// Advice is a pattern-aware second opinion on a password. It never changes
// the tier reported by EstimateStrength.
type Advice struct {
	Score     int     `json:"score"`
	Entropy   float64 `json:"entropy"`
	CrackTime string  `json:"crack_time"`
	Weak      bool    `json:"weak"`
}

// Advise scores password with zxcvbn, penalising dictionary words, repeats,
// sequences and any of the caller-supplied hints (user names, site names).
// Only the first 256 runes are analysed.
func Advise(password string, hints ...string) Advice {
	if password == "" {
		return Advice{Weak: true}
	}
	if runes := []rune(password); len(runes) > maxAdviceRunes {
		password = string(runes[:maxAdviceRunes])
	}

	m := zxcvbn.PasswordStrength(password, hints)
	return Advice{
		Score:     m.Score,
		Entropy:   m.Entropy,
		CrackTime: m.CrackTimeDisplay,
		Weak:      m.Score < weakAdviceScore,
	}
}

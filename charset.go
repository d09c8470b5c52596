package passy

import "strings"

const (
	lowerAlphabet = "abcdefghijklmnopqrstuvwxyz"
	upperAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitAlphabet = "0123456789"

	// SymbolAlphabet is the symbol class, in sampling order.
	SymbolAlphabet = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"

	// AmbiguousChars are removed from the charset when a policy sets
	// AvoidAmbiguous.
	AmbiguousChars = "ilIL|1oO0S52"

	// AlphanumericAlphabet is both the fast-path alphabet and the fallback
	// charset for policies that enable no class.
	AlphanumericAlphabet = lowerAlphabet + upperAlphabet + digitAlphabet
)

// Charset is the ordered collection of characters eligible for sampling.
// Order follows class concatenation; duplicates are kept.
type Charset []rune

// BuildCharset resolves a policy into the characters the sampler draws from.
// The result is never empty.
func BuildCharset(p Policy) Charset {
	cs, _ := resolveCharset(p)
	return cs
}

// SamplingCharset returns the characters GeneratePassword actually draws
// from for p. It differs from BuildCharset on the fast path, which uses the
// full alphanumeric alphabet and ignores AvoidAmbiguous.
func SamplingCharset(p Policy) Charset {
	if p.fastPath() {
		return Charset(AlphanumericAlphabet)
	}
	return BuildCharset(p)
}

// resolveCharset is BuildCharset plus whether the alphanumeric fallback was
// used.
func resolveCharset(p Policy) (Charset, bool) {
	var b strings.Builder
	if p.UseLower {
		b.WriteString(lowerAlphabet)
	}
	if p.UseUpper {
		b.WriteString(upperAlphabet)
	}
	if p.UseDigits {
		b.WriteString(digitAlphabet)
	}
	if p.UseSymbols {
		b.WriteString(SymbolAlphabet)
	}

	cs := Charset(b.String())
	if p.AvoidAmbiguous {
		cs = cs.without(AmbiguousChars)
	}
	if len(cs) == 0 {
		// Ambiguous filtering is not reapplied to the fallback.
		return Charset(AlphanumericAlphabet), true
	}
	return cs, false
}

// Len returns the number of characters in the set.
func (c Charset) Len() int {
	return len(c)
}

// Contains reports whether r is a member of the set.
func (c Charset) Contains(r rune) bool {
	for _, x := range c {
		if x == r {
			return true
		}
	}
	return false
}

func (c Charset) String() string {
	return string(c)
}

// without returns the members of c that are not in drop, keeping order.
func (c Charset) without(drop string) Charset {
	out := make(Charset, 0, len(c))
	for _, r := range c {
		if !strings.ContainsRune(drop, r) {
			out = append(out, r)
		}
	}
	return out
}

package passy

import "strings"

// GeneratePassword draws a password for p from a fresh ChaCha20 source.
// It never fails: the length is clamped and an empty class selection falls
// back to the alphanumeric charset.
func GeneratePassword(p Policy) string {
	return Generate(p, NewChaChaSource())
}

// Generate draws a password for p from src. A nil src uses a fresh
// ChaChaSource.
func Generate(p Policy, src Source) string {
	if src == nil {
		src = NewChaChaSource()
	}
	return generate(p, src).password
}

// generation carries what the engine records about a draw. It never leaves
// the package with the password attached.
type generation struct {
	password    string
	length      int
	fastPath    bool
	fallback    bool
	charsetSize int
}

func generate(p Policy, src Source) generation {
	n := p.ClampedLength()
	if p.fastPath() {
		return generation{
			password:    sampleAlphanumeric(src, n),
			length:      n,
			fastPath:    true,
			charsetSize: len(AlphanumericAlphabet),
		}
	}

	cs, fallback := resolveCharset(p)
	return generation{
		password:    sampleCharset(src, cs, n),
		length:      n,
		fallback:    fallback,
		charsetSize: len(cs),
	}
}

// sampleAlphanumeric is the byte-oriented path for the common
// letters-and-digits policy.
func sampleAlphanumeric(src Source, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = AlphanumericAlphabet[src.IntN(len(AlphanumericAlphabet))]
	}
	return string(buf)
}

func sampleCharset(src Source, cs Charset, n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteRune(cs[src.IntN(len(cs))])
	}
	return b.String()
}

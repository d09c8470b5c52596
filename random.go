package passy

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/bits"
	mathrand "math/rand/v2"
	"sync/atomic"

	"golang.org/x/crypto/chacha20"
)

// Source is the randomness provider behind the sampler.
//
// IntN returns a uniformly distributed int in [0, n). n is always > 0 when
// called by this package. Implementations need not be safe for concurrent
// use unless documented; the package never shares a Source between calls.
type Source interface {
	IntN(n int) int
}

// SourceFactory returns a fresh Source for one generation call.
type SourceFactory func() Source

const (
	// SourceChaCha selects NewChaChaSource.
	SourceChaCha = "chacha"
	// SourceCrypto selects NewCryptoSource.
	SourceCrypto = "crypto"
	// SourceSeeded selects deterministic, seeded PCG sources.
	SourceSeeded = "seeded"
)

// NewSourceFactory returns the factory for a named source kind. seed is only
// used by SourceSeeded: each source from that factory is seeded with seed+n
// for the n-th call, so a run is reproducible but calls do not repeat.
func NewSourceFactory(kind string, seed uint64) (SourceFactory, error) {
	switch kind {
	case "", SourceChaCha:
		return func() Source { return NewChaChaSource() }, nil
	case SourceCrypto:
		src := NewCryptoSource()
		return func() Source { return src }, nil
	case SourceSeeded:
		var calls atomic.Uint64
		return func() Source {
			return NewSeededSource(seed + calls.Add(1) - 1)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
	}
}

const chachaBufferSize = 512

// ChaChaSource draws from a ChaCha20 keystream keyed from the OS CSPRNG.
// It is the per-call default source and is not safe for concurrent use.
type ChaChaSource struct {
	cipher *chacha20.Cipher
	buf    [chachaBufferSize]byte
	off    int
}

// NewChaChaSource returns a source with a fresh random key.
func NewChaChaSource() *ChaChaSource {
	var key [chacha20.KeySize]byte
	var nonce [chacha20.NonceSize]byte
	_, _ = rand.Read(key[:]) // crypto/rand.Read does not return errors since Go 1.24

	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		panic("passy: chacha20 init: " + err.Error())
	}
	return &ChaChaSource{cipher: c, off: chachaBufferSize}
}

// Uint64 returns the next 64 keystream bits.
func (s *ChaChaSource) Uint64() uint64 {
	if s.off+8 > len(s.buf) {
		clear(s.buf[:])
		s.cipher.XORKeyStream(s.buf[:], s.buf[:])
		s.off = 0
	}
	v := binary.LittleEndian.Uint64(s.buf[s.off:])
	s.off += 8
	return v
}

func (s *ChaChaSource) IntN(n int) int {
	return boundedInt(s, n)
}

// CryptoSource reads the OS CSPRNG for every draw. It is safe for
// concurrent use.
type CryptoSource struct{}

func NewCryptoSource() CryptoSource {
	return CryptoSource{}
}

func (CryptoSource) Uint64() uint64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

func (s CryptoSource) IntN(n int) int {
	return boundedInt(s, n)
}

// SeededSource is a deterministic PCG generator. Use it for tests and
// reproducible runs, never for secrets.
type SeededSource struct {
	r *mathrand.Rand
}

func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{r: mathrand.New(mathrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededSource) IntN(n int) int {
	return s.r.IntN(n)
}

type uint64Source interface {
	Uint64() uint64
}

// boundedInt maps 64 random bits onto [0, n) without modulo bias
// (Lemire's multiply-and-reject).
func boundedInt(src uint64Source, n int) int {
	if n <= 0 {
		panic("passy: IntN called with n <= 0")
	}
	bound := uint64(n)
	hi, lo := bits.Mul64(src.Uint64(), bound)
	if lo < bound {
		threshold := -bound % bound
		for lo < threshold {
			hi, lo = bits.Mul64(src.Uint64(), bound)
		}
	}
	return int(hi)
}

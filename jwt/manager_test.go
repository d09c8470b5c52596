package jwt

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newHSManager(t *testing.T, mutate func(*Config)) *Manager {
	t.Helper()
	cfg := Config{Secret: testSecret, TTL: 5 * time.Minute}
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func newEdKeys(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate ed25519 key: %v", err)
	}
	return pub, priv
}

func signRaw(t *testing.T, method gjwt.SigningMethod, key any, claims BridgeClaims) string {
	t.Helper()
	tok, err := gjwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func validClaims(now time.Time) BridgeClaims {
	return BridgeClaims{RegisteredClaims: gjwt.RegisteredClaims{
		Subject:   "shell",
		Issuer:    defaultIssuer,
		Audience:  gjwt.ClaimStrings{defaultAudience},
		IssuedAt:  gjwt.NewNumericDate(now),
		ExpiresAt: gjwt.NewNumericDate(now.Add(time.Minute)),
	}}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := newHSManager(t, nil)

	tok, err := m.Issue("shell-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "shell-1" {
		t.Fatalf("expected subject shell-1, got %q", claims.Subject)
	}
	if claims.ID == "" {
		t.Fatal("expected a token id")
	}
}

func TestIssueRejectsEmptySubject(t *testing.T) {
	m := newHSManager(t, nil)
	if _, err := m.Issue(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewManagerValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero ttl", Config{Secret: testSecret}},
		{"ttl too long", Config{Secret: testSecret, TTL: 48 * time.Hour}},
		{"short secret", Config{Secret: []byte("short"), TTL: time.Minute}},
		{"negative leeway", Config{Secret: testSecret, TTL: time.Minute, Leeway: -time.Second}},
		{"huge leeway", Config{Secret: testSecret, TTL: time.Minute, Leeway: time.Hour}},
		{"unknown method", Config{SigningMethod: "rs512", Secret: testSecret, TTL: time.Minute}},
		{"ed25519 without keys", Config{SigningMethod: MethodEd25519, TTL: time.Minute}},
		{"ed25519 bad key", Config{SigningMethod: MethodEd25519, PublicKey: []byte("nope"), TTL: time.Minute}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewManager(tc.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestVerifyRejectsWrongAlgorithm(t *testing.T) {
	_, priv := newEdKeys(t)
	m := newHSManager(t, nil)

	tok := signRaw(t, gjwt.SigningMethodEdDSA, priv, validClaims(time.Now()))
	if _, err := m.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected wrong algorithm to be rejected, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := newHSManager(t, nil)

	tok := signRaw(t, gjwt.SigningMethodHS256, []byte("another-secret-another-secret!!"), validClaims(time.Now()))
	if _, err := m.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected signature failure, got %v", err)
	}
}

func TestVerifyIssuerAudienceSubject(t *testing.T) {
	m := newHSManager(t, nil)
	now := time.Now()

	wrongIssuer := validClaims(now)
	wrongIssuer.Issuer = "other"
	if _, err := m.Verify(signRaw(t, gjwt.SigningMethodHS256, testSecret, wrongIssuer)); err == nil {
		t.Fatal("expected wrong issuer to fail")
	}

	wrongAudience := validClaims(now)
	wrongAudience.Audience = gjwt.ClaimStrings{"other"}
	if _, err := m.Verify(signRaw(t, gjwt.SigningMethodHS256, testSecret, wrongAudience)); err == nil {
		t.Fatal("expected wrong audience to fail")
	}

	noSubject := validClaims(now)
	noSubject.Subject = ""
	if _, err := m.Verify(signRaw(t, gjwt.SigningMethodHS256, testSecret, noSubject)); err == nil {
		t.Fatal("expected missing subject to fail")
	}

	noExpiry := validClaims(now)
	noExpiry.ExpiresAt = nil
	if _, err := m.Verify(signRaw(t, gjwt.SigningMethodHS256, testSecret, noExpiry)); err == nil {
		t.Fatal("expected missing exp to fail")
	}
}

func TestVerifyExpiryAndLeeway(t *testing.T) {
	m := newHSManager(t, func(c *Config) { c.Leeway = 30 * time.Second })
	now := time.Now()

	within := validClaims(now)
	within.IssuedAt = gjwt.NewNumericDate(now.Add(-time.Minute))
	within.ExpiresAt = gjwt.NewNumericDate(now.Add(-15 * time.Second))
	if _, err := m.Verify(signRaw(t, gjwt.SigningMethodHS256, testSecret, within)); err != nil {
		t.Fatalf("expected token within leeway to pass: %v", err)
	}

	expired := validClaims(now)
	expired.IssuedAt = gjwt.NewNumericDate(now.Add(-3 * time.Minute))
	expired.ExpiresAt = gjwt.NewNumericDate(now.Add(-2 * time.Minute))
	_, err := m.Verify(signRaw(t, gjwt.SigningMethodHS256, testSecret, expired))
	if !errors.Is(err, ErrTokenExpired) || !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrTokenExpired wrapped in ErrInvalidToken, got %v", err)
	}
}

func TestVerifyUsesClock(t *testing.T) {
	m := newHSManager(t, func(c *Config) { c.TTL = time.Minute })
	tok, err := m.Issue("shell")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := m.Verify(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected expiry after TTL, got %v", err)
	}
}

func TestEd25519SplitKeys(t *testing.T) {
	pub, priv := newEdKeys(t)

	signer, err := NewManager(Config{SigningMethod: MethodEd25519, PrivateKey: priv, TTL: time.Minute})
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	verifier, err := NewManager(Config{SigningMethod: MethodEd25519, PublicKey: pub, TTL: time.Minute})
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}

	tok, err := signer.Issue("shell")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Verify(tok); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if _, err := verifier.Issue("shell"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("public-key-only manager must not sign, got %v", err)
	}

	otherPub, _ := newEdKeys(t)
	stranger, _ := NewManager(Config{SigningMethod: MethodEd25519, PublicKey: otherPub, TTL: time.Minute})
	if _, err := stranger.Verify(tok); err == nil {
		t.Fatal("expected verification with a different key to fail")
	}
}

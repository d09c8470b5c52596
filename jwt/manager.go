package jwt

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SigningMethod selects the bridge token algorithm.
type SigningMethod string

const (
	MethodHS256   SigningMethod = "hs256"
	MethodEd25519 SigningMethod = "ed25519"
)

const (
	maxLeeway       = 2 * time.Minute
	maxTTL          = 24 * time.Hour
	defaultIssuer   = "passy-shell"
	defaultAudience = "passy-bridge"
)

// Config configures a [Manager]. For HS256 Secret is both the signing and
// verification key. For Ed25519 PrivateKey signs and PublicKey verifies;
// either may be absent when the Manager only does the other half.
type Config struct {
	SigningMethod SigningMethod
	Secret        []byte
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Audience      string
	TTL           time.Duration
	Leeway        time.Duration
	MaxFutureIAT  time.Duration
}

// BridgeClaims are the claims of a bridge token. Subject names the calling
// shell instance and doubles as the rate-limit key.
type BridgeClaims struct {
	jwt.RegisteredClaims
}

// Manager is safe for concurrent use.
type Manager struct {
	config Config
	now    func() time.Time
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.SigningMethod == "" {
		cfg.SigningMethod = MethodHS256
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaultIssuer
	}
	if cfg.Audience == "" {
		cfg.Audience = defaultAudience
	}
	if cfg.TTL <= 0 || cfg.TTL > maxTTL {
		return nil, fmt.Errorf("%w: TTL must be in (0, %s]", ErrInvalidConfig, maxTTL)
	}
	if cfg.Leeway < 0 || cfg.Leeway > maxLeeway {
		return nil, fmt.Errorf("%w: Leeway must be in [0, %s]", ErrInvalidConfig, maxLeeway)
	}
	if cfg.MaxFutureIAT == 0 {
		cfg.MaxFutureIAT = time.Minute
	}
	if cfg.MaxFutureIAT < 0 {
		return nil, fmt.Errorf("%w: MaxFutureIAT must be >= 0", ErrInvalidConfig)
	}

	switch cfg.SigningMethod {
	case MethodHS256:
		if len(cfg.Secret) < 16 {
			return nil, fmt.Errorf("%w: hs256 secret must be at least 16 bytes", ErrInvalidConfig)
		}
	case MethodEd25519:
		if len(cfg.PrivateKey) > 0 {
			if _, err := parseEdPrivateKey(cfg.PrivateKey); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
		}
		if len(cfg.PublicKey) > 0 {
			if _, err := parseEdPublicKey(cfg.PublicKey); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
		}
		if len(cfg.PrivateKey) == 0 && len(cfg.PublicKey) == 0 {
			return nil, fmt.Errorf("%w: ed25519 requires a private or public key", ErrInvalidConfig)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported signing method %q", ErrInvalidConfig, cfg.SigningMethod)
	}

	return &Manager{config: cfg, now: time.Now}, nil
}

// Issue mints a token for subject valid for the configured TTL.
func (m *Manager) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	now := m.now()
	claims := BridgeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    m.config.Issuer,
			Audience:  jwt.ClaimStrings{m.config.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
		},
	}

	signKey, err := m.signKey()
	if err != nil {
		return "", err
	}
	return jwt.NewWithClaims(m.method(), claims).SignedString(signKey)
}

// Verify parses and validates tokenStr. Every failure matches
// ErrInvalidToken; expiry additionally matches ErrTokenExpired.
func (m *Manager) Verify(tokenStr string) (*BridgeClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{m.method().Alg()}),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}

	token, err := jwt.NewParser(options...).ParseWithClaims(tokenStr, &BridgeClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != m.method().Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return m.verifyKey()
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*BridgeClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if claims.IssuedAt != nil && claims.IssuedAt.After(m.now().Add(m.config.MaxFutureIAT)) {
		return nil, fmt.Errorf("%w: iat too far in the future", ErrInvalidToken)
	}

	return claims, nil
}

func (m *Manager) method() jwt.SigningMethod {
	if m.config.SigningMethod == MethodEd25519 {
		return jwt.SigningMethodEdDSA
	}
	return jwt.SigningMethodHS256
}

func (m *Manager) signKey() (any, error) {
	if m.config.SigningMethod == MethodEd25519 {
		if len(m.config.PrivateKey) == 0 {
			return nil, fmt.Errorf("%w: no ed25519 private key to sign with", ErrInvalidConfig)
		}
		return parseEdPrivateKey(m.config.PrivateKey)
	}
	return m.config.Secret, nil
}

func (m *Manager) verifyKey() (any, error) {
	if m.config.SigningMethod == MethodEd25519 {
		if len(m.config.PublicKey) == 0 {
			key, err := parseEdPrivateKey(m.config.PrivateKey)
			if err != nil {
				return nil, err
			}
			return key.Public(), nil
		}
		return parseEdPublicKey(m.config.PublicKey)
	}
	return m.config.Secret, nil
}

func parseEdPrivateKey(key []byte) (ed25519.PrivateKey, error) {
	if len(key) == ed25519.PrivateKeySize {
		return ed25519.PrivateKey(key), nil
	}
	parsed, err := jwt.ParseEdPrivateKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 private key")
	}
	edKey, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("invalid ed25519 private key type")
	}
	return edKey, nil
}

func parseEdPublicKey(key []byte) (ed25519.PublicKey, error) {
	if len(key) == ed25519.PublicKeySize {
		return ed25519.PublicKey(key), nil
	}
	parsed, err := jwt.ParseEdPublicKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 public key")
	}
	edKey, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("invalid ed25519 public key type")
	}
	return edKey, nil
}

package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// DefaultLeeway tolerates clock skew between issuer and verifier.
const DefaultLeeway = 30 * time.Second

// Issuer signs tokens with its active signer and verifies tokens signed by
// any key it has seen. Retired keys stay verifiable until removed.
type Issuer struct {
	name   string
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time

	mu     sync.RWMutex
	active *Signer
	keys   map[string]ed25519.PublicKey
	order  []string
}

type Option func(*Issuer)

func WithTTL(d time.Duration) Option {
	return func(i *Issuer) {
		if d > 0 {
			i.ttl = d
		}
	}
}

func WithLeeway(d time.Duration) Option {
	return func(i *Issuer) { i.leeway = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer returns an Issuer named name (used for iss and aud) signing with s.
func NewIssuer(name string, s *Signer, opts ...Option) *Issuer {
	i := &Issuer{
		name:   name,
		ttl:    DefaultSessionTTL,
		leeway: DefaultLeeway,
		now:    time.Now,
		keys:   make(map[string]ed25519.PublicKey),
	}
	for _, o := range opts {
		o(i)
	}
	i.Rotate(s)
	return i
}

// Rotate makes s the active signer. Previous keys remain valid for
// verification.
func (i *Issuer) Rotate(s *Signer) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.active = s
	if _, ok := i.keys[s.kid]; !ok {
		i.keys[s.kid] = s.priv.Public().(ed25519.PublicKey)
		i.order = append(i.order, s.kid)
	}
}

// Retire drops kid from the verification set. The active key cannot be retired.
func (i *Issuer) Retire(kid string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.active.kid == kid {
		return false
	}
	if _, ok := i.keys[kid]; !ok {
		return false
	}
	delete(i.keys, kid)
	i.order = slices.DeleteFunc(i.order, func(k string) bool { return k == kid })
	return true
}

func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a session token for the agent and returns it with its expiry.
func (i *Issuer) Issue(agentID, role, name string, amr []string) (string, time.Time, error) {
	i.mu.RLock()
	s := i.active
	i.mu.RUnlock()

	c := NewSessionClaims(agentID, role, name, amr, i.name, i.ttl, i.now().UTC())
	tok := jwt.NewWithClaims(jwt.SigningMethodEdDSA, c)
	tok.Header["kid"] = s.kid

	signed, err := tok.SignedString(s.priv)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, c.ExpiresAt.Time, nil
}

// Verify checks signature, issuer, audience and validity window of raw.
func (i *Issuer) Verify(raw string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithIssuer(i.name),
		jwt.WithAudience(i.name),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(i.leeway),
		jwt.WithTimeFunc(i.now),
	)

	var c Claims
	_, err := parser.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		i.mu.RLock()
		defer i.mu.RUnlock()
		pub, ok := i.keys[kid]
		if !ok {
			return nil, ErrUnknownKID
		}
		return pub, nil
	})
	if err != nil {
		return Claims{}, mapParseErr(err)
	}
	if c.Subject == "" {
		return Claims{}, ErrMalformed
	}
	return c, nil
}

// JWKS returns the public keys currently accepted by Verify.
func (i *Issuer) JWKS() JWKS {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := JWKS{Keys: make([]JWK, 0, len(i.order))}
	for _, kid := range i.order {
		out.Keys = append(out.Keys, newJWK(kid, i.keys[kid]))
	}
	return out
}

func mapParseErr(err error) error {
	switch {
	case errors.Is(err, ErrUnknownKID):
		return ErrUnknownKID
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrIssuer
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}

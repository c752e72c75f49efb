package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs access-token claims into compact JWT strings.
type Signer struct {
	key ed25519.PrivateKey
	pub ed25519.PublicKey
}

// Verifier validates JWTs produced by a Signer and enforces claim requirements.
type Verifier struct {
	pub    ed25519.PublicKey
	issuer string
}

// NewKeyPair generates an ephemeral Ed25519 signer/verifier pair. Tokens
// signed before a restart become unverifiable, which is acceptable for the
// short access-token TTLs this service issues.
func NewKeyPair(issuer string) (*Signer, *Verifier, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("jwtx: generate key: %w", err)
	}

	return &Signer{key: priv, pub: pub}, &Verifier{pub: pub, issuer: issuer}, nil
}

// Sign turns claims into a signed JWT string.
func (s *Signer) Sign(claims Claims) (string, error) {
	if s.key == nil {
		return "", errors.New("jwtx: nil Ed25519 key")
	}
	return jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(s.key)
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.pub, nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("jwtx: invalid token claims")
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return nil, err
	}

	return claims, nil
}

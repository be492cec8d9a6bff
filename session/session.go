// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/mitv-server/operators"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken covers missing, malformed, expired and
	// signature-mismatched tokens alike.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// TokenTTL is how long an issued token stays valid. There is no refresh;
// expiry means re-login.
const TokenTTL = 7 * 24 * time.Hour

// dummyHash is a well-formed bcrypt hash compared against when the username
// is unknown, so both failure paths cost one bcrypt verification.
var dummyHash = []byte("$2a$10$K8gHXqrFdFvMwJBG0VlJGuAGz3FwBmTm8xnNQblN2tCxrQgPLmwHa")

// Claims binds the operator identity into the signed token.
type Claims struct {
	jwt.RegisteredClaims
	OperatorID int64  `json:"id"`
	Username   string `json:"username"`
}

// Issuer verifies operator credentials and mints/validates bearer tokens.
type Issuer struct {
	ops    *operators.Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(ops *operators.Store, secret string) *Issuer {
	return &Issuer{
		ops:    ops,
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
}

// Login checks the credentials and returns a signed token on success.
func (i *Issuer) Login(ctx context.Context, username, password string) (string, error) {
	op, err := i.ops.FindByUsername(ctx, username)
	if err != nil {
		// Burn a compare so unknown usernames take as long as bad passwords.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))

		if errors.Is(err, operators.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   op.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		OperatorID: op.ID,
		Username:   op.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token and returns its claims.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

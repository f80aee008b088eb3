// Package auth verifies admin bearer tokens for the timetable
// management API. Tokens are HS256 JWTs whose subject is looked up in
// the user_roles table.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	domerrors "github.com/campuspal/schedule-assistant/internal/errors"
)

// RoleStore resolves a user ID to their stored role.
type RoleStore interface {
	GetUserRole(ctx context.Context, userID string) (string, error)
}

// Verifier checks admin tokens against the signing secret and the role
// table.
type Verifier struct {
	secret []byte
	store  RoleStore
}

func NewVerifier(secret string, store RoleStore) *Verifier {
	return &Verifier{secret: []byte(secret), store: store}
}

// Enabled reports whether a signing secret is configured. Without one
// the admin API stays off.
func (v *Verifier) Enabled() bool {
	return len(v.secret) > 0
}

// VerifyAdmin validates the token signature and checks that its
// subject holds the admin role. It returns the subject's user ID on
// success and ErrUnauthorized for any token or role problem.
func (v *Verifier) VerifyAdmin(ctx context.Context, tokenString string) (string, error) {
	if !v.Enabled() {
		return "", domerrors.ErrUnauthorized
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domerrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domerrors.ErrUnauthorized
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return "", domerrors.ErrUnauthorized
	}

	role, err := v.store.GetUserRole(ctx, userID)
	if err != nil {
		if errors.Is(err, domerrors.ErrNotFound) {
			return "", domerrors.ErrUnauthorized
		}
		return "", fmt.Errorf("look up role for %s: %w", userID, err)
	}
	if role != "admin" {
		return "", domerrors.ErrUnauthorized
	}
	return userID, nil
}

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	domerrors "github.com/campuspal/schedule-assistant/internal/errors"
)

const testSecret = "test-secret"

type fakeRoleStore struct {
	roles map[string]string
	err   error
}

func (f *fakeRoleStore) GetUserRole(_ context.Context, userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	role, ok := f.roles[userID]
	if !ok {
		return "", domerrors.ErrNotFound
	}
	return role, nil
}

func signToken(t *testing.T, secret, sub string, expiry time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifyAdmin(t *testing.T) {
	ctx := context.Background()
	store := &fakeRoleStore{roles: map[string]string{
		"admin-1":   "admin",
		"student-1": "student",
	}}
	v := NewVerifier(testSecret, store)

	t.Run("valid admin token", func(t *testing.T) {
		userID, err := v.VerifyAdmin(ctx, signToken(t, testSecret, "admin-1", time.Hour))
		if err != nil {
			t.Fatalf("VerifyAdmin() error = %v", err)
		}
		if userID != "admin-1" {
			t.Errorf("VerifyAdmin() = %q, want admin-1", userID)
		}
	})

	t.Run("student role rejected", func(t *testing.T) {
		if _, err := v.VerifyAdmin(ctx, signToken(t, testSecret, "student-1", time.Hour)); !errors.Is(err, domerrors.ErrUnauthorized) {
			t.Errorf("VerifyAdmin() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("unknown user rejected", func(t *testing.T) {
		if _, err := v.VerifyAdmin(ctx, signToken(t, testSecret, "ghost", time.Hour)); !errors.Is(err, domerrors.ErrUnauthorized) {
			t.Errorf("VerifyAdmin() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		if _, err := v.VerifyAdmin(ctx, signToken(t, "other-secret", "admin-1", time.Hour)); !errors.Is(err, domerrors.ErrUnauthorized) {
			t.Errorf("VerifyAdmin() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		if _, err := v.VerifyAdmin(ctx, signToken(t, testSecret, "admin-1", -time.Hour)); !errors.Is(err, domerrors.ErrUnauthorized) {
			t.Errorf("VerifyAdmin() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		if _, err := v.VerifyAdmin(ctx, "not.a.jwt"); !errors.Is(err, domerrors.ErrUnauthorized) {
			t.Errorf("VerifyAdmin() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("missing subject rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		if _, err := v.VerifyAdmin(ctx, signed); !errors.Is(err, domerrors.ErrUnauthorized) {
			t.Errorf("VerifyAdmin() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("disabled without secret", func(t *testing.T) {
		disabled := NewVerifier("", store)
		if disabled.Enabled() {
			t.Error("Enabled() = true without secret")
		}
		if _, err := disabled.VerifyAdmin(ctx, signToken(t, testSecret, "admin-1", time.Hour)); !errors.Is(err, domerrors.ErrUnauthorized) {
			t.Errorf("VerifyAdmin() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		broken := NewVerifier(testSecret, &fakeRoleStore{err: errors.New("db down")})
		_, err := broken.VerifyAdmin(ctx, signToken(t, testSecret, "admin-1", time.Hour))
		if err == nil || errors.Is(err, domerrors.ErrUnauthorized) {
			t.Errorf("VerifyAdmin() error = %v, want wrapped store error", err)
		}
	})
}

package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"laundry-orders/internal/redisx"
)

// AdminSessions issues and checks cookie-carried admin session tokens.
// Tokens live in redis so a restart does not log the admin out.
type AdminSessions struct {
	Redis    *redis.Client
	Username string
	Password string
}

// Login verifies the configured admin credentials and mints a session token.
func (a *AdminSessions) Login(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.Password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}
	token := uuid.NewString()
	key := fmt.Sprintf(redisx.KeyAdminSession, token)
	if err := a.Redis.Set(ctx, key, username, redisx.TTLAdminSession).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Check reports whether the token maps to a live admin session.
func (a *AdminSessions) Check(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return redisx.Exists(ctx, a.Redis, fmt.Sprintf(redisx.KeyAdminSession, token))
}

// Logout destroys the session token.
func (a *AdminSessions) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.Redis.Del(ctx, fmt.Sprintf(redisx.KeyAdminSession, token)).Err()
}

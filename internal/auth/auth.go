package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when the provided credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAlreadyExists is returned when the username or email is taken.
	ErrAlreadyExists = errors.New("username or email already exists")
)

// Clients stores customer accounts in postgres.
type Clients struct{ DB *pgxpool.Pool }

// Register creates a new client account with a bcrypt password hash.
func (c *Clients) Register(ctx context.Context, username, email, password string) error {
	var existing string
	err := c.DB.QueryRow(ctx,
		`SELECT username FROM clients WHERE username=$1 OR email=$2`, username, email,
	).Scan(&existing)
	if err == nil {
		return ErrAlreadyExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = c.DB.Exec(ctx,
		`INSERT INTO clients(username, email, password_hash) VALUES ($1, $2, $3)`,
		username, email, string(hash),
	)
	return err
}

// Authenticate checks a username/password pair against the stored hash.
func (c *Clients) Authenticate(ctx context.Context, username, password string) error {
	var hash string
	err := c.DB.QueryRow(ctx,
		`SELECT password_hash FROM clients WHERE username=$1`, username,
	).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

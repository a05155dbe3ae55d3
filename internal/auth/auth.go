package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mahendrareddyduggireddy/backendproject/internal/core"
	"github.com/mahendrareddyduggireddy/backendproject/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameTaken      = errors.New("username already taken")
)

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID   int64
	Username string
}

// UserStore is the credential persistence contract.
// *storage.SQLiteRepository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (core.User, error)
	UserByUsername(ctx context.Context, username string) (core.User, error)
}

// Service issues and verifies bearer tokens. Tokens are HS256 JWTs carrying
// the username and user id.
type Service struct {
	users    UserStore
	secret   []byte
	tokenTTL time.Duration
}

func NewService(users UserStore, secret string, tokenTTL time.Duration) *Service {
	return &Service{users: users, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Register hashes the password and stores a new credential record. The
// plaintext password never leaves this function.
func (s *Service) Register(ctx context.Context, username, password string) (core.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.CreateUser(ctx, username, string(hash))
	if errors.Is(err, storage.ErrDuplicateUsername) {
		return core.User{}, ErrUsernameTaken
	}
	if err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// IssueToken checks the credentials and returns a signed bearer token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) IssueToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.UserByUsername(ctx, username)
	if errors.Is(err, core.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": u.Username,
		"uid": u.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	slog.InfoContext(ctx, "Token issued", "username", u.Username)
	return signed, nil
}

// VerifyToken parses and validates a bearer token and returns the principal
// it was issued to.
func (s *Service) VerifyToken(tokenStr string) (Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return Principal{}, ErrInvalidToken
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	return Principal{UserID: int64(uid), Username: username}, nil
}

// Package devauth is a self-contained identity provider for local
// development and tests. Accounts are kept in the record store with bcrypt
// password hashes and callers authenticate with HS256 tokens.
package devauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"localmarket/internal/infrastructure/kvstore"
	apperrors "localmarket/pkg/errors"
)

const accountPrefix = "dev-accounts:"

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type account struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `json:"password_hash"`
}

type Provider struct {
	store  kvstore.Store
	secret []byte
	ttl    time.Duration
	cost   int
}

func NewProvider(store kvstore.Store, secret string, ttl time.Duration) *Provider {
	return &Provider{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
	}
}

func accountKey(email string) string {
	return accountPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (p *Provider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	if len(password) < 6 {
		return "", apperrors.BadRequest("password must be at least 6 characters", nil)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	acc := account{
		UID:          uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	}

	key := accountKey(email)
	err = p.store.Update(ctx, key, func(_ []byte, found bool) ([]kvstore.Mutation, error) {
		if found {
			return nil, ErrEmailExists
		}
		return []kvstore.Mutation{kvstore.Put(key, acc)}, nil
	})
	if errors.Is(err, ErrEmailExists) {
		return "", apperrors.BadRequest(ErrEmailExists.Error(), err)
	}
	if err != nil {
		return "", err
	}
	return acc.UID, nil
}

// Login checks the password and issues a token for the account's uid.
func (p *Provider) Login(ctx context.Context, email, password string) (string, error) {
	raw, err := p.store.Get(ctx, accountKey(email))
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	var acc account
	if err := json.Unmarshal(raw, &acc); err != nil {
		return "", fmt.Errorf("decode account: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return p.IssueToken(acc.UID)
}

func (p *Provider) IssueToken(uid string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *Provider) VerifyToken(ctx context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

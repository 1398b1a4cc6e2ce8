// Package credits resolves user identity from bearer tokens and meters
// curriculum generations against per-user credit balances.
package credits

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yvoderooij/preptalk-curriculum/internal/store"
)

// Claims represents JWT claims with user ID.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// Balances is the slice of the store the service needs.
type Balances interface {
	GetCredits(ctx context.Context, userID uuid.UUID) (int, error)
	DebitCredit(ctx context.Context, userID uuid.UUID) error
}

// Service authenticates tokens and debits generation credits.
type Service struct {
	secret   []byte
	balances Balances
}

// NewService builds a credit service with the given signing secret.
func NewService(secret string, balances Balances) *Service {
	return &Service{secret: []byte(secret), balances: balances}
}

// ResolveUser validates a bearer token and returns the user it identifies.
// The "Bearer " prefix is accepted but not required.
func (s *Service) ResolveUser(tokenString string) (uuid.UUID, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tokenString), "Bearer "))
	if tokenString == "" {
		return uuid.Nil, &UnauthorizedError{Message: "token is empty"}
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, &UnauthorizedError{Message: "token expired", Cause: err}
		case errors.Is(err, jwt.ErrTokenMalformed):
			return uuid.Nil, &UnauthorizedError{Message: "malformed token", Cause: err}
		default:
			return uuid.Nil, &UnauthorizedError{Message: "token validation failed", Cause: err}
		}
	}
	if !token.Valid {
		return uuid.Nil, &UnauthorizedError{Message: "token is not valid"}
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, &UnauthorizedError{Message: "token carries no user ID"}
	}

	return claims.UserID, nil
}

// Debit spends one generation credit for the user. The debit happens before
// any pipeline work starts and is never refunded: a failed run still
// consumed provider budget.
func (s *Service) Debit(ctx context.Context, userID uuid.UUID) error {
	err := s.balances.DebitCredit(ctx, userID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrInsufficientCredits):
		return &InsufficientCreditsError{Remaining: 0}
	case errors.Is(err, store.ErrNotFound):
		return &UnauthorizedError{Message: "unknown user", Cause: err}
	default:
		return err
	}
}

// Remaining returns the user's balance for display.
func (s *Service) Remaining(ctx context.Context, userID uuid.UUID) (int, error) {
	balance, err := s.balances.GetCredits(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return 0, &UnauthorizedError{Message: "unknown user", Cause: err}
	}
	return balance, err
}

// IssueToken mints a signed token for the user. Used by tooling and tests;
// production tokens come from the account service.
func (s *Service) IssueToken(userID uuid.UUID, expiresAt jwt.NumericDate) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: &expiresAt,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

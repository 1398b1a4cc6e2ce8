package credits

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yvoderooij/preptalk-curriculum/internal/store"
)

const testSecret = "test-secret-key"

func serviceWithUser(t *testing.T, credits int) (*Service, uuid.UUID) {
	t.Helper()
	mem := store.NewMemory()
	userID := uuid.New()
	mem.SetCredits(userID, credits)
	return NewService(testSecret, mem), userID
}

func validToken(t *testing.T, s *Service, userID uuid.UUID) string {
	t.Helper()
	token, err := s.IssueToken(userID, *jwt.NewNumericDate(time.Now().Add(time.Hour)))
	require.NoError(t, err)
	return token
}

func TestResolveUser_ValidToken(t *testing.T) {
	s, userID := serviceWithUser(t, 1)
	token := validToken(t, s, userID)

	resolved, err := s.ResolveUser(token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestResolveUser_BearerPrefix(t *testing.T) {
	s, userID := serviceWithUser(t, 1)
	token := validToken(t, s, userID)

	resolved, err := s.ResolveUser("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestResolveUser_EmptyToken(t *testing.T) {
	s, _ := serviceWithUser(t, 1)
	_, err := s.ResolveUser("")
	var unauthorized *UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestResolveUser_ExpiredToken(t *testing.T) {
	s, userID := serviceWithUser(t, 1)
	token, err := s.IssueToken(userID, *jwt.NewNumericDate(time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	_, err = s.ResolveUser(token)
	var unauthorized *UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Contains(t, unauthorized.Error(), "expired")
}

func TestResolveUser_WrongSecret(t *testing.T) {
	s, userID := serviceWithUser(t, 1)
	other := NewService("different-secret", store.NewMemory())
	token := validToken(t, other, userID)

	_, err := s.ResolveUser(token)
	var unauthorized *UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestResolveUser_MalformedToken(t *testing.T) {
	s, _ := serviceWithUser(t, 1)
	_, err := s.ResolveUser("not.a.token")
	var unauthorized *UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestDebit_SpendsOneCredit(t *testing.T) {
	s, userID := serviceWithUser(t, 2)
	ctx := context.Background()

	require.NoError(t, s.Debit(ctx, userID))

	remaining, err := s.Remaining(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestDebit_InsufficientCredits(t *testing.T) {
	s, userID := serviceWithUser(t, 0)

	err := s.Debit(context.Background(), userID)
	var insufficient *InsufficientCreditsError
	assert.ErrorAs(t, err, &insufficient)
}

func TestDebit_UnknownUser(t *testing.T) {
	s := NewService(testSecret, store.NewMemory())

	err := s.Debit(context.Background(), uuid.New())
	var unauthorized *UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/velora-studio/velora/internal/shared"
)

type mockRepo struct {
	users    map[string]*User
	sessions map[string]int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[string]*User), sessions: make(map[string]int64)}
}

func (m *mockRepo) addUser(t *testing.T, email, password string, active bool) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &User{
		ID:           int64(len(m.users) + 1),
		Email:        email,
		FullName:     "Test User",
		PasswordHash: string(hash),
		IsActive:     active,
	}
	m.users[email] = u
	return u
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockRepo) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	m.sessions[id] = userID
	return nil
}

func (m *mockRepo) DeleteSession(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func TestAuthenticate(t *testing.T) {
	repo := newMockRepo()
	repo.addUser(t, "owner@velora.example", "s3cret", true)
	svc := NewService(repo)
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "owner@velora.example", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "owner@velora.example", user.Email)

	_, err = svc.Authenticate(ctx, "owner@velora.example", "wrong")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@velora.example", "s3cret")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateRejectsInactiveUser(t *testing.T) {
	repo := newMockRepo()
	repo.addUser(t, "former@velora.example", "s3cret", false)
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "former@velora.example", "s3cret")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestSessionLifecycle(t *testing.T) {
	repo := newMockRepo()
	u := repo.addUser(t, "owner@velora.example", "s3cret", true)
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.RegisterSession(ctx, "sess-1", u.ID, time.Now().Add(time.Hour), "127.0.0.1", "test")
	require.NoError(t, err)
	assert.Equal(t, u.ID, repo.sessions["sess-1"])

	require.NoError(t, svc.RemoveSession(ctx, "sess-1"))
	assert.NotContains(t, repo.sessions, "sess-1")
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"jobboard/internal/domain"
)

type mockSessionRepo struct {
	nextID   int64
	sessions []domain.Session

	createErr  error
	deletedN   int64
	deleteErr  error
	deleteHits int
}

func (m *mockSessionRepo) Create(_ context.Context, session domain.Session) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	session.ID = m.nextID
	m.sessions = append(m.sessions, session)
	return session.ID, nil
}

func (m *mockSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	m.deleteHits++
	return m.deletedN, m.deleteErr
}

func TestSessionServiceOpen_RecordsSessionAndIssuesTokens(t *testing.T) {
	repo := &mockSessionRepo{}
	jwtSvc := NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, NewMemoryRefreshTokenStore())
	svc := NewSessionService(zap.NewNop(), repo, jwtSvc)

	user := domain.User{ID: 7, UserName: "johndoe123", Email: "john@example.com", Role: domain.RoleApplicant}
	pair, err := svc.Open(context.Background(), user, "test-agent/1.0", "203.0.113.9")
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token pair")
	}

	if len(repo.sessions) != 1 {
		t.Fatalf("expected one session row, got %d", len(repo.sessions))
	}
	session := repo.sessions[0]
	if session.UserID != 7 {
		t.Fatalf("unexpected session owner %d", session.UserID)
	}
	if session.UserAgent != "test-agent/1.0" || session.IPAddress != "203.0.113.9" {
		t.Fatalf("session must carry device metadata: %+v", session)
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Fatalf("session expiry must be in the future: %v", session.ExpiresAt)
	}
}

func TestSessionServiceOpen_SessionInsertFailureStillIssuesTokens(t *testing.T) {
	repo := &mockSessionRepo{createErr: errors.New("insert failed")}
	jwtSvc := NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, NewMemoryRefreshTokenStore())
	svc := NewSessionService(zap.NewNop(), repo, jwtSvc)

	user := domain.User{ID: 7, Email: "john@example.com", Role: domain.RoleApplicant}
	pair, err := svc.Open(context.Background(), user, "agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if pair.AccessToken == "" {
		t.Fatalf("token pair expected despite session insert failure")
	}
}

func TestSessionServicePurgeExpired(t *testing.T) {
	repo := &mockSessionRepo{deletedN: 3}
	jwtSvc := NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, NewMemoryRefreshTokenStore())
	svc := NewSessionService(zap.NewNop(), repo, jwtSvc)

	n, err := svc.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 3 || repo.deleteHits != 1 {
		t.Fatalf("unexpected purge result n=%d hits=%d", n, repo.deleteHits)
	}
}

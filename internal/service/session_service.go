package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"jobboard/internal/domain"
	"jobboard/internal/repository"
)

// SessionService registra la sesión de cada login y emite su par de tokens.
type SessionService struct {
	logger   *zap.Logger
	sessions repository.SessionRepository
	jwt      *JWTService
}

func NewSessionService(logger *zap.Logger, sessions repository.SessionRepository, jwt *JWTService) *SessionService {
	return &SessionService{
		logger:   logger,
		sessions: sessions,
		jwt:      jwt,
	}
}

// Open persiste una fila de sesión para el dispositivo que acaba de loguearse
// y devuelve los tokens. Un fallo al persistir la sesión no invalida un login
// ya verificado: se registra en el log y el par de tokens se emite igual.
func (s *SessionService) Open(ctx context.Context, user domain.User, userAgent, ipAddress string) (TokenPair, error) {
	if s.jwt == nil {
		return TokenPair{}, errors.New("session service not configured")
	}
	pair, err := s.jwt.GeneratePair(user)
	if err != nil {
		return TokenPair{}, err
	}
	if s.sessions != nil {
		session := domain.Session{
			UserID:    user.ID,
			UserAgent: userAgent,
			IPAddress: ipAddress,
			ExpiresAt: time.Now().UTC().Add(s.jwt.RefreshTTL()),
		}
		if _, err := s.sessions.Create(ctx, session); err != nil && s.logger != nil {
			s.logger.Warn("session insert failed", zap.Error(err), zap.Int64("user_id", user.ID))
		}
	}
	return pair, nil
}

// PurgeExpired elimina sesiones vencidas del store.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	if s.sessions == nil {
		return 0, nil
	}
	return s.sessions.DeleteExpired(ctx)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"jobboard/internal/domain"
	"jobboard/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// defaultPhoneNumber se inserta cuando el payload no trae teléfono.
const defaultPhoneNumber = "0000000000"

// AuthService coordina registro y autenticación contra el store de usuarios.
type AuthService struct {
	logger *zap.Logger
	users  repository.UserRepository
	hasher PasswordHasher
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, hasher PasswordHasher) *AuthService {
	if hasher == nil {
		hasher = NewArgon2Hasher()
	}
	return &AuthService{
		logger: logger,
		users:  users,
		hasher: hasher,
	}
}

// Register ejecuta el flujo validar → chequear duplicados → hashear → insertar.
// El chequeo previo y el insert son dos round-trips separados: la constraint
// de unicidad del store es el respaldo ante la carrera entre ambos.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	if s.users == nil {
		return errors.New("auth service not configured")
	}

	var (
		data RegisterData
		hash string
	)
	return runStages(ctx,
		func(_ context.Context) error {
			var err error
			data, err = ValidateRegistration(req)
			return err
		},
		func(ctx context.Context) error {
			existing, err := s.users.FindByEmailOrUsername(ctx, data.Email, data.UserName)
			if err != nil {
				return fmt.Errorf("duplicate check: %w", err)
			}
			for _, u := range existing {
				if u.Email == data.Email {
					return ErrEmailTaken
				}
			}
			if len(existing) > 0 {
				return ErrUsernameTaken
			}
			return nil
		},
		func(_ context.Context) error {
			var err error
			hash, err = s.hasher.Hash(data.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			return nil
		},
		func(ctx context.Context) error {
			phone := data.PhoneNumber
			if phone == "" {
				phone = defaultPhoneNumber
			}
			user := domain.User{
				Name:         data.Name,
				UserName:     data.UserName,
				Email:        data.Email,
				PhoneNumber:  phone,
				PasswordHash: hash,
				Role:         data.Role,
			}
			if _, err := s.users.Create(ctx, user); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					// Otra petición ganó la carrera entre el chequeo y el insert.
					if s.logger != nil {
						s.logger.Warn("insert raced with duplicate", zap.String("username", data.UserName))
					}
					return ErrUserExists
				}
				return fmt.Errorf("insert user: %w", err)
			}
			return nil
		},
	)
}

// Authenticate ejecuta el flujo validar → buscar por email → verificar hash.
// Email desconocido y contraseña incorrecta devuelven el mismo
// ErrInvalidCredentials para no revelar si la cuenta existe.
func (s *AuthService) Authenticate(ctx context.Context, req LoginRequest) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("auth service not configured")
	}

	var (
		data LoginData
		user domain.User
	)
	err := runStages(ctx,
		func(_ context.Context) error {
			var err error
			data, err = ValidateLogin(req)
			return err
		},
		func(ctx context.Context) error {
			var err error
			user, err = s.users.GetByEmail(ctx, data.Email)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrInvalidCredentials
				}
				return fmt.Errorf("lookup user: %w", err)
			}
			return nil
		},
		func(_ context.Context) error {
			if user.PasswordHash == "" || !s.hasher.Verify(user.PasswordHash, data.Password) {
				return ErrInvalidCredentials
			}
			return nil
		},
	)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

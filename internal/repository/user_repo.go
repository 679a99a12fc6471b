package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobboard/internal/domain"
)

// ErrDuplicate señala una violación de unicidad de email o username al insertar.
var ErrDuplicate = errors.New("duplicate user")

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	FindByEmailOrUsername(ctx context.Context, email, userName string) ([]domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, user domain.User) (int64, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `
	id, name, username, email, COALESCE(phone_number, ''), password,
	role, deleted_at, created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.UserName,
		&u.Email,
		&u.PhoneNumber,
		&u.PasswordHash,
		&role,
		&u.DeletedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

// FindByEmailOrUsername devuelve las filas no borradas que coinciden con
// cualquiera de los dos campos. Se usa para detectar colisiones en el registro.
func (r *PgUserRepository) FindByEmailOrUsername(ctx context.Context, email, userName string) ([]domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE (email = $1 OR username = $2) AND deleted_at IS NULL
	`
	rows, err := r.pool.Query(ctx, query, email, userName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetByEmail busca un usuario no borrado por email.
func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// GetByID busca un usuario no borrado por identificador.
func (r *PgUserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// Create inserta un usuario nuevo y devuelve el id asignado por la base.
// Una violación de constraint de unicidad se reporta como ErrDuplicate.
func (r *PgUserRepository) Create(ctx context.Context, user domain.User) (int64, error) {
	const query = `
		INSERT INTO users (name, username, email, phone_number, password, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		user.Name,
		user.UserName,
		user.Email,
		user.PhoneNumber,
		user.PasswordHash,
		string(user.Role),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"jobboard/internal/domain"
)

// SessionRepository define el contrato de persistencia para sesiones.
type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.Session) (int64, error) {
	const query = `
		INSERT INTO sessions (user_id, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		session.UserID,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
	).Scan(&id)
	return id, err
}

// DeleteExpired elimina sesiones vencidas y devuelve cuántas filas se borraron.
func (r *PgSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at < now()`
	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo persistência de usuários autenticáveis.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador de usuários.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste um usuário. Email repetido devolve domain.ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO usuarios (id, email, password_hash, nome, role, corretora_id, empresa_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role,
		user.BrokerID, user.CompanyID, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", mapError(err))
	}
	return nil
}

// FindByEmail carrega um usuário pelo email; nil quando não existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return withRetry(ctx, func() (*entity.User, error) {
		query := `
			SELECT id, email, password_hash, nome, role, corretora_id, empresa_id, status, created_at, updated_at
			FROM usuarios WHERE email = $1`
		var u entity.User
		err := r.q.QueryRow(ctx, query, email).Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
			&u.BrokerID, &u.CompanyID, &u.Status, &u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("get usuario: %w", mapError(err))
		}
		return &u, nil
	})
}

package repository

import (
	"context"

	"github.com/mktfun/gps-rh-api/internal/domain/entity"
)

// PendenciaFilter filtros de listagem; campos vazios não filtram.
type PendenciaFilter struct {
	BrokerID  string
	CompanyID string
	Status    string
	Limit     int
	Offset    int
}

// PendenciaRepository porta de persistência para pendências.
//
// As operações *OpenRemoval enxergam só pendências de exclusão de funcionário
// (tipo cancelamento SEM matrícula vinculada). Cancelamentos de matrícula são
// pendências independentes, uma por matrícula, e não entram aqui.
type PendenciaRepository interface {
	// Create devolve domain.ErrDuplicate quando fere um dos índices únicos
	// parciais: uma exclusão de funcionário aberta por funcionário, um
	// cancelamento aberto por matrícula.
	Create(ctx context.Context, p *entity.Pendencia) error
	List(ctx context.Context, f PendenciaFilter) ([]*entity.Pendencia, error)
	// HasOpenRemoval informa se o funcionário já tem pendência de exclusão aberta.
	HasOpenRemoval(ctx context.Context, employeeID string) (bool, error)
	// ResolveOpenRemoval fecha a pendência de exclusão aberta do funcionário
	// com o status dado (resolvida ou cancelada); devolve quantas fechou.
	ResolveOpenRemoval(ctx context.Context, employeeID, newStatus string) (int64, error)
}

// UserRepository porta de persistência para usuários autenticáveis.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

package repository

import (
	"context"

	"github.com/mktfun/gps-rh-api/internal/domain/entity"
)

// PlanRepository porta de persistência para planos e suas faixas etárias.
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	GetByID(ctx context.Context, id string) (*entity.Plan, error)
	ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Plan, error)
}

// MatriculationRepository porta de persistência para matrículas plano↔funcionário.
type MatriculationRepository interface {
	// Create devolve domain.ErrDuplicate se o funcionário já tem matrícula no plano.
	Create(ctx context.Context, m *entity.Matriculation) error
	GetByPlanAndEmployee(ctx context.Context, planID, employeeID string) (*entity.Matriculation, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Matriculation, error)
	// UpdateStatusIf muda o status condicionado ao status atual (um vencedor sob corrida).
	UpdateStatusIf(ctx context.Context, planID, employeeID string, from, to entity.MatriculationStatus) (bool, error)
	// DeactivateByEmployee inativa todas as matrículas não terminais do
	// funcionário; usada quando ele chega ao estado terminal de exclusão.
	DeactivateByEmployee(ctx context.Context, employeeID string) (int64, error)
}

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

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo persistência de planos e faixas etárias (usável com pool ou tx).
type PlanRepo struct {
	q Querier
}

// NewPlanRepository constrói o adaptador de planos.
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// Create persiste o plano e as faixas etárias juntos.
func (r *PlanRepo) Create(ctx context.Context, plan *entity.Plan) error {
	query := `
		INSERT INTO planos (id, cnpj_id, seguradora, nome, cobertura, premio_mensal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		plan.ID, plan.BranchID, plan.Seguradora, plan.Nome, plan.Cobertura,
		plan.MonthlyPremium, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert plano: %w", mapError(err))
	}
	for _, band := range plan.AgeBands {
		_, err := r.q.Exec(ctx,
			`INSERT INTO plano_faixas_etarias (id, plano_id, idade_min, idade_max, premio)
			 VALUES ($1, $2, $3, $4, $5)`,
			band.ID, plan.ID, band.AgeMin, band.AgeMax, band.Premium,
		)
		if err != nil {
			return fmt.Errorf("insert faixa etária: %w", mapError(err))
		}
	}
	return nil
}

// GetByID carrega o plano com as faixas etárias; nil quando não existe.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*entity.Plan, error) {
	return withRetry(ctx, func() (*entity.Plan, error) {
		query := `
			SELECT id, cnpj_id, seguradora, nome, cobertura, premio_mensal, created_at, updated_at
			FROM planos WHERE id = $1`
		var p entity.Plan
		err := r.q.QueryRow(ctx, query, id).Scan(
			&p.ID, &p.BranchID, &p.Seguradora, &p.Nome, &p.Cobertura,
			&p.MonthlyPremium, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("get plano: %w", mapError(err))
		}
		bands, err := r.loadAgeBands(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.AgeBands = bands
		return &p, nil
	})
}

// ListByBranch lista os planos de uma filial, sem as faixas.
func (r *PlanRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Plan, error) {
	return withRetry(ctx, func() ([]*entity.Plan, error) {
		query := `
			SELECT id, cnpj_id, seguradora, nome, cobertura, premio_mensal, created_at, updated_at
			FROM planos WHERE cnpj_id = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err := r.q.Query(ctx, query, branchID, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("list planos: %w", mapError(err))
		}
		defer rows.Close()
		var list []*entity.Plan
		for rows.Next() {
			var p entity.Plan
			if err := rows.Scan(&p.ID, &p.BranchID, &p.Seguradora, &p.Nome, &p.Cobertura,
				&p.MonthlyPremium, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return nil, fmt.Errorf("scan plano: %w", err)
			}
			list = append(list, &p)
		}
		return list, rows.Err()
	})
}

func (r *PlanRepo) loadAgeBands(ctx context.Context, planID string) ([]entity.PlanAgeBand, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, plano_id, idade_min, idade_max, premio
		 FROM plano_faixas_etarias WHERE plano_id = $1 ORDER BY idade_min`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("list faixas etárias: %w", mapError(err))
	}
	defer rows.Close()
	var bands []entity.PlanAgeBand
	for rows.Next() {
		var b entity.PlanAgeBand
		if err := rows.Scan(&b.ID, &b.PlanID, &b.AgeMin, &b.AgeMax, &b.Premium); err != nil {
			return nil, fmt.Errorf("scan faixa etária: %w", err)
		}
		bands = append(bands, b)
	}
	return bands, rows.Err()
}

var _ repository.MatriculationRepository = (*MatriculationRepo)(nil)

// MatriculationRepo persistência de matrículas plano↔funcionário.
type MatriculationRepo struct {
	q Querier
}

// NewMatriculationRepository constrói o adaptador de matrículas.
func NewMatriculationRepository(q Querier) *MatriculationRepo {
	return &MatriculationRepo{q: q}
}

// Create persiste a matrícula. O par (plano, funcionário) é único: repetição
// vira domain.ErrDuplicate.
func (r *MatriculationRepo) Create(ctx context.Context, m *entity.Matriculation) error {
	query := `
		INSERT INTO matriculas (id, plano_id, funcionario_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.PlanID, m.EmployeeID, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert matricula: %w", mapError(err))
	}
	return nil
}

// GetByPlanAndEmployee carrega a matrícula do par; nil quando não existe.
func (r *MatriculationRepo) GetByPlanAndEmployee(ctx context.Context, planID, employeeID string) (*entity.Matriculation, error) {
	return withRetry(ctx, func() (*entity.Matriculation, error) {
		query := `
			SELECT id, plano_id, funcionario_id, status, created_at, updated_at
			FROM matriculas WHERE plano_id = $1 AND funcionario_id = $2`
		var m entity.Matriculation
		err := r.q.QueryRow(ctx, query, planID, employeeID).Scan(
			&m.ID, &m.PlanID, &m.EmployeeID, &m.Status, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("get matricula: %w", mapError(err))
		}
		return &m, nil
	})
}

// ListByEmployee lista as matrículas de um funcionário.
func (r *MatriculationRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Matriculation, error) {
	return withRetry(ctx, func() ([]*entity.Matriculation, error) {
		query := `
			SELECT id, plano_id, funcionario_id, status, created_at, updated_at
			FROM matriculas WHERE funcionario_id = $1 ORDER BY created_at`
		rows, err := r.q.Query(ctx, query, employeeID)
		if err != nil {
			return nil, fmt.Errorf("list matriculas: %w", mapError(err))
		}
		defer rows.Close()
		var list []*entity.Matriculation
		for rows.Next() {
			var m entity.Matriculation
			if err := rows.Scan(&m.ID, &m.PlanID, &m.EmployeeID, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
				return nil, fmt.Errorf("scan matricula: %w", err)
			}
			list = append(list, &m)
		}
		return list, rows.Err()
	})
}

// UpdateStatusIf muda o status condicionado ao status atual (um vencedor sob corrida).
func (r *MatriculationRepo) UpdateStatusIf(ctx context.Context, planID, employeeID string, from, to entity.MatriculationStatus) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE matriculas SET status = $4, updated_at = now()
		 WHERE plano_id = $1 AND funcionario_id = $2 AND status = $3`,
		planID, employeeID, from, to,
	)
	if err != nil {
		return false, fmt.Errorf("update status matricula: %w", mapError(err))
	}
	return cmd.RowsAffected() > 0, nil
}

// DeactivateByEmployee inativa todas as matrículas não inativas do
// funcionário; devolve quantas mudaram.
func (r *MatriculationRepo) DeactivateByEmployee(ctx context.Context, employeeID string) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE matriculas SET status = $2, updated_at = now()
		 WHERE funcionario_id = $1 AND status <> $2`,
		employeeID, entity.MatriculationStatusInativo,
	)
	if err != nil {
		return 0, fmt.Errorf("inativar matriculas: %w", mapError(err))
	}
	return cmd.RowsAffected(), nil
}

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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, cnpj_id, nome, cpf, data_nascimento, cargo, salario, email, estado_civil, status, created_at, updated_at`

// EmployeeRepo persistência de funcionários (usável com pool ou tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository constrói o adaptador de funcionários.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste um funcionário. A unicidade de CPF por filial é da
// constraint do banco: violação vira domain.ErrDuplicate.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO funcionarios (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.BranchID, e.Nome, e.CPF, e.DataNascimento, e.Cargo,
		e.Salario, e.Email, e.EstadoCivil, e.Status, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert funcionario: %w", mapError(err))
	}
	return nil
}

// GetByID carrega um funcionário; nil quando não existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	return withRetry(ctx, func() (*entity.Employee, error) {
		query := `SELECT ` + employeeColumns + ` FROM funcionarios WHERE id = $1`
		e, err := scanEmployee(r.q.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("get funcionario: %w", mapError(err))
		}
		return e, nil
	})
}

// ListByBranch lista os funcionários de uma filial com paginação.
func (r *EmployeeRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Employee, error) {
	return withRetry(ctx, func() ([]*entity.Employee, error) {
		query := `
			SELECT ` + employeeColumns + ` FROM funcionarios
			WHERE cnpj_id = $1 ORDER BY nome LIMIT $2 OFFSET $3`
		rows, err := r.q.Query(ctx, query, branchID, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("list funcionarios: %w", mapError(err))
		}
		defer rows.Close()
		var list []*entity.Employee
		for rows.Next() {
			e, err := scanEmployee(rows)
			if err != nil {
				return nil, fmt.Errorf("scan funcionario: %w", err)
			}
			list = append(list, e)
		}
		return list, rows.Err()
	})
}

// SnapshotByBranch carrega todos os funcionários da filial indexados pelo CPF
// canônico. É o insumo da checagem de duplicata da importação; a visão é do
// instante da leitura, a palavra final é da constraint no commit.
func (r *EmployeeRepo) SnapshotByBranch(ctx context.Context, branchID string) (map[string]*entity.Employee, error) {
	return withRetry(ctx, func() (map[string]*entity.Employee, error) {
		query := `SELECT ` + employeeColumns + ` FROM funcionarios WHERE cnpj_id = $1`
		rows, err := r.q.Query(ctx, query, branchID)
		if err != nil {
			return nil, fmt.Errorf("snapshot funcionarios: %w", mapError(err))
		}
		defer rows.Close()
		snapshot := make(map[string]*entity.Employee)
		for rows.Next() {
			e, err := scanEmployee(rows)
			if err != nil {
				return nil, fmt.Errorf("scan funcionario: %w", err)
			}
			snapshot[e.CPF] = e
		}
		return snapshot, rows.Err()
	})
}

// UpdateStatusIf muda o status condicionado ao status atual, em um único
// UPDATE. Sob corrida, só um chamador vê changed == true.
func (r *EmployeeRepo) UpdateStatusIf(ctx context.Context, id string, from, to entity.EmployeeStatus) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE funcionarios SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return false, fmt.Errorf("update status funcionario: %w", mapError(err))
	}
	return cmd.RowsAffected() > 0, nil
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(
		&e.ID, &e.BranchID, &e.Nome, &e.CPF, &e.DataNascimento, &e.Cargo,
		&e.Salario, &e.Email, &e.EstadoCivil, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
)

var _ repository.PendenciaRepository = (*PendenciaRepo)(nil)

// PendenciaRepo persistência de pendências (usável com pool ou tx).
type PendenciaRepo struct {
	q Querier
}

// NewPendenciaRepository constrói o adaptador de pendências.
func NewPendenciaRepository(q Querier) *PendenciaRepo {
	return &PendenciaRepo{q: q}
}

// Create persiste a pendência. Os índices únicos parciais (uma exclusão de
// funcionário aberta por funcionário; um cancelamento aberto por matrícula) e
// a unicidade de protocolo viram domain.ErrDuplicate.
func (r *PendenciaRepo) Create(ctx context.Context, p *entity.Pendencia) error {
	query := `
		INSERT INTO pendencias (id, protocolo, tipo, status, descricao, funcionario_id, matricula_id, cnpj_id, corretora_id, data_vencimento, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Protocol, p.Tipo, p.Status, p.Description, p.EmployeeID, p.MatriculaID,
		p.BranchID, p.BrokerID, p.DueDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pendencia: %w", mapError(err))
	}
	return nil
}

// List devolve as pendências do filtro, mais novas primeiro. O filtro de
// empresa passa pela filial dona da pendência.
func (r *PendenciaRepo) List(ctx context.Context, f repository.PendenciaFilter) ([]*entity.Pendencia, error) {
	return withRetry(ctx, func() ([]*entity.Pendencia, error) {
		query := `
			SELECT p.id, p.protocolo, p.tipo, p.status, p.descricao, p.funcionario_id,
			       p.matricula_id, p.cnpj_id, p.corretora_id, p.data_vencimento, p.created_at, p.updated_at
			FROM pendencias p`
		var args []any
		where := ""
		and := func(cond string, arg any) {
			args = append(args, arg)
			if where == "" {
				where = " WHERE "
			} else {
				where += " AND "
			}
			where += fmt.Sprintf(cond, len(args))
		}
		if f.CompanyID != "" {
			query += ` JOIN cnpjs c ON c.id = p.cnpj_id`
			and("c.empresa_id = $%d", f.CompanyID)
		}
		if f.BrokerID != "" {
			and("p.corretora_id = $%d", f.BrokerID)
		}
		if f.Status != "" {
			and("p.status = $%d", f.Status)
		}
		query += where + fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, f.Limit, f.Offset)

		rows, err := r.q.Query(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("list pendencias: %w", mapError(err))
		}
		defer rows.Close()
		var list []*entity.Pendencia
		for rows.Next() {
			var p entity.Pendencia
			if err := rows.Scan(&p.ID, &p.Protocol, &p.Tipo, &p.Status, &p.Description,
				&p.EmployeeID, &p.MatriculaID, &p.BranchID, &p.BrokerID, &p.DueDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return nil, fmt.Errorf("scan pendencia: %w", err)
			}
			list = append(list, &p)
		}
		return list, rows.Err()
	})
}

// HasOpenRemoval informa se o funcionário tem pendência de exclusão aberta.
// matricula_id IS NULL exclui cancelamentos de matrícula, que são pendências
// do mesmo tipo mas com alvo próprio.
func (r *PendenciaRepo) HasOpenRemoval(ctx context.Context, employeeID string) (bool, error) {
	return withRetry(ctx, func() (bool, error) {
		var exists bool
		err := r.q.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1 FROM pendencias
				WHERE funcionario_id = $1 AND tipo = $2 AND status = $3 AND matricula_id IS NULL
			)`,
			employeeID, entity.PendenciaTipoCancelamento, entity.PendenciaStatusPendente,
		).Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("checar pendencia aberta: %w", mapError(err))
		}
		return exists, nil
	})
}

// ResolveOpenRemoval fecha a pendência de exclusão aberta do funcionário com o
// status dado; devolve quantas fechou. Cancelamentos de matrícula do mesmo
// funcionário ficam intocados.
func (r *PendenciaRepo) ResolveOpenRemoval(ctx context.Context, employeeID, newStatus string) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE pendencias SET status = $2, updated_at = now()
		 WHERE funcionario_id = $1 AND tipo = $3 AND status = $4 AND matricula_id IS NULL`,
		employeeID, newStatus, entity.PendenciaTipoCancelamento, entity.PendenciaStatusPendente,
	)
	if err != nil {
		return 0, fmt.Errorf("resolver pendencia: %w", mapError(err))
	}
	return cmd.RowsAffected(), nil
}

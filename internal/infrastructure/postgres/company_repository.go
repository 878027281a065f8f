package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mktfun/gps-rh-api/internal/domain/authz"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo persistência de empresas clientes (usável com pool ou tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository constrói o adaptador de empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste uma empresa nova.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO empresas (id, corretora_id, nome, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.BrokerID, company.Name, company.Status,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert empresa: %w", mapError(err))
	}
	return nil
}

// GetByID carrega uma empresa; nil quando não existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return withRetry(ctx, func() (*entity.Company, error) {
		query := `
			SELECT id, corretora_id, nome, status, created_at, updated_at
			FROM empresas WHERE id = $1`
		var c entity.Company
		err := r.q.QueryRow(ctx, query, id).Scan(
			&c.ID, &c.BrokerID, &c.Name, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("get empresa: %w", mapError(err))
		}
		return &c, nil
	})
}

// ListByBroker lista a carteira da corretora com paginação.
func (r *CompanyRepo) ListByBroker(ctx context.Context, brokerID string, limit, offset int) ([]*entity.Company, error) {
	return withRetry(ctx, func() ([]*entity.Company, error) {
		query := `
			SELECT id, corretora_id, nome, status, created_at, updated_at
			FROM empresas WHERE corretora_id = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err := r.q.Query(ctx, query, brokerID, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("list empresas: %w", mapError(err))
		}
		defer rows.Close()
		var list []*entity.Company
		for rows.Next() {
			var c entity.Company
			if err := rows.Scan(&c.ID, &c.BrokerID, &c.Name, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
				return nil, fmt.Errorf("scan empresa: %w", err)
			}
			list = append(list, &c)
		}
		return list, rows.Err()
	})
}

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo persistência de filiais (CNPJs).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository constrói o adaptador de filiais.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create persiste uma filial nova. CNPJ repetido devolve domain.ErrDuplicate.
func (r *BranchRepo) Create(ctx context.Context, branch *entity.Branch) error {
	query := `
		INSERT INTO cnpjs (id, empresa_id, cnpj, razao_social, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		branch.ID, branch.CompanyID, branch.CNPJ, branch.RazaoSocial, branch.Status,
		branch.CreatedAt, branch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cnpj: %w", mapError(err))
	}
	return nil
}

// GetByID carrega uma filial; nil quando não existe.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	return withRetry(ctx, func() (*entity.Branch, error) {
		query := `
			SELECT id, empresa_id, cnpj, razao_social, status, created_at, updated_at
			FROM cnpjs WHERE id = $1`
		var b entity.Branch
		err := r.q.QueryRow(ctx, query, id).Scan(
			&b.ID, &b.CompanyID, &b.CNPJ, &b.RazaoSocial, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("get cnpj: %w", mapError(err))
		}
		return &b, nil
	})
}

// ListByCompany lista os CNPJs de uma empresa com paginação.
func (r *BranchRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Branch, error) {
	return withRetry(ctx, func() ([]*entity.Branch, error) {
		query := `
			SELECT id, empresa_id, cnpj, razao_social, status, created_at, updated_at
			FROM cnpjs WHERE empresa_id = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err := r.q.Query(ctx, query, companyID, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("list cnpjs: %w", mapError(err))
		}
		defer rows.Close()
		var list []*entity.Branch
		for rows.Next() {
			var b entity.Branch
			if err := rows.Scan(&b.ID, &b.CompanyID, &b.CNPJ, &b.RazaoSocial, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
				return nil, fmt.Errorf("scan cnpj: %w", err)
			}
			list = append(list, &b)
		}
		return list, rows.Err()
	})
}

// GetScope carrega a cadeia de posse filial → empresa → corretora em uma
// consulta só; nil quando a filial não existe.
func (r *BranchRepo) GetScope(ctx context.Context, branchID string) (*authz.Scope, error) {
	return withRetry(ctx, func() (*authz.Scope, error) {
		query := `
			SELECT c.id, c.empresa_id, e.corretora_id
			FROM cnpjs c
			JOIN empresas e ON e.id = c.empresa_id
			WHERE c.id = $1`
		var s authz.Scope
		err := r.q.QueryRow(ctx, query, branchID).Scan(&s.BranchID, &s.CompanyID, &s.BrokerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("get escopo da filial: %w", mapError(err))
		}
		return &s, nil
	})
}

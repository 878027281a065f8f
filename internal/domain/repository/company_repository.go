package repository

import (
	"context"

	"github.com/mktfun/gps-rh-api/internal/domain/authz"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
)

// CompanyRepository porta de persistência para empresas clientes.
// A implementação vive em infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	ListByBroker(ctx context.Context, brokerID string, limit, offset int) ([]*entity.Company, error)
}

// BranchRepository porta de persistência para filiais (CNPJs).
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Branch, error)
	// GetScope carrega a cadeia de posse filial → empresa → corretora em uma
	// consulta só; é o insumo do gate de autorização.
	GetScope(ctx context.Context, branchID string) (*authz.Scope, error)
}

// Package usecase contém os casos de uso de cadastro de apoio: empresas,
// filiais (CNPJs), planos e funcionários individuais.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/authz"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
	"github.com/mktfun/gps-rh-api/pkg/br"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

// CompanyUseCase cadastro de empresas clientes e suas filiais.
type CompanyUseCase struct {
	companies repository.CompanyRepository
	branches  repository.BranchRepository
	log       *logger.Logger
}

// NewCompanyUseCase constrói o caso de uso.
func NewCompanyUseCase(companies repository.CompanyRepository, branches repository.BranchRepository, log *logger.Logger) *CompanyUseCase {
	return &CompanyUseCase{companies: companies, branches: branches, log: log}
}

// CreateCompany cria uma empresa sob uma corretora. Corretora só cria na
// própria carteira; admin em qualquer uma.
func (uc *CompanyUseCase) CreateCompany(ctx context.Context, actor entity.Actor, req dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if req.Name == "" || req.BrokerID == "" {
		return nil, fmt.Errorf("nome e broker_id são obrigatórios: %w", domain.ErrInvalidInput)
	}
	if err := authz.Authorize(actor, authz.Scope{BrokerID: req.BrokerID}); err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		BrokerID:  req.BrokerID,
		Name:      req.Name,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", company.ID).Str("broker_id", company.BrokerID).Msg("empresa criada")
	resp := toCompanyResponse(company)
	return &resp, nil
}

// GetCompany carrega uma empresa, sujeita ao escopo do ator.
func (uc *CompanyUseCase) GetCompany(ctx context.Context, actor entity.Actor, id string) (*dto.CompanyResponse, error) {
	company, err := uc.loadCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.Scope{CompanyID: company.ID, BrokerID: company.BrokerID}); err != nil {
		return nil, err
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

// ListCompanies lista a carteira de uma corretora.
func (uc *CompanyUseCase) ListCompanies(ctx context.Context, actor entity.Actor, brokerID string, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	if err := authz.Authorize(actor, authz.Scope{BrokerID: brokerID}); err != nil {
		return nil, err
	}
	items, err := uc.companies.ListByBroker(ctx, brokerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.CompanyListResponse{Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
	for _, c := range items {
		resp.Items = append(resp.Items, toCompanyResponse(c))
	}
	return resp, nil
}

// CreateBranch registra um CNPJ sob uma empresa. O CNPJ é validado por
// checksum e guardado na forma canônica de 14 dígitos.
func (uc *CompanyUseCase) CreateBranch(ctx context.Context, actor entity.Actor, req dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	company, err := uc.loadCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.Scope{CompanyID: company.ID, BrokerID: company.BrokerID}); err != nil {
		return nil, err
	}
	cnpj, err := br.NormalizeCNPJ(req.CNPJ)
	if err != nil {
		return nil, fmt.Errorf("cnpj %q: %w", req.CNPJ, err)
	}
	if req.RazaoSocial == "" {
		return nil, fmt.Errorf("razão social obrigatória: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	branch := &entity.Branch{
		ID:          uuid.New().String(),
		CompanyID:   company.ID,
		CNPJ:        cnpj,
		RazaoSocial: req.RazaoSocial,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.branches.Create(ctx, branch); err != nil {
		return nil, err
	}
	uc.log.Info().Str("branch_id", branch.ID).Str("company_id", company.ID).Msg("filial registrada")
	resp := toBranchResponse(branch)
	return &resp, nil
}

// ListBranches lista os CNPJs de uma empresa.
func (uc *CompanyUseCase) ListBranches(ctx context.Context, actor entity.Actor, companyID string, page dto.PageRequest) (*dto.BranchListResponse, error) {
	page.DefaultPage()
	company, err := uc.loadCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.Scope{CompanyID: company.ID, BrokerID: company.BrokerID}); err != nil {
		return nil, err
	}
	items, err := uc.branches.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.BranchListResponse{Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
	for _, b := range items {
		resp.Items = append(resp.Items, toBranchResponse(b))
	}
	return resp, nil
}

func (uc *CompanyUseCase) loadCompany(ctx context.Context, id string) (*entity.Company, error) {
	company, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", id, domain.ErrNotFound)
	}
	return company, nil
}

func toCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID: c.ID, BrokerID: c.BrokerID, Name: c.Name, Status: c.Status,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func toBranchResponse(b *entity.Branch) dto.BranchResponse {
	return dto.BranchResponse{
		ID: b.ID, CompanyID: b.CompanyID, CNPJ: br.FormatCNPJ(b.CNPJ),
		RazaoSocial: b.RazaoSocial, Status: b.Status, CreatedAt: b.CreatedAt,
	}
}

package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/application/importer"
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/authz"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
	"github.com/mktfun/gps-rh-api/pkg/br"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

// EmployeeUseCase cadastro individual de funcionários, fora da importação em
// massa. Aplica os mesmos normalizadores da planilha: CPF canônico, data
// DD/MM/AAAA, salário decimal dentro da faixa de sanidade.
type EmployeeUseCase struct {
	employees repository.EmployeeRepository
	branches  repository.BranchRepository
	bounds    br.CurrencyBounds
	log       *logger.Logger
}

// NewEmployeeUseCase constrói o caso de uso.
func NewEmployeeUseCase(employees repository.EmployeeRepository, branches repository.BranchRepository,
	bounds br.CurrencyBounds, log *logger.Logger) *EmployeeUseCase {
	return &EmployeeUseCase{employees: employees, branches: branches, bounds: bounds, log: log}
}

// CreateEmployee cadastra um funcionário sob a filial, no status pendente.
// CPF duplicado na filial devolve domain.ErrDuplicate.
func (uc *EmployeeUseCase) CreateEmployee(ctx context.Context, actor entity.Actor, branchID string, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := uc.authorizeBranch(ctx, actor, branchID); err != nil {
		return nil, err
	}
	emp, err := uc.buildEmployee(branchID, req)
	if err != nil {
		return nil, err
	}
	if err := uc.employees.Create(ctx, emp); err != nil {
		return nil, err
	}
	uc.log.Info().Str("employee_id", emp.ID).Str("branch_id", branchID).Msg("funcionário cadastrado")
	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// GetEmployee carrega um funcionário, sujeito ao escopo do ator.
func (uc *EmployeeUseCase) GetEmployee(ctx context.Context, actor entity.Actor, id string) (*dto.EmployeeResponse, error) {
	emp, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, fmt.Errorf("funcionário %s: %w", id, domain.ErrNotFound)
	}
	if err := uc.authorizeBranch(ctx, actor, emp.BranchID); err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// ListEmployees lista os funcionários de uma filial.
func (uc *EmployeeUseCase) ListEmployees(ctx context.Context, actor entity.Actor, branchID string, page dto.PageRequest) (*dto.EmployeeListResponse, error) {
	page.DefaultPage()
	if err := uc.authorizeBranch(ctx, actor, branchID); err != nil {
		return nil, err
	}
	items, err := uc.employees.ListByBranch(ctx, branchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.EmployeeListResponse{Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
	for _, e := range items {
		resp.Items = append(resp.Items, toEmployeeResponse(e))
	}
	return resp, nil
}

func (uc *EmployeeUseCase) buildEmployee(branchID string, req dto.CreateEmployeeRequest) (*entity.Employee, error) {
	if req.Nome == "" {
		return nil, fmt.Errorf("nome obrigatório: %w", domain.ErrInvalidInput)
	}
	cpf, err := br.NormalizeCPF(req.CPF)
	if err != nil {
		return nil, fmt.Errorf("cpf %q: %w", req.CPF, err)
	}
	nascimento, err := time.Parse(importer.DateLayout, req.DataNascimento)
	if err != nil {
		return nil, fmt.Errorf("data de nascimento %q fora do formato DD/MM/AAAA: %w",
			req.DataNascimento, domain.ErrInvalidInput)
	}
	salario, err := br.ParseCurrency(req.Salario, uc.bounds)
	if err != nil {
		return nil, fmt.Errorf("salário %q: %w", req.Salario, err)
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return nil, fmt.Errorf("email %q: %w", req.Email, domain.ErrInvalidInput)
		}
	}
	estadoCivil := ""
	if req.EstadoCivil != "" {
		estadoCivil = importer.NormalizeToken(req.EstadoCivil)
		if !entity.EstadosCivis[estadoCivil] {
			return nil, fmt.Errorf("estado civil %q fora do conjunto aceito: %w",
				req.EstadoCivil, domain.ErrInvalidInput)
		}
	}

	now := time.Now()
	return &entity.Employee{
		ID:             uuid.New().String(),
		BranchID:       branchID,
		Nome:           req.Nome,
		CPF:            cpf,
		DataNascimento: nascimento,
		Cargo:          req.Cargo,
		Salario:        salario,
		Email:          req.Email,
		EstadoCivil:    estadoCivil,
		Status:         entity.EmployeeStatusPendente,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (uc *EmployeeUseCase) authorizeBranch(ctx context.Context, actor entity.Actor, branchID string) error {
	scope, err := uc.branches.GetScope(ctx, branchID)
	if err != nil {
		return err
	}
	if scope == nil {
		return fmt.Errorf("filial %s: %w", branchID, domain.ErrNotFound)
	}
	return authz.Authorize(actor, *scope)
}

func toEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:             e.ID,
		BranchID:       e.BranchID,
		Nome:           e.Nome,
		CPF:            br.FormatCPF(e.CPF),
		DataNascimento: e.DataNascimento.Format(importer.DateLayout),
		Cargo:          e.Cargo,
		Salario:        e.Salario.StringFixed(2),
		Email:          e.Email,
		EstadoCivil:    e.EstadoCivil,
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt,
	}
}

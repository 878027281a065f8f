package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/authz"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

var coberturas = map[string]bool{
	entity.CoberturaVida:  true,
	entity.CoberturaSaude: true,
	entity.CoberturaOutro: true,
}

// PlanUseCase cadastro de planos contratados por filial.
type PlanUseCase struct {
	plans    repository.PlanRepository
	branches repository.BranchRepository
	log      *logger.Logger
}

// NewPlanUseCase constrói o caso de uso.
func NewPlanUseCase(plans repository.PlanRepository, branches repository.BranchRepository, log *logger.Logger) *PlanUseCase {
	return &PlanUseCase{plans: plans, branches: branches, log: log}
}

// CreatePlan cria um plano sob uma filial. O prêmio chega como texto decimal
// exato; float nunca entra no caminho do dinheiro. Faixas etárias são aceitas
// apenas para cobertura saúde e não podem se sobrepor.
func (uc *PlanUseCase) CreatePlan(ctx context.Context, actor entity.Actor, req dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	scope, err := uc.branchScope(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, *scope); err != nil {
		return nil, err
	}
	if req.Nome == "" || req.Seguradora == "" {
		return nil, fmt.Errorf("nome e seguradora são obrigatórios: %w", domain.ErrInvalidInput)
	}
	if !coberturas[req.Cobertura] {
		return nil, fmt.Errorf("cobertura %q desconhecida: %w", req.Cobertura, domain.ErrInvalidInput)
	}
	premium, err := parsePremium(req.MonthlyPremium)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	plan := &entity.Plan{
		ID:             uuid.New().String(),
		BranchID:       req.BranchID,
		Seguradora:     req.Seguradora,
		Nome:           req.Nome,
		Cobertura:      req.Cobertura,
		MonthlyPremium: premium,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if len(req.AgeBands) > 0 {
		if req.Cobertura != entity.CoberturaSaude {
			return nil, fmt.Errorf("faixas etárias só valem para cobertura saúde: %w", domain.ErrInvalidInput)
		}
		bands, err := buildAgeBands(plan.ID, req.AgeBands)
		if err != nil {
			return nil, err
		}
		plan.AgeBands = bands
	}

	if err := uc.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	uc.log.Info().Str("plan_id", plan.ID).Str("branch_id", plan.BranchID).Str("cobertura", plan.Cobertura).Msg("plano criado")
	resp := toPlanResponse(plan)
	return &resp, nil
}

// GetPlan carrega um plano, sujeito ao escopo do ator.
func (uc *PlanUseCase) GetPlan(ctx context.Context, actor entity.Actor, id string) (*dto.PlanResponse, error) {
	plan, err := uc.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("plano %s: %w", id, domain.ErrNotFound)
	}
	scope, err := uc.branchScope(ctx, plan.BranchID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, *scope); err != nil {
		return nil, err
	}
	resp := toPlanResponse(plan)
	return &resp, nil
}

// ListPlans lista os planos de uma filial.
func (uc *PlanUseCase) ListPlans(ctx context.Context, actor entity.Actor, branchID string, page dto.PageRequest) (*dto.PlanListResponse, error) {
	page.DefaultPage()
	scope, err := uc.branchScope(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, *scope); err != nil {
		return nil, err
	}
	items, err := uc.plans.ListByBranch(ctx, branchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.PlanListResponse{Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
	for _, p := range items {
		resp.Items = append(resp.Items, toPlanResponse(p))
	}
	return resp, nil
}

func (uc *PlanUseCase) branchScope(ctx context.Context, branchID string) (*authz.Scope, error) {
	scope, err := uc.branches.GetScope(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if scope == nil {
		return nil, fmt.Errorf("filial %s: %w", branchID, domain.ErrNotFound)
	}
	return scope, nil
}

func parsePremium(raw string) (decimal.Decimal, error) {
	premium, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("prêmio %q ilegível: %w", raw, domain.ErrInvalidInput)
	}
	if !premium.IsPositive() {
		return decimal.Zero, fmt.Errorf("prêmio deve ser positivo: %w", domain.ErrInvalidInput)
	}
	return premium, nil
}

func buildAgeBands(planID string, reqs []dto.PlanAgeBandRequest) ([]entity.PlanAgeBand, error) {
	bands := make([]entity.PlanAgeBand, 0, len(reqs))
	for _, b := range reqs {
		if b.AgeMin < 0 || b.AgeMax < b.AgeMin {
			return nil, fmt.Errorf("faixa etária %d-%d inválida: %w", b.AgeMin, b.AgeMax, domain.ErrInvalidInput)
		}
		premium, err := parsePremium(b.Premium)
		if err != nil {
			return nil, err
		}
		for _, prev := range bands {
			if b.AgeMin <= prev.AgeMax && prev.AgeMin <= b.AgeMax {
				return nil, fmt.Errorf("faixas %d-%d e %d-%d se sobrepõem: %w",
					prev.AgeMin, prev.AgeMax, b.AgeMin, b.AgeMax, domain.ErrInvalidInput)
			}
		}
		bands = append(bands, entity.PlanAgeBand{
			ID:      uuid.New().String(),
			PlanID:  planID,
			AgeMin:  b.AgeMin,
			AgeMax:  b.AgeMax,
			Premium: premium,
		})
	}
	return bands, nil
}

func toPlanResponse(p *entity.Plan) dto.PlanResponse {
	return dto.PlanResponse{
		ID: p.ID, BranchID: p.BranchID, Seguradora: p.Seguradora, Nome: p.Nome,
		Cobertura: p.Cobertura, MonthlyPremium: p.MonthlyPremium.StringFixed(2),
		CreatedAt: p.CreatedAt,
	}
}

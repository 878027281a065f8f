// Package enrollment contém os casos de uso do ciclo de vida de matrícula:
// ativação, solicitação e resolução de exclusão, vínculo a planos.
package enrollment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/authz"
	domenrollment "github.com/mktfun/gps-rh-api/internal/domain/enrollment"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	dompendencia "github.com/mktfun/gps-rh-api/internal/domain/pendencia"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

// UseCase aplica as regras de matrícula. Toda operação recebe o Actor
// explicitamente; nada é lido de sessão ou estado ambiente.
type UseCase struct {
	branches       repository.BranchRepository
	employees      repository.EmployeeRepository
	plans          repository.PlanRepository
	matriculations repository.MatriculationRepository
	pendencias     repository.PendenciaRepository
	tx             TxRunner
	slaDays        int
	log            *logger.Logger
}

// NewUseCase constrói o caso de uso. slaDays <= 0 usa o padrão de 7 dias.
func NewUseCase(
	branches repository.BranchRepository,
	employees repository.EmployeeRepository,
	plans repository.PlanRepository,
	matriculations repository.MatriculationRepository,
	pendencias repository.PendenciaRepository,
	tx TxRunner,
	slaDays int,
	log *logger.Logger,
) *UseCase {
	if slaDays <= 0 {
		slaDays = dompendencia.DefaultSLADays
	}
	return &UseCase{
		branches:       branches,
		employees:      employees,
		plans:          plans,
		matriculations: matriculations,
		pendencias:     pendencias,
		tx:             tx,
		slaDays:        slaDays,
		log:            log,
	}
}

// ActivateEmployee ativa um funcionário pendente (corretora). A escrita é um
// único UPDATE condicional: sob corrida, só um chamador vence.
func (uc *UseCase) ActivateEmployee(ctx context.Context, actor entity.Actor, employeeID string) error {
	emp, err := uc.loadEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	if err := uc.authorizeBranch(ctx, actor, emp.BranchID); err != nil {
		return err
	}
	if err := domenrollment.CanTransitionEmployee(actor.Role, emp.Status, entity.EmployeeStatusAtivo); err != nil {
		return err
	}
	changed, err := uc.employees.UpdateStatusIf(ctx, employeeID, entity.EmployeeStatusPendente, entity.EmployeeStatusAtivo)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("funcionário %s não está mais pendente: %w", employeeID, domain.ErrConflict)
	}
	uc.log.Info().Str("employee_id", employeeID).Str("actor", actor.UserID).Msg("funcionário ativado")
	return nil
}

// RequestRemoval registra a solicitação de exclusão de um funcionário ativo
// (empresa). A transição e a pendência de cancelamento nascem na mesma
// transação: sem trilha de aprovação não há solicitação.
func (uc *UseCase) RequestRemoval(ctx context.Context, actor entity.Actor, employeeID string) (*dto.RequestRemovalResponse, error) {
	emp, err := uc.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	scope, err := uc.branchScope(ctx, emp.BranchID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, *scope); err != nil {
		return nil, err
	}
	if err := domenrollment.CanTransitionEmployee(actor.Role, emp.Status, entity.EmployeeStatusExclusaoSolicitada); err != nil {
		return nil, err
	}
	open, err := uc.pendencias.HasOpenRemoval(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, fmt.Errorf("funcionário %s já tem solicitação de exclusão aberta: %w", employeeID, domain.ErrConflict)
	}

	now := time.Now()
	protocol := dompendencia.NewProtocol(now)
	err = uc.tx.Run(ctx, func(
		employees repository.EmployeeRepository,
		_ repository.MatriculationRepository,
		pendencias repository.PendenciaRepository,
	) error {
		changed, err := employees.UpdateStatusIf(ctx, employeeID, entity.EmployeeStatusAtivo, entity.EmployeeStatusExclusaoSolicitada)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("funcionário %s não está ativo: %w", employeeID, domain.ErrConflict)
		}
		p := &entity.Pendencia{
			ID:          uuid.New().String(),
			Protocol:    protocol,
			Tipo:        entity.PendenciaTipoCancelamento,
			Status:      entity.PendenciaStatusPendente,
			Description: fmt.Sprintf("Exclusão do funcionário %s solicitada pela empresa", emp.Nome),
			EmployeeID:  emp.ID,
			BranchID:    scope.BranchID,
			BrokerID:    scope.BrokerID,
			DueDate:     dompendencia.DueDate(now, uc.slaDays),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := pendencias.Create(ctx, p); err != nil {
			// Índice único parcial: no máximo uma pendência de exclusão aberta
			// por funcionário. A transição é desfeita junto.
			return fmt.Errorf("pendência de exclusão não criada, solicitação desfeita: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("employee_id", employeeID).Str("protocol", protocol).Msg("exclusão solicitada")
	return &dto.RequestRemovalResponse{
		Status:   string(entity.EmployeeStatusExclusaoSolicitada),
		Protocol: protocol,
	}, nil
}

// ResolveRemoval aprova ou nega a solicitação de exclusão (corretora).
// O UPDATE é condicional ao estado atual: de duas resoluções concorrentes,
// exatamente uma vence e a outra recebe o desfecho "nao_pendente" — resultado
// estruturado, não exceção.
//
// Na aprovação, as matrículas do funcionário são inativadas na mesma
// transação: uma matrícula ativa nunca sobrevive ao estado terminal do dono.
func (uc *UseCase) ResolveRemoval(ctx context.Context, actor entity.Actor, employeeID string, approved bool) (*dto.ResolveRemovalResponse, error) {
	emp, err := uc.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorizeBranch(ctx, actor, emp.BranchID); err != nil {
		return nil, err
	}
	target := entity.EmployeeStatusAtivo
	if approved {
		target = entity.EmployeeStatusExcluido
	}
	if err := domenrollment.CanTransitionEmployee(actor.Role, entity.EmployeeStatusExclusaoSolicitada, target); err != nil {
		return nil, err
	}

	resp := &dto.ResolveRemovalResponse{}
	err = uc.tx.Run(ctx, func(
		employees repository.EmployeeRepository,
		matriculations repository.MatriculationRepository,
		pendencias repository.PendenciaRepository,
	) error {
		changed, err := employees.UpdateStatusIf(ctx, employeeID, entity.EmployeeStatusExclusaoSolicitada, target)
		if err != nil {
			return err
		}
		if !changed {
			resp.Status = "nao_pendente"
			resp.Message = "a solicitação de exclusão já foi resolvida por outro usuário"
			return nil
		}
		if approved {
			if _, err := matriculations.DeactivateByEmployee(ctx, employeeID); err != nil {
				return err
			}
			if _, err := pendencias.ResolveOpenRemoval(ctx, employeeID, entity.PendenciaStatusResolvida); err != nil {
				return err
			}
			resp.Status = "aprovado"
			resp.Message = "funcionário excluído e matrículas inativadas"
			return nil
		}
		if _, err := pendencias.ResolveOpenRemoval(ctx, employeeID, entity.PendenciaStatusCancelada); err != nil {
			return err
		}
		resp.Status = "negado"
		resp.Message = "funcionário mantido ativo"
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("employee_id", employeeID).
		Bool("approved", approved).
		Str("outcome", resp.Status).
		Msg("solicitação de exclusão resolvida")
	return resp, nil
}

// AddToPlan matricula um lote de funcionários em um plano. O gate avalia o
// lote inteiro antes de qualquer escrita; as matrículas e as pendências de
// ativação nascem todas na mesma transação.
func (uc *UseCase) AddToPlan(ctx context.Context, actor entity.Actor, planID string, employeeIDs []string) (*dto.AddToPlanResponse, error) {
	if len(employeeIDs) == 0 {
		return nil, fmt.Errorf("nenhum funcionário informado: %w", domain.ErrInvalidInput)
	}
	plan, err := uc.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("plano %s: %w", planID, domain.ErrNotFound)
	}
	scope, err := uc.branchScope(ctx, plan.BranchID)
	if err != nil {
		return nil, err
	}

	// Carrega e critica todos os alvos antes de autorizar e de escrever.
	emps := make([]*entity.Employee, 0, len(employeeIDs))
	scopes := make([]authz.Scope, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		emp, err := uc.loadEmployee(ctx, id)
		if err != nil {
			return nil, err
		}
		if emp.BranchID != plan.BranchID {
			return nil, fmt.Errorf("funcionário %s não pertence à filial do plano: %w", id, domain.ErrInvalidInput)
		}
		if emp.Status == entity.EmployeeStatusExcluido {
			return nil, fmt.Errorf("funcionário %s está excluído: %w", id, domain.ErrConflict)
		}
		emps = append(emps, emp)
		scopes = append(scopes, *scope)
	}
	if err := authz.AuthorizeAll(actor, scopes); err != nil {
		return nil, err
	}

	now := time.Now()
	protocols := make([]string, 0, len(emps))
	err = uc.tx.Run(ctx, func(
		_ repository.EmployeeRepository,
		matriculations repository.MatriculationRepository,
		pendencias repository.PendenciaRepository,
	) error {
		for _, emp := range emps {
			m := &entity.Matriculation{
				ID:         uuid.New().String(),
				PlanID:     plan.ID,
				EmployeeID: emp.ID,
				Status:     entity.MatriculationStatusPendente,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := matriculations.Create(ctx, m); err != nil {
				return fmt.Errorf("funcionário %s no plano %s: %w", emp.ID, plan.ID, err)
			}
			protocol := dompendencia.NewProtocol(now)
			p := &entity.Pendencia{
				ID:          uuid.New().String(),
				Protocol:    protocol,
				Tipo:        entity.PendenciaTipoAtivacao,
				Status:      entity.PendenciaStatusPendente,
				Description: fmt.Sprintf("Ativação de %s no plano %s", emp.Nome, plan.Nome),
				EmployeeID:  emp.ID,
				BranchID:    scope.BranchID,
				BrokerID:    scope.BrokerID,
				DueDate:     dompendencia.DueDate(now, uc.slaDays),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := pendencias.Create(ctx, p); err != nil {
				return fmt.Errorf("matrícula sem trilha de aprovação, lote desfeito: %w", err)
			}
			protocols = append(protocols, protocol)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("plan_id", planID).Int("count", len(emps)).Msg("funcionários matriculados")
	return &dto.AddToPlanResponse{Matriculated: len(emps), Protocols: protocols}, nil
}

// UpdateMatriculationStatus move o status de uma matrícula específica.
// A transição é avaliada por matrícula — um funcionário pode ter planos em
// estágios diferentes ao mesmo tempo.
func (uc *UseCase) UpdateMatriculationStatus(ctx context.Context, actor entity.Actor, planID, employeeID string, status string) error {
	target := entity.MatriculationStatus(status)
	m, err := uc.matriculations.GetByPlanAndEmployee(ctx, planID, employeeID)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("matrícula do funcionário %s no plano %s: %w", employeeID, planID, domain.ErrNotFound)
	}
	plan, err := uc.plans.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	scope, err := uc.branchScope(ctx, plan.BranchID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, *scope); err != nil {
		return err
	}
	if err := domenrollment.CanTransitionMatriculation(actor.Role, m.Status, target); err != nil {
		return err
	}

	// Consistência causal: matrícula não ativa sob funcionário excluído.
	if target == entity.MatriculationStatusAtivo {
		emp, err := uc.loadEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		if emp.Status == entity.EmployeeStatusExcluido {
			return fmt.Errorf("funcionário %s excluído, matrícula não pode ativar: %w", employeeID, domain.ErrInvariant)
		}
	}

	return uc.tx.Run(ctx, func(
		_ repository.EmployeeRepository,
		matriculations repository.MatriculationRepository,
		pendencias repository.PendenciaRepository,
	) error {
		changed, err := matriculations.UpdateStatusIf(ctx, planID, employeeID, m.Status, target)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("status da matrícula mudou, recarregue: %w", domain.ErrConflict)
		}
		if target != entity.MatriculationStatusExclusaoSolicitada {
			return nil
		}
		now := time.Now()
		// MatriculaID marca o alvo: esta pendência cancela UMA matrícula, não o
		// funcionário. Sem ela, o índice de exclusão aberta por funcionário
		// barraria um segundo cancelamento legítimo em outro plano.
		p := &entity.Pendencia{
			ID:          uuid.New().String(),
			Protocol:    dompendencia.NewProtocol(now),
			Tipo:        entity.PendenciaTipoCancelamento,
			Status:      entity.PendenciaStatusPendente,
			Description: fmt.Sprintf("Cancelamento da matrícula no plano %s solicitado", plan.Nome),
			EmployeeID:  employeeID,
			MatriculaID: &m.ID,
			BranchID:    scope.BranchID,
			BrokerID:    scope.BrokerID,
			DueDate:     dompendencia.DueDate(now, uc.slaDays),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := pendencias.Create(ctx, p); err != nil {
			return fmt.Errorf("pendência de cancelamento não criada, transição desfeita: %w", err)
		}
		return nil
	})
}

func (uc *UseCase) loadEmployee(ctx context.Context, id string) (*entity.Employee, error) {
	emp, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, fmt.Errorf("funcionário %s: %w", id, domain.ErrNotFound)
	}
	return emp, nil
}

func (uc *UseCase) branchScope(ctx context.Context, branchID string) (*authz.Scope, error) {
	scope, err := uc.branches.GetScope(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if scope == nil {
		return nil, fmt.Errorf("filial %s: %w", branchID, domain.ErrNotFound)
	}
	return scope, nil
}

func (uc *UseCase) authorizeBranch(ctx context.Context, actor entity.Actor, branchID string) error {
	scope, err := uc.branchScope(ctx, branchID)
	if err != nil {
		return err
	}
	return authz.Authorize(actor, *scope)
}

// Package pendencia expõe a fila de trabalho de pendências por papel.
package pendencia

import (
	"context"
	"fmt"
	"time"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	dompendencia "github.com/mktfun/gps-rh-api/internal/domain/pendencia"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

// UseCase listagem de pendências com prioridade derivada na leitura.
type UseCase struct {
	pendencias repository.PendenciaRepository
	now        func() time.Time
	log        *logger.Logger
}

// NewUseCase constrói o caso de uso. now == nil usa time.Now.
func NewUseCase(pendencias repository.PendenciaRepository, now func() time.Time, log *logger.Logger) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{pendencias: pendencias, now: now, log: log}
}

// List devolve as pendências visíveis ao ator, mais novas primeiro conforme a
// ordenação do repositório. O escopo vem do papel: admin enxerga tudo,
// corretora só a sua carteira, empresa só as próprias filiais. A prioridade é
// recalculada a cada chamada a partir do relógio; duas leituras em dias
// diferentes podem classificar a mesma pendência de formas diferentes.
func (uc *UseCase) List(ctx context.Context, actor entity.Actor, status string, page dto.PageRequest) (*dto.PendenciaListResponse, error) {
	page.DefaultPage()
	filter := repository.PendenciaFilter{Status: status, Limit: page.Limit, Offset: page.Offset}
	switch actor.Role {
	case entity.RoleAdmin:
		// sem filtro de escopo
	case entity.RoleCorretora:
		if actor.BrokerID == "" {
			return nil, fmt.Errorf("corretora sem escopo: %w", domain.ErrForbidden)
		}
		filter.BrokerID = actor.BrokerID
	case entity.RoleEmpresa:
		if actor.CompanyID == "" {
			return nil, fmt.Errorf("empresa sem escopo: %w", domain.ErrForbidden)
		}
		filter.CompanyID = actor.CompanyID
	default:
		return nil, fmt.Errorf("papel %q: %w", actor.Role, domain.ErrForbidden)
	}

	items, err := uc.pendencias.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	resp := &dto.PendenciaListResponse{
		Items: make([]dto.PendenciaResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range items {
		resp.Items = append(resp.Items, dto.PendenciaResponse{
			ID:          p.ID,
			Protocol:    p.Protocol,
			Tipo:        p.Tipo,
			Status:      p.Status,
			Description: p.Description,
			EmployeeID:  p.EmployeeID,
			MatriculaID: p.MatriculaID,
			BranchID:    p.BranchID,
			BrokerID:    p.BrokerID,
			DueDate:     p.DueDate,
			CreatedAt:   p.CreatedAt,
			Priority:    dompendencia.Priority(p.CreatedAt, now),
		})
	}
	return resp, nil
}

package pendencia_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/application/pendencia"
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

// fakePendencias devolve o filtro recebido junto com os itens, para os testes
// inspecionarem o escopo aplicado.
type fakePendencias struct {
	items  []*entity.Pendencia
	filter repository.PendenciaFilter
}

func (f *fakePendencias) Create(context.Context, *entity.Pendencia) error { return nil }

func (f *fakePendencias) List(_ context.Context, flt repository.PendenciaFilter) ([]*entity.Pendencia, error) {
	f.filter = flt
	return f.items, nil
}

func (f *fakePendencias) HasOpenRemoval(context.Context, string) (bool, error) { return false, nil }

func (f *fakePendencias) ResolveOpenRemoval(context.Context, string, string) (int64, error) {
	return 0, nil
}

func pendenciaCriadaHa(dias int, ref time.Time) *entity.Pendencia {
	return &entity.Pendencia{
		ID: "p", Protocol: "PRT-X", Tipo: entity.PendenciaTipoAtivacao,
		Status: entity.PendenciaStatusPendente, BranchID: "cnpj-1", BrokerID: "corr-1",
		CreatedAt: ref.AddDate(0, 0, -dias),
	}
}

func TestList_EscopoPorPapel(t *testing.T) {
	cases := []struct {
		name          string
		actor         entity.Actor
		wantBrokerID  string
		wantCompanyID string
	}{
		{"admin sem filtro", entity.Actor{Role: entity.RoleAdmin}, "", ""},
		{"corretora filtra carteira", entity.Actor{Role: entity.RoleCorretora, BrokerID: "corr-1"}, "corr-1", ""},
		{"empresa filtra empresa", entity.Actor{Role: entity.RoleEmpresa, CompanyID: "emp-1"}, "", "emp-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakePendencias{}
			uc := pendencia.NewUseCase(repo, nil, logger.Nop())

			_, err := uc.List(context.Background(), tc.actor, "", dto.PageRequest{})
			require.NoError(t, err)
			assert.Equal(t, tc.wantBrokerID, repo.filter.BrokerID)
			assert.Equal(t, tc.wantCompanyID, repo.filter.CompanyID)
			assert.Equal(t, 20, repo.filter.Limit, "paginação padrão aplicada")
		})
	}
}

func TestList_AtorSemEscopoNegado(t *testing.T) {
	repo := &fakePendencias{}
	uc := pendencia.NewUseCase(repo, nil, logger.Nop())

	_, err := uc.List(context.Background(), entity.Actor{Role: entity.RoleCorretora}, "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// A prioridade sai do relógio, não do banco: a mesma pendência lida em dias
// diferentes muda de classificação.
func TestList_PrioridadeDerivadaNaLeitura(t *testing.T) {
	ref := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakePendencias{items: []*entity.Pendencia{
		pendenciaCriadaHa(3, ref),
		pendenciaCriadaHa(20, ref),
		pendenciaCriadaHa(45, ref),
	}}
	uc := pendencia.NewUseCase(repo, func() time.Time { return ref }, logger.Nop())

	resp, err := uc.List(context.Background(), entity.Actor{Role: entity.RoleAdmin}, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 3)

	assert.Equal(t, entity.PrioridadeNormal, resp.Items[0].Priority)
	assert.Equal(t, entity.PrioridadeUrgente, resp.Items[1].Priority)
	assert.Equal(t, entity.PrioridadeCritica, resp.Items[2].Priority)
}

func TestList_FiltroDeStatusRepassado(t *testing.T) {
	repo := &fakePendencias{}
	uc := pendencia.NewUseCase(repo, nil, logger.Nop())

	_, err := uc.List(context.Background(), entity.Actor{Role: entity.RoleAdmin},
		entity.PendenciaStatusPendente, dto.PageRequest{Limit: 50, Offset: 100})
	require.NoError(t, err)
	assert.Equal(t, entity.PendenciaStatusPendente, repo.filter.Status)
	assert.Equal(t, 50, repo.filter.Limit)
	assert.Equal(t, 100, repo.filter.Offset)
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktfun/gps-rh-api/internal/application/dto"
	"github.com/mktfun/gps-rh-api/internal/application/usecase"
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/authz"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/pkg/br"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

type fakeBranches struct{ scopes map[string]*authz.Scope }

func (f fakeBranches) Create(context.Context, *entity.Branch) error { return nil }
func (f fakeBranches) GetByID(context.Context, string) (*entity.Branch, error) {
	return nil, nil
}
func (f fakeBranches) ListByCompany(context.Context, string, int, int) ([]*entity.Branch, error) {
	return nil, nil
}
func (f fakeBranches) GetScope(_ context.Context, branchID string) (*authz.Scope, error) {
	return f.scopes[branchID], nil
}

type fakeEmployees struct {
	created *entity.Employee
	byID    map[string]*entity.Employee
}

func (f *fakeEmployees) Create(_ context.Context, e *entity.Employee) error {
	f.created = e
	return nil
}
func (f *fakeEmployees) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	return f.byID[id], nil
}
func (f *fakeEmployees) ListByBranch(context.Context, string, int, int) ([]*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployees) SnapshotByBranch(context.Context, string) (map[string]*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployees) UpdateStatusIf(context.Context, string, entity.EmployeeStatus, entity.EmployeeStatus) (bool, error) {
	return false, nil
}

func branchesComEscopo() fakeBranches {
	return fakeBranches{scopes: map[string]*authz.Scope{
		"cnpj-1": {BranchID: "cnpj-1", CompanyID: "emp-1", BrokerID: "corr-1"},
	}}
}

var atorCorretora = entity.Actor{UserID: "u1", Role: entity.RoleCorretora, BrokerID: "corr-1"}

func requisicaoValida() dto.CreateEmployeeRequest {
	return dto.CreateEmployeeRequest{
		Nome:           "Maria Silva",
		CPF:            "529.982.247-25",
		DataNascimento: "23/04/1987",
		Cargo:          "Analista",
		Salario:        "3.200,00",
		Email:          "maria@empresa.com.br",
		EstadoCivil:    "Casada",
	}
}

func TestCreateEmployee_NormalizaCampos(t *testing.T) {
	repo := &fakeEmployees{}
	uc := usecase.NewEmployeeUseCase(repo, branchesComEscopo(), br.DefaultCurrencyBounds(), logger.Nop())

	req := requisicaoValida()
	req.EstadoCivil = "Casado"
	resp, err := uc.CreateEmployee(context.Background(), atorCorretora, "cnpj-1", req)
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.Equal(t, "52998224725", repo.created.CPF, "persistido canônico")
	assert.Equal(t, "529.982.247-25", resp.CPF, "exibido formatado")
	assert.Equal(t, "casado", repo.created.EstadoCivil)
	assert.Equal(t, "3200.00", repo.created.Salario.StringFixed(2))
	assert.Equal(t, entity.EmployeeStatusPendente, repo.created.Status, "cadastro nasce pendente")
}

func TestCreateEmployee_EntradasInvalidas(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*dto.CreateEmployeeRequest)
	}{
		{"cpf checksum errado", func(r *dto.CreateEmployeeRequest) { r.CPF = "529.982.247-26" }},
		{"data ISO rejeitada", func(r *dto.CreateEmployeeRequest) { r.DataNascimento = "1987-04-23" }},
		{"salário fora da faixa", func(r *dto.CreateEmployeeRequest) { r.Salario = "5" }},
		{"email sem arroba", func(r *dto.CreateEmployeeRequest) { r.Email = "maria.empresa.com" }},
		{"estado civil desconhecido", func(r *dto.CreateEmployeeRequest) { r.EstadoCivil = "comprometida" }},
		{"nome vazio", func(r *dto.CreateEmployeeRequest) { r.Nome = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeEmployees{}
			uc := usecase.NewEmployeeUseCase(repo, branchesComEscopo(), br.DefaultCurrencyBounds(), logger.Nop())
			req := requisicaoValida()
			tc.mut(&req)

			_, err := uc.CreateEmployee(context.Background(), atorCorretora, "cnpj-1", req)
			require.Error(t, err)
			assert.Nil(t, repo.created, "nada persiste com entrada inválida")
		})
	}
}

func TestCreateEmployee_FilialForaDoEscopo(t *testing.T) {
	uc := usecase.NewEmployeeUseCase(&fakeEmployees{}, branchesComEscopo(), br.DefaultCurrencyBounds(), logger.Nop())
	fora := entity.Actor{UserID: "u2", Role: entity.RoleCorretora, BrokerID: "corr-9"}

	_, err := uc.CreateEmployee(context.Background(), fora, "cnpj-1", requisicaoValida())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateEmployee_FilialInexistente(t *testing.T) {
	uc := usecase.NewEmployeeUseCase(&fakeEmployees{}, branchesComEscopo(), br.DefaultCurrencyBounds(), logger.Nop())

	_, err := uc.CreateEmployee(context.Background(), atorCorretora, "cnpj-9", requisicaoValida())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

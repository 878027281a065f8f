package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
)

func novoMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

// O UPDATE condicional carrega o status esperado no WHERE: é o banco que
// decide o vencedor da corrida, não o processo.
func TestEmployeeUpdateStatusIf_Vence(t *testing.T) {
	mock := novoMock(t)
	mock.ExpectExec("UPDATE funcionarios SET status").
		WithArgs("f1", entity.EmployeeStatusPendente, entity.EmployeeStatusAtivo).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewEmployeeRepository(mock)
	changed, err := repo.UpdateStatusIf(context.Background(), "f1",
		entity.EmployeeStatusPendente, entity.EmployeeStatusAtivo)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestEmployeeUpdateStatusIf_PerdeACorrida(t *testing.T) {
	mock := novoMock(t)
	mock.ExpectExec("UPDATE funcionarios SET status").
		WithArgs("f1", entity.EmployeeStatusExclusaoSolicitada, entity.EmployeeStatusExcluido).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewEmployeeRepository(mock)
	changed, err := repo.UpdateStatusIf(context.Background(), "f1",
		entity.EmployeeStatusExclusaoSolicitada, entity.EmployeeStatusExcluido)
	require.NoError(t, err)
	assert.False(t, changed, "zero linhas afetadas não é erro, é corrida perdida")
}

func TestEmployeeCreate_ViolacaoDeUnicidadeViraDuplicado(t *testing.T) {
	mock := novoMock(t)
	mock.ExpectExec("INSERT INTO funcionarios").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: "funcionarios_cnpj_id_cpf_key",
		})

	repo := NewEmployeeRepository(mock)
	err := repo.Create(context.Background(), &entity.Employee{
		ID: "f1", BranchID: "cnpj-1", Nome: "Maria", CPF: "52998224725",
		Salario: decimal.NewFromInt(2500), Status: entity.EmployeeStatusPendente,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEmployeeGetByID_Inexistente(t *testing.T) {
	mock := novoMock(t)
	mock.ExpectQuery("SELECT .+ FROM funcionarios WHERE id").
		WithArgs("nao-existe").
		WillReturnRows(pgxmock.NewRows(employeeTestColumns()))

	repo := NewEmployeeRepository(mock)
	emp, err := repo.GetByID(context.Background(), "nao-existe")
	require.NoError(t, err)
	assert.Nil(t, emp, "ausência é nil, não erro")
}

// O snapshot cobre todos os status, inclusive excluídos: a constraint única de
// CPF por filial não distingue status, então o excluído ainda é duplicata.
func TestEmployeeSnapshotByBranch_IndexadoPorCPF(t *testing.T) {
	mock := novoMock(t)
	now := time.Now()
	rows := pgxmock.NewRows(employeeTestColumns()).
		AddRow("f1", "cnpj-1", "Maria", "52998224725", now.AddDate(-30, 0, 0), "Analista",
			decimal.NewFromInt(2500), "maria@x.com", "casado", entity.EmployeeStatusAtivo, now, now).
		AddRow("f2", "cnpj-1", "João", "11144477735", now.AddDate(-40, 0, 0), "Gerente",
			decimal.NewFromInt(9000), "joao@x.com", "solteiro", entity.EmployeeStatusExcluido, now, now)
	mock.ExpectQuery("SELECT .+ FROM funcionarios WHERE cnpj_id").
		WithArgs("cnpj-1").
		WillReturnRows(rows)

	repo := NewEmployeeRepository(mock)
	snapshot, err := repo.SnapshotByBranch(context.Background(), "cnpj-1")
	require.NoError(t, err)

	require.Len(t, snapshot, 2)
	require.Contains(t, snapshot, "52998224725")
	assert.Equal(t, "Maria", snapshot["52998224725"].Nome)
	require.Contains(t, snapshot, "11144477735", "funcionário excluído continua no snapshot")
	assert.Equal(t, entity.EmployeeStatusExcluido, snapshot["11144477735"].Status)
}

// Conexão caída na leitura é retentada; a segunda tentativa responde.
func TestEmployeeGetByID_RetryEmErroTransiente(t *testing.T) {
	mock := novoMock(t)
	mock.ExpectQuery("SELECT .+ FROM funcionarios WHERE id").
		WithArgs("f1").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure})
	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM funcionarios WHERE id").
		WithArgs("f1").
		WillReturnRows(pgxmock.NewRows(employeeTestColumns()).
			AddRow("f1", "cnpj-1", "Maria", "52998224725", now.AddDate(-30, 0, 0), "Analista",
				decimal.NewFromInt(2500), "maria@x.com", "casado", entity.EmployeeStatusAtivo, now, now))

	repo := NewEmployeeRepository(mock)
	emp, err := repo.GetByID(context.Background(), "f1")
	require.NoError(t, err)
	require.NotNil(t, emp)
	assert.Equal(t, "Maria", emp.Nome)
}

func employeeTestColumns() []string {
	return []string{"id", "cnpj_id", "nome", "cpf", "data_nascimento", "cargo",
		"salario", "email", "estado_civil", "status", "created_at", "updated_at"}
}

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
)

// As consultas de exclusão aberta filtram matricula_id IS NULL: cancelamentos
// de matrícula usam o mesmo tipo mas nunca respondem por aqui.
func TestPendenciaHasOpenRemoval_SoExclusaoDeFuncionario(t *testing.T) {
	mock := novoMock(t)
	mock.ExpectQuery(`SELECT EXISTS \(\s*SELECT 1 FROM pendencias\s*WHERE funcionario_id = \$1 AND tipo = \$2 AND status = \$3 AND matricula_id IS NULL`).
		WithArgs("f1", entity.PendenciaTipoCancelamento, entity.PendenciaStatusPendente).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	repo := NewPendenciaRepository(mock)
	open, err := repo.HasOpenRemoval(context.Background(), "f1")
	require.NoError(t, err)
	assert.False(t, open)
}

func TestPendenciaResolveOpenRemoval_NaoTocaCancelamentoDeMatricula(t *testing.T) {
	mock := novoMock(t)
	mock.ExpectExec(`UPDATE pendencias SET status = \$2, updated_at = now\(\)\s+WHERE funcionario_id = \$1 AND tipo = \$3 AND status = \$4 AND matricula_id IS NULL`).
		WithArgs("f1", entity.PendenciaStatusResolvida, entity.PendenciaTipoCancelamento, entity.PendenciaStatusPendente).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewPendenciaRepository(mock)
	n, err := repo.ResolveOpenRemoval(context.Background(), "f1", entity.PendenciaStatusResolvida)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPendenciaCreate_ViolacaoDeIndiceViraDuplicado(t *testing.T) {
	mock := novoMock(t)
	mock.ExpectExec("INSERT INTO pendencias").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: "pendencias_exclusao_aberta_key",
		})

	repo := NewPendenciaRepository(mock)
	err := repo.Create(context.Background(), &entity.Pendencia{
		ID: "p1", Protocol: "PRT-20260901120000-ABC123",
		Tipo: entity.PendenciaTipoCancelamento, Status: entity.PendenciaStatusPendente,
		EmployeeID: "f1", BranchID: "cnpj-1", BrokerID: "corr-1",
		DueDate: time.Now().AddDate(0, 0, 7),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

package importer_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktfun/gps-rh-api/internal/application/importer"
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

// fakeEmployeeRepo implementação em memória da porta de funcionários, com
// unicidade de CPF por filial como no banco.
type fakeEmployeeRepo struct {
	mu      sync.Mutex
	byCPF   map[string]*entity.Employee
	failCPF map[string]error // CPF → erro injetado
	inserts int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byCPF: map[string]*entity.Employee{}, failCPF: map[string]error{}}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if err, ok := f.failCPF[e.CPF]; ok {
		return err
	}
	if _, dup := f.byCPF[e.CPF]; dup {
		return domain.ErrDuplicate
	}
	cp := *e
	f.byCPF[e.CPF] = &cp
	return nil
}

func (f *fakeEmployeeRepo) GetByID(context.Context, string) (*entity.Employee, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeEmployeeRepo) ListByBranch(context.Context, string, int, int) ([]*entity.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) SnapshotByBranch(context.Context, string) (map[string]*entity.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]*entity.Employee, len(f.byCPF))
	for k, v := range f.byCPF {
		out[k] = v
	}
	return out, nil
}

func (f *fakeEmployeeRepo) UpdateStatusIf(context.Context, string, entity.EmployeeStatus, entity.EmployeeStatus) (bool, error) {
	return false, nil
}

func validarLote(t *testing.T, rows [][]string) []importer.RowResult {
	t.Helper()
	results, err := novoValidator().Validate(mapeamentoPadrao(), rows, nil)
	require.NoError(t, err)
	return results
}

// Lote {valido, erro, aviso}: com skip_errors e sem confirmar avisos,
// só a linha válida entra.
func TestCommit_SkipErrorsSemAvisos(t *testing.T) {
	rows := validarLote(t, [][]string{
		linhaValida("Ana", cpfValido1),
		linhaValida("Bia", "123.456.789-00"), // CPF inválido
		linhaValida("Carla", cpfValido1),     // duplica a linha 0
	})
	repo := newFakeEmployeeRepo()
	c := importer.NewCommitter(repo, logger.Nop())

	res, err := c.Commit(context.Background(), "cnpj-1", rows, importer.CommitOptions{SkipErrors: true})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 2, res.Skipped)
	assert.Empty(t, res.Failures())
	assert.Len(t, repo.byCPF, 1)
}

// Confirmando os avisos, a duplicata do arquivo também tenta entrar — e o
// banco resolve: a segunda inserção do mesmo CPF vira desfecho "duplicado".
func TestCommit_AvisosConfirmados(t *testing.T) {
	rows := validarLote(t, [][]string{
		linhaValida("Ana", cpfValido1),
		linhaValida("Bia", "123.456.789-00"),
		linhaValida("Carla", cpfValido1),
	})
	repo := newFakeEmployeeRepo()
	c := importer.NewCommitter(repo, logger.Nop())

	res, err := c.Commit(context.Background(), "cnpj-1", rows,
		importer.CommitOptions{SkipErrors: true, AllowWarnings: true, Concurrency: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported, "o mesmo CPF só entra uma vez")
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Failures(), 1)
	assert.Equal(t, importer.OutcomeDuplicado, res.Failures()[0].Status,
		"violação de unicidade vira desfecho duplicado, não falha genérica")
}

func TestCommit_LoteComErroSemSkipRejeitado(t *testing.T) {
	rows := validarLote(t, [][]string{
		linhaValida("Ana", cpfValido1),
		linhaValida("Bia", "123.456.789-00"),
	})
	repo := newFakeEmployeeRepo()
	c := importer.NewCommitter(repo, logger.Nop())

	_, err := c.Commit(context.Background(), "cnpj-1", rows, importer.CommitOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, repo.inserts, "nada é escrito quando o lote é rejeitado")
}

// Falha de uma linha não aborta o lote: as demais continuam e o agregado
// reporta o desfecho de cada uma.
func TestCommit_FalhaParcialNaoAborta(t *testing.T) {
	rows := validarLote(t, [][]string{
		linhaValida("Ana", cpfValido1),
		linhaValida("Bia", cpfValido2),
	})
	repo := newFakeEmployeeRepo()
	repo.failCPF["11144477735"] = fmt.Errorf("conexão perdida")
	c := importer.NewCommitter(repo, logger.Nop())

	res, err := c.Commit(context.Background(), "cnpj-1", rows, importer.CommitOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
	require.Len(t, res.Failures(), 1)
	assert.Equal(t, importer.OutcomeFalhou, res.Failures()[0].Status)
	assert.Contains(t, res.Failures()[0].Reason, "conexão perdida")
}

// Desfechos saem ordenados por linha mesmo com inserções concorrentes.
func TestCommit_DesfechosEmOrdem(t *testing.T) {
	var rows [][]string
	cpfs := []string{"52998224725", "11144477735"}
	for i := 0; i < 8; i++ {
		rows = append(rows, linhaValida(fmt.Sprintf("Pessoa %d", i), cpfs[i%2]))
	}
	validated := validarLote(t, rows)
	repo := newFakeEmployeeRepo()
	c := importer.NewCommitter(repo, logger.Nop())

	res, err := c.Commit(context.Background(), "cnpj-1", validated,
		importer.CommitOptions{AllowWarnings: true, Concurrency: 4})
	require.NoError(t, err)

	require.Len(t, res.Outcomes, 8)
	for i, o := range res.Outcomes {
		assert.Equal(t, i, o.Row)
	}
	assert.Equal(t, 2, res.Imported, "um por CPF distinto")
}

// Contexto cancelado: linhas pendentes falham com motivo claro; as já
// inseridas permanecem (sem rollback compensatório).
func TestCommit_Cancelamento(t *testing.T) {
	rows := validarLote(t, [][]string{
		linhaValida("Ana", cpfValido1),
		linhaValida("Bia", cpfValido2),
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := newFakeEmployeeRepo()
	c := importer.NewCommitter(repo, logger.Nop())
	res, err := c.Commit(ctx, "cnpj-1", rows, importer.CommitOptions{})
	require.NoError(t, err)

	assert.Zero(t, res.Imported)
	require.Len(t, res.Failures(), 2)
	for _, f := range res.Failures() {
		assert.Contains(t, f.Reason, "cancelada")
	}
}

package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktfun/gps-rh-api/internal/application/importer"
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/pkg/br"
)

// CPFs válidos usados nas planilhas de teste.
const (
	cpfValido1 = "529.982.247-25"
	cpfValido2 = "111.444.777-35"
)

// Mapeamento típico: nome, cpf, nascimento, cargo, salário, email, estado civil.
func mapeamentoPadrao() importer.ColumnMapping {
	return importer.ColumnMapping{
		0: importer.FieldNome,
		1: importer.FieldCPF,
		2: importer.FieldDataNascimento,
		3: importer.FieldCargo,
		4: importer.FieldSalario,
		5: importer.FieldEmail,
		6: importer.FieldEstadoCivil,
	}
}

func novoValidator() *importer.Validator {
	return importer.NewValidator(br.DefaultCurrencyBounds())
}

func linhaValida(nome, cpf string) []string {
	return []string{nome, cpf, "23/04/1987", "Analista", "2.500,00", "a@b.com.br", "Casado"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeamento de colunas
// ──────────────────────────────────────────────────────────────────────────────

func TestMapping_CampoDesconhecidoRejeitado(t *testing.T) {
	m := importer.ColumnMapping{0: importer.FieldNome, 1: importer.FieldCPF,
		2: importer.FieldDataNascimento, 3: importer.FieldSalario, 4: "telefone"}
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidInput)
}

func TestMapping_CampoRepetidoRejeitado(t *testing.T) {
	m := importer.ColumnMapping{0: importer.FieldCPF, 1: importer.FieldCPF,
		2: importer.FieldNome, 3: importer.FieldDataNascimento, 4: importer.FieldSalario}
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidInput)
}

func TestMapping_ObrigatoriosAusentes(t *testing.T) {
	m := importer.ColumnMapping{0: importer.FieldNome} // sem cpf, nascimento, salário
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidInput)
}

func TestAutoMap_CabecalhosComAcento(t *testing.T) {
	headers := []string{"Nome Completo", "CPF", "Data de Nascimento", "Função", "Salário", "E-mail", "Observações"}
	m := importer.AutoMap(headers)

	assert.Equal(t, importer.FieldNome, m[0])
	assert.Equal(t, importer.FieldCPF, m[1])
	assert.Equal(t, importer.FieldDataNascimento, m[2])
	assert.Equal(t, importer.FieldCargo, m[3])
	assert.Equal(t, importer.FieldSalario, m[4])
	assert.Equal(t, importer.FieldEmail, m[5])
	assert.Equal(t, importer.FieldIgnore, m[6], "coluna não reconhecida é ignorada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validação linha a linha
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_LinhaCompletaValida(t *testing.T) {
	results, err := novoValidator().Validate(mapeamentoPadrao(),
		[][]string{linhaValida("Maria Silva", cpfValido1)}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, importer.SeverityValido, r.Status)
	assert.Empty(t, r.Issues)
	assert.Equal(t, "52998224725", r.Employee.CPF, "CPF canônico")
	assert.Equal(t, "Maria Silva", r.Employee.Nome)
	assert.Equal(t, "casado", r.Employee.EstadoCivil, "estado civil normalizado")
	assert.Equal(t, "2500.00", r.Employee.Salario.StringFixed(2))
	assert.Equal(t, 1987, r.Employee.DataNascimento.Year())
}

func TestValidate_ObrigatorioEmBranco(t *testing.T) {
	linha := linhaValida("", cpfValido1)
	results, err := novoValidator().Validate(mapeamentoPadrao(), [][]string{linha}, nil)
	require.NoError(t, err)

	r := results[0]
	assert.Equal(t, importer.SeverityErro, r.Status)
	require.NotEmpty(t, r.Issues)
	assert.Equal(t, importer.FieldNome, r.Issues[0].Field, "o problema nomeia o campo ausente")
}

func TestValidate_CamposInvalidos(t *testing.T) {
	cases := []struct {
		name  string
		mut   func([]string)
		field string
	}{
		{"cpf com checksum errado", func(l []string) { l[1] = "529.982.247-26" }, importer.FieldCPF},
		{"data fora do layout", func(l []string) { l[2] = "1987-04-23" }, importer.FieldDataNascimento},
		{"salário ilegível", func(l []string) { l[4] = "dois mil" }, importer.FieldSalario},
		{"salário em centavos", func(l []string) { l[4] = "2500000" }, importer.FieldSalario},
		{"email sem arroba", func(l []string) { l[5] = "maria.empresa.com" }, importer.FieldEmail},
		{"estado civil fora do conjunto", func(l []string) { l[6] = "comprometida" }, importer.FieldEstadoCivil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			linha := linhaValida("Maria", cpfValido1)
			tc.mut(linha)
			results, err := novoValidator().Validate(mapeamentoPadrao(), [][]string{linha}, nil)
			require.NoError(t, err)

			r := results[0]
			assert.Equal(t, importer.SeverityErro, r.Status)
			require.NotEmpty(t, r.Issues)
			assert.Equal(t, tc.field, r.Issues[0].Field)
		})
	}
}

func TestValidate_SugestaoAcionavel(t *testing.T) {
	linha := linhaValida("Maria", cpfValido1)
	linha[4] = "abc"
	results, _ := novoValidator().Validate(mapeamentoPadrao(), [][]string{linha}, nil)
	require.NotEmpty(t, results[0].Issues)
	assert.NotEmpty(t, results[0].Issues[0].Suggestion, "erro de salário vem com sugestão")
}

// Exatamente uma das duas linhas com o mesmo CPF é marcada como duplicada
// (a segunda); a primeira segue válida.
func TestValidate_DuplicataDentroDoArquivo(t *testing.T) {
	rows := [][]string{
		linhaValida("Maria", cpfValido1),
		linhaValida("Maria de Novo", "52998224725"), // mesmo CPF, sem pontuação
	}
	results, err := novoValidator().Validate(mapeamentoPadrao(), rows, nil)
	require.NoError(t, err)

	assert.Equal(t, importer.SeverityValido, results[0].Status)
	assert.Equal(t, importer.SeverityAviso, results[1].Status)
	require.NotEmpty(t, results[1].Issues)
	assert.Contains(t, results[1].Issues[0].Message, "duplicado no arquivo")
}

func TestValidate_DuplicataContraSnapshot(t *testing.T) {
	existente := map[string]*entity.Employee{
		"52998224725": {ID: "emp-1", Nome: "Maria Original", CPF: "52998224725"},
	}
	results, err := novoValidator().Validate(mapeamentoPadrao(),
		[][]string{linhaValida("Maria", cpfValido1)}, existente)
	require.NoError(t, err)

	r := results[0]
	assert.Equal(t, importer.SeverityAviso, r.Status)
	require.NotNil(t, r.Existing, "carrega o cadastro existente para a UI desambiguar")
	assert.Equal(t, "Maria Original", r.Existing.Nome)
	assert.Contains(t, r.Issues[0].Message, "Maria Original")
}

// Lote com 3 linhas: a 2 tem CPF inválido, a 3 repete o CPF da 1.
// Resultado esperado: {valido: 1, aviso: 1, erro: 1}.
func TestValidate_LoteMisto(t *testing.T) {
	rows := [][]string{
		linhaValida("Ana", cpfValido1),
		linhaValida("Bia", "123.456.789-00"),
		linhaValida("Carla", cpfValido1),
	}
	results, err := novoValidator().Validate(mapeamentoPadrao(), rows, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, importer.SeverityValido, results[0].Status)
	assert.Equal(t, importer.SeverityErro, results[1].Status)
	assert.Equal(t, importer.SeverityAviso, results[2].Status)
}

// Validar o mesmo lote duas vezes, sem commit no meio, é idempotente.
func TestValidate_Idempotente(t *testing.T) {
	rows := [][]string{
		linhaValida("Ana", cpfValido1),
		linhaValida("Bia", cpfValido2),
		linhaValida("Carla", cpfValido1),
	}
	v := novoValidator()
	a, err1 := v.Validate(mapeamentoPadrao(), rows, nil)
	b, err2 := v.Validate(mapeamentoPadrao(), rows, nil)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, a, b)
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "data_de_nascimento", importer.NormalizeToken("Data de Nascimento"))
	assert.Equal(t, "salario", importer.NormalizeToken("  Salário "))
	assert.Equal(t, "uniao_estavel", importer.NormalizeToken("União Estável"))
	assert.Equal(t, "e_mail", importer.NormalizeToken("E-mail"))
}

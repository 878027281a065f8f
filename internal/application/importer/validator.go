package importer

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/pkg/br"
)

// Severity de um problema e também o status agregado da linha
// (valido < aviso < erro). Linha com erro não é commitável; linha só com
// avisos é commitável mediante confirmação do operador.
type Severity string

const (
	SeverityValido Severity = "valido"
	SeverityAviso  Severity = "aviso"
	SeverityErro   Severity = "erro"
)

func worst(a, b Severity) Severity {
	rank := map[Severity]int{SeverityValido: 0, SeverityAviso: 1, SeverityErro: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// Issue um problema encontrado em um campo de uma linha.
type Issue struct {
	Field      string
	Severity   Severity
	Message    string
	Suggestion string
}

// RowResult resultado de uma linha, com valores normalizados. Existing aponta
// o cadastro já persistido que colidiu por CPF, para a UI desambiguar.
type RowResult struct {
	Row      int
	Status   Severity
	Employee entity.Employee // campos normalizados; ID/BranchID ficam com o committer
	Fields   map[string]string
	Issues   []Issue
	Existing *entity.Employee
}

// DateLayout formato fixo dia/mês/ano aceito na planilha.
const DateLayout = "02/01/2006"

// Validator aplica as regras por campo sobre as linhas projetadas.
// Função pura dos inputs mais o snapshot somente-leitura: nenhuma escrita.
type Validator struct {
	bounds br.CurrencyBounds
}

// NewValidator usa a faixa de sanidade dada para salários.
func NewValidator(bounds br.CurrencyBounds) *Validator {
	return &Validator{bounds: bounds}
}

// Validate processa as linhas na ordem de entrada. Cada linha é independente,
// exceto pelo rastreio de CPFs já vistos no próprio lote. Validar o mesmo lote
// duas vezes produz resultados idênticos.
func (v *Validator) Validate(mapping ColumnMapping, rows [][]string, existing map[string]*entity.Employee) ([]RowResult, error) {
	if err := mapping.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[string]int, len(rows)) // CPF canônico → primeira linha do lote
	results := make([]RowResult, 0, len(rows))
	for i, cells := range rows {
		results = append(results, v.validateRow(i, mapping, cells, existing, seen))
	}
	return results, nil
}

func (v *Validator) validateRow(row int, mapping ColumnMapping, cells []string, existing map[string]*entity.Employee, seen map[string]int) RowResult {
	fields := mapping.project(cells)
	r := RowResult{Row: row, Status: SeverityValido, Fields: fields}

	for _, f := range requiredFields {
		if fields[f] == "" {
			r.add(Issue{Field: f, Severity: SeverityErro,
				Message: fmt.Sprintf("campo obrigatório %q ausente ou em branco", f)})
		}
	}

	if raw := fields[FieldCPF]; raw != "" {
		v.checkCPF(&r, raw, existing, seen)
	}
	if raw := fields[FieldDataNascimento]; raw != "" {
		if d, err := time.Parse(DateLayout, raw); err != nil {
			r.add(Issue{Field: FieldDataNascimento, Severity: SeverityErro,
				Message:    fmt.Sprintf("data %q ilegível", raw),
				Suggestion: "use o formato dd/mm/aaaa, ex.: 23/04/1987"})
		} else {
			r.Employee.DataNascimento = d
			r.Fields[FieldDataNascimento] = d.Format(DateLayout)
		}
	}
	if raw := fields[FieldSalario]; raw != "" {
		if sal, err := br.ParseCurrency(raw, v.bounds); err != nil {
			r.add(Issue{Field: FieldSalario, Severity: SeverityErro,
				Message:    err.Error(),
				Suggestion: "informe o valor em reais, ex.: 2.500,00"})
		} else {
			r.Employee.Salario = sal
			r.Fields[FieldSalario] = sal.StringFixed(2)
		}
	}
	if raw := fields[FieldEmail]; raw != "" {
		if _, err := mail.ParseAddress(raw); err != nil {
			r.add(Issue{Field: FieldEmail, Severity: SeverityErro,
				Message:    fmt.Sprintf("email %q com formato inválido", raw),
				Suggestion: "ex.: nome@empresa.com.br"})
		} else {
			r.Employee.Email = raw
		}
	}
	if raw := fields[FieldEstadoCivil]; raw != "" {
		token := NormalizeToken(raw)
		if !entity.EstadosCivis[token] {
			r.add(Issue{Field: FieldEstadoCivil, Severity: SeverityErro,
				Message:    fmt.Sprintf("estado civil %q fora do conjunto aceito", raw),
				Suggestion: "valores aceitos: " + strings.Join(estadosCivisOrdenados(), ", ")})
		} else {
			r.Employee.EstadoCivil = token
			r.Fields[FieldEstadoCivil] = token
		}
	}

	r.Employee.Nome = fields[FieldNome]
	r.Employee.Cargo = fields[FieldCargo]
	return r
}

func (v *Validator) checkCPF(r *RowResult, raw string, existing map[string]*entity.Employee, seen map[string]int) {
	canonical, err := br.NormalizeCPF(raw)
	if err != nil {
		issue := Issue{Field: FieldCPF, Severity: SeverityErro, Message: err.Error()}
		switch {
		case errors.Is(err, br.ErrCPFLength):
			issue.Suggestion = "o CPF tem 11 dígitos, ex.: 529.982.247-25"
		case errors.Is(err, br.ErrCPFChecksum):
			issue.Suggestion = "confira os dois últimos dígitos (verificadores)"
		}
		r.add(issue)
		return
	}
	r.Employee.CPF = canonical
	r.Fields[FieldCPF] = canonical

	if firstRow, dup := seen[canonical]; dup {
		r.add(Issue{Field: FieldCPF, Severity: SeverityAviso,
			Message: fmt.Sprintf("CPF duplicado no arquivo (primeira ocorrência na linha %d)", firstRow)})
	} else {
		seen[canonical] = r.Row
	}
	if found, ok := existing[canonical]; ok {
		r.Existing = found
		r.add(Issue{Field: FieldCPF, Severity: SeverityAviso,
			Message: fmt.Sprintf("CPF já cadastrado nesta filial como %q", found.Nome)})
	}
}

func (r *RowResult) add(i Issue) {
	r.Issues = append(r.Issues, i)
	r.Status = worst(r.Status, i.Severity)
}

func estadosCivisOrdenados() []string {
	out := make([]string, 0, len(entity.EstadosCivis))
	for e := range entity.EstadosCivis {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

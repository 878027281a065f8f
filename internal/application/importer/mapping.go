// Package importer implementa o pipeline de importação em massa de
// funcionários: mapeamento de colunas da planilha, validação/normalização por
// linha e commit com concorrência limitada.
package importer

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mktfun/gps-rh-api/internal/domain"
)

// Campos alvo reconhecidos pelo importador. Mapeamentos para qualquer outro
// nome são rejeitados na validação, nunca adiados para acesso dinâmico.
const (
	FieldNome           = "nome"
	FieldCPF            = "cpf"
	FieldDataNascimento = "data_nascimento"
	FieldCargo          = "cargo"
	FieldSalario        = "salario"
	FieldEmail          = "email"
	FieldEstadoCivil    = "estado_civil"
	FieldIgnore         = "ignorar"
)

var knownFields = map[string]bool{
	FieldNome:           true,
	FieldCPF:            true,
	FieldDataNascimento: true,
	FieldCargo:          true,
	FieldSalario:        true,
	FieldEmail:          true,
	FieldEstadoCivil:    true,
}

// requiredFields precisam estar mapeados e preenchidos em toda linha.
var requiredFields = []string{FieldNome, FieldCPF, FieldDataNascimento, FieldSalario}

// ColumnMapping liga o índice da coluna de origem ao campo alvo (ou FieldIgnore).
type ColumnMapping map[int]string

// Validate rejeita mapeamentos com campo alvo desconhecido, campo repetido ou
// sem os campos obrigatórios.
func (m ColumnMapping) Validate() error {
	seen := make(map[string]int, len(m))
	for col, field := range m {
		if field == FieldIgnore {
			continue
		}
		if !knownFields[field] {
			return fmt.Errorf("%w: coluna %d mapeada para campo desconhecido %q", domain.ErrInvalidInput, col, field)
		}
		if prev, dup := seen[field]; dup {
			return fmt.Errorf("%w: campo %q mapeado nas colunas %d e %d", domain.ErrInvalidInput, field, prev, col)
		}
		seen[field] = col
	}
	for _, f := range requiredFields {
		if _, ok := seen[f]; !ok {
			return fmt.Errorf("%w: campo obrigatório %q não mapeado", domain.ErrInvalidInput, f)
		}
	}
	return nil
}

// project converte as células cruas de uma linha no mapa campo→valor,
// descartando colunas ignoradas e aparando espaços.
func (m ColumnMapping) project(cells []string) map[string]string {
	fields := make(map[string]string, len(m))
	for col, field := range m {
		if field == FieldIgnore || col < 0 || col >= len(cells) {
			continue
		}
		fields[field] = strings.TrimSpace(cells[col])
	}
	return fields
}

// aliases de cabeçalho comuns nas planilhas de RH, já normalizados.
var headerAliases = map[string]string{
	"nome":               FieldNome,
	"nome_completo":      FieldNome,
	"funcionario":        FieldNome,
	"cpf":                FieldCPF,
	"documento":          FieldCPF,
	"data_nascimento":    FieldDataNascimento,
	"data_de_nascimento": FieldDataNascimento,
	"nascimento":         FieldDataNascimento,
	"cargo":              FieldCargo,
	"funcao":             FieldCargo,
	"salario":            FieldSalario,
	"remuneracao":        FieldSalario,
	"email":              FieldEmail,
	"e_mail":             FieldEmail,
	"estado_civil":       FieldEstadoCivil,
}

// AutoMap sugere um mapeamento a partir da linha de cabeçalho da planilha.
// Colunas não reconhecidas viram FieldIgnore; o operador revisa antes de validar.
func AutoMap(headers []string) ColumnMapping {
	m := make(ColumnMapping, len(headers))
	for i, h := range headers {
		if field, ok := headerAliases[NormalizeToken(h)]; ok {
			m[i] = field
		} else {
			m[i] = FieldIgnore
		}
	}
	return m
}

// stripAccents remove marcas de acentuação ("Salário" → "Salario").
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeToken normaliza um rótulo para comparação: minúsculas, sem acentos,
// separadores colapsados em underscore ("Data de Nascimento" → "data_de_nascimento").
func NormalizeToken(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(strings.TrimSpace(out))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range out {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

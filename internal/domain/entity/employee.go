package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de ciclo de vida do funcionário. A remoção nunca é um DELETE: o
// registro vai para o estado terminal "excluido" acompanhado da pendência de
// exclusão aprovada.
type EmployeeStatus string

const (
	EmployeeStatusPendente           EmployeeStatus = "pendente"            // aguardando ativação pela corretora
	EmployeeStatusAtivo              EmployeeStatus = "ativo"               // ativado pela corretora
	EmployeeStatusExclusaoSolicitada EmployeeStatus = "exclusao_solicitada" // empresa pediu remoção
	EmployeeStatusExcluido           EmployeeStatus = "excluido"            // terminal, corretora aprovou a remoção
)

// Estados civis aceitos na importação.
const (
	EstadoCivilSolteiro     = "solteiro"
	EstadoCivilCasado       = "casado"
	EstadoCivilDivorciado   = "divorciado"
	EstadoCivilViuvo        = "viuvo"
	EstadoCivilUniaoEstavel = "uniao_estavel"
)

// EstadosCivis conjunto fechado usado pelo validador de importação.
var EstadosCivis = map[string]bool{
	EstadoCivilSolteiro:     true,
	EstadoCivilCasado:       true,
	EstadoCivilDivorciado:   true,
	EstadoCivilViuvo:        true,
	EstadoCivilUniaoEstavel: true,
}

// Employee é um funcionário registrado sob um CNPJ (Branch).
type Employee struct {
	ID             string
	BranchID       string
	Nome           string
	CPF            string // forma canônica, 11 dígitos
	DataNascimento time.Time
	Cargo          string
	Salario        decimal.Decimal
	Email          string
	EstadoCivil    string
	Status         EmployeeStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

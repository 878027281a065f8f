package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cobertura de plano.
const (
	CoberturaVida  = "vida"
	CoberturaSaude = "saude"
	CoberturaOutro = "outro"
)

// Plan é um plano de seguro contratado por uma filial (CNPJ).
// Planos de saúde escalonados têm prêmio por faixa etária em AgeBands;
// nesse caso MonthlyPremium guarda o valor da faixa base.
type Plan struct {
	ID             string
	BranchID       string
	Seguradora     string
	Nome           string
	Cobertura      string // vida, saude, outro
	MonthlyPremium decimal.Decimal
	AgeBands       []PlanAgeBand
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PlanAgeBand prêmio mensal de uma faixa etária (planos de saúde escalonados).
type PlanAgeBand struct {
	ID      string
	PlanID  string
	AgeMin  int
	AgeMax  int
	Premium decimal.Decimal
}

// Matriculation liga um funcionário a um plano, com status próprio e
// independente do status do funcionário: um funcionário pode carregar várias
// matrículas em estágios diferentes ao mesmo tempo.
type Matriculation struct {
	ID         string
	PlanID     string
	EmployeeID string
	Status     MatriculationStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Status de ciclo de vida da matrícula plano↔funcionário.
type MatriculationStatus string

const (
	MatriculationStatusPendente           MatriculationStatus = "pendente"
	MatriculationStatusAtivo              MatriculationStatus = "ativo"
	MatriculationStatusExclusaoSolicitada MatriculationStatus = "exclusao_solicitada"
	MatriculationStatusInativo            MatriculationStatus = "inativo"
)

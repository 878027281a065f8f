package entity

import "time"

// Tipos de pendência (conjunto fechado).
const (
	PendenciaTipoAtivacao     = "ativacao"
	PendenciaTipoAlteracao    = "alteracao"
	PendenciaTipoCancelamento = "cancelamento"
	PendenciaTipoDocumentacao = "documentacao"
)

// Status de pendência.
const (
	PendenciaStatusPendente  = "pendente"
	PendenciaStatusResolvida = "resolvida"
	PendenciaStatusCancelada = "cancelada"
)

// Prioridades derivadas (nunca persistidas; ver domain/pendencia.Priority).
const (
	PrioridadeNormal  = "normal"
	PrioridadeUrgente = "urgente"
	PrioridadeCritica = "critica"
)

// Pendencia é um item de trabalho que exige ação da corretora ou da empresa.
// O protocolo é único e imutável após a criação. A prioridade não é um campo:
// muda só com o relógio, então é recalculada a cada leitura.
//
// Toda pendência é vinculada a um funcionário. MatriculaID distingue o alvo de
// um cancelamento: nulo é exclusão do próprio funcionário; preenchido é
// cancelamento de uma matrícula específica, e o funcionário segue na folha.
type Pendencia struct {
	ID          string
	Protocol    string
	Tipo        string
	Status      string
	Description string
	EmployeeID  string
	MatriculaID *string // só em cancelamento de matrícula
	BranchID    string
	BrokerID    string
	DueDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

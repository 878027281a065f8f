package dto

import "time"

// ResolveRemovalRequest decisão da corretora sobre a solicitação de exclusão.
type ResolveRemovalRequest struct {
	Approved bool `json:"approved"`
}

// ResolveRemovalResponse desfecho estruturado: corrida perdida não é exceção,
// é um status "nao_pendente".
type ResolveRemovalResponse struct {
	Status  string `json:"status"` // aprovado | negado | nao_pendente
	Message string `json:"message"`
}

// RequestRemovalResponse confirmação da solicitação com o protocolo gerado.
type RequestRemovalResponse struct {
	Status   string `json:"status"`
	Protocol string `json:"protocol"`
}

// AddToPlanRequest lote de funcionários a matricular em um plano.
type AddToPlanRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
}

// AddToPlanResponse matrículas criadas e protocolos das pendências de ativação.
type AddToPlanResponse struct {
	Matriculated int      `json:"matriculated"`
	Protocols    []string `json:"protocols"`
}

// UpdateMatriculationStatusRequest novo status desejado para a matrícula.
type UpdateMatriculationStatusRequest struct {
	Status string `json:"status"`
}

// MatriculationResponse matrícula serializada.
type MatriculationResponse struct {
	ID         string    `json:"id"`
	PlanID     string    `json:"plan_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

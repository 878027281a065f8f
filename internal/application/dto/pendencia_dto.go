package dto

import "time"

// PendenciaResponse pendência serializada. Priority é derivada na leitura de
// (created_at, agora); nunca vem do banco.
type PendenciaResponse struct {
	ID          string    `json:"id"`
	Protocol    string    `json:"protocol"`
	Tipo        string    `json:"type"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	EmployeeID  string    `json:"employee_id"`
	MatriculaID *string   `json:"matricula_id,omitempty"`
	BranchID    string    `json:"branch_id"`
	BrokerID    string    `json:"broker_id"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	Priority    string    `json:"priority"` // normal | urgente | critica
}

// PendenciaListResponse listagem paginada.
type PendenciaListResponse struct {
	Items []PendenciaResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

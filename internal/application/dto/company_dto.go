package dto

import "time"

// CreateCompanyRequest dados de uma empresa cliente.
type CreateCompanyRequest struct {
	Name     string `json:"name"`
	BrokerID string `json:"broker_id"`
}

// CompanyResponse empresa serializada.
type CompanyResponse struct {
	ID        string    `json:"id"`
	BrokerID  string    `json:"broker_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse listagem paginada.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateBranchRequest registro de um CNPJ sob uma empresa.
type CreateBranchRequest struct {
	CompanyID   string `json:"company_id"`
	CNPJ        string `json:"cnpj"`
	RazaoSocial string `json:"razao_social"`
}

// BranchResponse filial serializada (CNPJ formatado para exibição).
type BranchResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	CNPJ        string    `json:"cnpj"`
	RazaoSocial string    `json:"razao_social"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// BranchListResponse listagem paginada.
type BranchListResponse struct {
	Items []BranchResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// PlanAgeBandRequest faixa etária de prêmio (planos de saúde escalonados).
type PlanAgeBandRequest struct {
	AgeMin  int    `json:"age_min"`
	AgeMax  int    `json:"age_max"`
	Premium string `json:"premium"`
}

// CreatePlanRequest plano contratado por uma filial.
type CreatePlanRequest struct {
	BranchID       string               `json:"branch_id"`
	Seguradora     string               `json:"seguradora"`
	Nome           string               `json:"nome"`
	Cobertura      string               `json:"cobertura"` // vida | saude | outro
	MonthlyPremium string               `json:"monthly_premium"`
	AgeBands       []PlanAgeBandRequest `json:"age_bands,omitempty"`
}

// PlanResponse plano serializado.
type PlanResponse struct {
	ID             string    `json:"id"`
	BranchID       string    `json:"branch_id"`
	Seguradora     string    `json:"seguradora"`
	Nome           string    `json:"nome"`
	Cobertura      string    `json:"cobertura"`
	MonthlyPremium string    `json:"monthly_premium"`
	CreatedAt      time.Time `json:"created_at"`
}

// PlanListResponse listagem paginada.
type PlanListResponse struct {
	Items []PlanResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CreateEmployeeRequest cadastro individual de funcionário (fora da importação
// em massa). Os campos chegam como texto e passam pelos mesmos normalizadores
// da planilha.
type CreateEmployeeRequest struct {
	Nome           string `json:"nome"`
	CPF            string `json:"cpf"`
	DataNascimento string `json:"data_nascimento"` // DD/MM/AAAA
	Cargo          string `json:"cargo,omitempty"`
	Salario        string `json:"salario"`
	Email          string `json:"email,omitempty"`
	EstadoCivil    string `json:"estado_civil,omitempty"`
}

// EmployeeResponse funcionário serializado (CPF formatado para exibição).
type EmployeeResponse struct {
	ID             string    `json:"id"`
	BranchID       string    `json:"branch_id"`
	Nome           string    `json:"nome"`
	CPF            string    `json:"cpf"`
	DataNascimento string    `json:"data_nascimento"`
	Cargo          string    `json:"cargo"`
	Salario        string    `json:"salario"`
	Email          string    `json:"email,omitempty"`
	EstadoCivil    string    `json:"estado_civil,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// EmployeeListResponse listagem paginada.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

package entity

import "time"

// Broker é a corretora de seguros, escopo de autorização dos atores corretora.
type Broker struct {
	ID        string
	Name      string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Company é uma empresa cliente; pertence a exatamente uma corretora.
type Company struct {
	ID        string
	BrokerID  string
	Name      string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Branch é a unidade tributária (CNPJ) de uma empresa; é sob ela que
// funcionários e planos são registrados.
type Branch struct {
	ID          string
	CompanyID   string
	CNPJ        string // forma canônica, 14 dígitos
	RazaoSocial string
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

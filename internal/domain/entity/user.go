package entity

import "time"

// User é um usuário autenticável da plataforma. O escopo (BrokerID ou
// CompanyID) acompanha o papel e alimenta os claims do JWT.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca em claro depois de persistir
	Name         string
	Role         string  // admin, corretora, empresa
	BrokerID     *string // papel corretora
	CompanyID    *string // papel empresa
	Status       string  // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

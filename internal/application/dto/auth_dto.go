package dto

import "time"

// LoginRequest credenciais do usuário.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest criação de usuário (somente admin). O escopo acompanha o
// papel: corretora exige broker_id, empresa exige company_id.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	BrokerID  string `json:"broker_id,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
}

// UserResponse usuário serializado (sem hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	BrokerID  *string   `json:"broker_id,omitempty"`
	CompanyID *string   `json:"company_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

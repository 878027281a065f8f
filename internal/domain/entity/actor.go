package entity

// Papéis de autorização da plataforma.
const (
	RoleAdmin     = "admin"     // plataforma, sem escopo
	RoleCorretora = "corretora" // escopo: as empresas que a corretora atende
	RoleEmpresa   = "empresa"   // escopo: a própria empresa
)

// Actor é o chamador autenticado, passado explicitamente a toda operação do
// núcleo. A autenticação acontece fora (middleware JWT); o núcleo só autoriza.
type Actor struct {
	UserID    string
	Role      string
	BrokerID  string // preenchido quando Role == corretora
	CompanyID string // preenchido quando Role == empresa
}

// ScopeID devolve o identificador de escopo relevante para o papel.
func (a Actor) ScopeID() string {
	switch a.Role {
	case RoleCorretora:
		return a.BrokerID
	case RoleEmpresa:
		return a.CompanyID
	}
	return ""
}

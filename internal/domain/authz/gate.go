// Package authz implementa o gate de autorização como função pura:
// (ator, escopo do alvo) → permitido ou negado. Sem sessão, sem I/O.
package authz

import (
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
)

// Scope é a cadeia de posse de um registro alvo: a filial, a empresa dona da
// filial e a corretora dona da empresa. É carregada do banco antes de qualquer
// mutação.
type Scope struct {
	BranchID  string
	CompanyID string
	BrokerID  string
}

// Authorize avalia o papel e o escopo do ator contra a cadeia de posse do alvo.
//
//   - admin: sempre permitido;
//   - corretora: permitido sse a corretora dona da empresa da filial for a do ator;
//   - empresa: permitido sse a filial pertencer à empresa do ator.
func Authorize(actor entity.Actor, target Scope) error {
	switch actor.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleCorretora:
		if actor.BrokerID != "" && actor.BrokerID == target.BrokerID {
			return nil
		}
		return &domain.PermissionDeniedError{
			Role:          actor.Role,
			ActorScopeID:  actor.BrokerID,
			TargetScopeID: target.BrokerID,
		}
	case entity.RoleEmpresa:
		if actor.CompanyID != "" && actor.CompanyID == target.CompanyID {
			return nil
		}
		return &domain.PermissionDeniedError{
			Role:          actor.Role,
			ActorScopeID:  actor.CompanyID,
			TargetScopeID: target.CompanyID,
		}
	}
	return &domain.PermissionDeniedError{
		Role:   actor.Role,
		Detail: "papel desconhecido",
	}
}

// AuthorizeAll autoriza um lote inteiro ou nada: se qualquer alvo falhar, a
// operação toda é rejeitada antes de qualquer escrita.
func AuthorizeAll(actor entity.Actor, targets []Scope) error {
	for _, t := range targets {
		if err := Authorize(actor, t); err != nil {
			return err
		}
	}
	return nil
}

package domain

import (
	"errors"
	"fmt"
)

// Erros sentinela de domínio (sem dependências externas).
var (
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrUserNotFound = errors.New("usuário não encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("não autorizado")
	ErrForbidden    = errors.New("acesso negado")
	ErrConflict     = errors.New("conflito com o estado atual")
	ErrTransient    = errors.New("erro transitório, tente novamente")
	ErrInvariant    = errors.New("violação de invariante")
)

// PermissionDeniedError carrega o papel avaliado e o escopo divergente para
// diagnóstico; o gate nunca autoriza parcialmente um lote.
type PermissionDeniedError struct {
	Role          string // papel do ator
	ActorScopeID  string // broker_id ou company_id do ator
	TargetScopeID string // escopo de posse do registro alvo
	Detail        string
}

func (e *PermissionDeniedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("acesso negado: papel %q escopo %q não alcança %q (%s)",
			e.Role, e.ActorScopeID, e.TargetScopeID, e.Detail)
	}
	return fmt.Sprintf("acesso negado: papel %q escopo %q não alcança %q",
		e.Role, e.ActorScopeID, e.TargetScopeID)
}

func (e *PermissionDeniedError) Unwrap() error { return ErrForbidden }

// TransitionError indica uma transição de status não definida ou não permitida
// para o papel do ator.
type TransitionError struct {
	From string
	To   string
	Role string
}

func (e *TransitionError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("transição %s → %s não permitida para o papel %q", e.From, e.To, e.Role)
	}
	return fmt.Sprintf("transição %s → %s não definida", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	if e.Role != "" {
		return ErrForbidden
	}
	return ErrConflict
}

// Package enrollment define as regras de transição de status do funcionário e
// da matrícula plano↔funcionário. Lógica pura: quem pode levar qual estado a
// qual estado. A atomicidade da escrita fica na camada de persistência.
package enrollment

import (
	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
)

type statusPair struct {
	from string
	to   string
}

// Transições de funcionário e os papéis que podem executá-las.
// Admin é sempre aceito em transições definidas.
var employeeTransitions = map[statusPair][]string{
	{string(entity.EmployeeStatusPendente), string(entity.EmployeeStatusAtivo)}:                        {entity.RoleCorretora},
	{string(entity.EmployeeStatusAtivo), string(entity.EmployeeStatusExclusaoSolicitada)}:              {entity.RoleEmpresa},
	{string(entity.EmployeeStatusExclusaoSolicitada), string(entity.EmployeeStatusAtivo)}:              {entity.RoleCorretora},
	{string(entity.EmployeeStatusExclusaoSolicitada), string(entity.EmployeeStatusExcluido)}:           {entity.RoleCorretora},
}

// Transições de matrícula: espelham o subconjunto do funcionário, avaliadas
// por matrícula e não por funcionário.
var matriculationTransitions = map[statusPair][]string{
	{string(entity.MatriculationStatusPendente), string(entity.MatriculationStatusAtivo)}:                  {entity.RoleCorretora},
	{string(entity.MatriculationStatusAtivo), string(entity.MatriculationStatusExclusaoSolicitada)}:        {entity.RoleEmpresa},
	{string(entity.MatriculationStatusExclusaoSolicitada), string(entity.MatriculationStatusAtivo)}:        {entity.RoleCorretora},
	{string(entity.MatriculationStatusExclusaoSolicitada), string(entity.MatriculationStatusInativo)}:      {entity.RoleCorretora},
}

// CanTransitionEmployee valida a transição de status de funcionário para o
// papel dado. Devolve TransitionError sem papel quando a transição não existe
// e com papel quando existe mas o papel não pode executá-la.
func CanTransitionEmployee(role string, from, to entity.EmployeeStatus) error {
	return canTransition(role, string(from), string(to), employeeTransitions)
}

// CanTransitionMatriculation idem para o status da matrícula.
func CanTransitionMatriculation(role string, from, to entity.MatriculationStatus) error {
	return canTransition(role, string(from), string(to), matriculationTransitions)
}

func canTransition(role, from, to string, table map[statusPair][]string) error {
	roles, ok := table[statusPair{from, to}]
	if !ok {
		return &domain.TransitionError{From: from, To: to}
	}
	if role == entity.RoleAdmin {
		return nil
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return &domain.TransitionError{From: from, To: to, Role: role}
}

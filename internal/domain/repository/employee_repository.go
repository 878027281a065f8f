package repository

import (
	"context"

	"github.com/mktfun/gps-rh-api/internal/domain/entity"
)

// EmployeeRepository porta de persistência para funcionários.
type EmployeeRepository interface {
	// Create persiste um funcionário novo. Devolve domain.ErrDuplicate quando o
	// CPF já existe na filial (constraint única do banco).
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Employee, error)
	// SnapshotByBranch devolve os funcionários da filial, em qualquer status,
	// indexados por CPF canônico. Inclui os excluídos: a constraint única de
	// CPF por filial também os cobre, então um CPF excluído ainda é duplicata
	// no commit. Lido uma vez por sessão de importação; não é revalidado contra
	// escritas concorrentes.
	SnapshotByBranch(ctx context.Context, branchID string) (map[string]*entity.Employee, error)
	// UpdateStatusIf muda o status condicionado ao status atual, em uma única
	// ida ao banco. Devolve false quando o registro não estava em `from` —
	// é assim que duas aprovações concorrentes resolvem para um único vencedor.
	UpdateStatusIf(ctx context.Context, id string, from, to entity.EmployeeStatus) (bool, error)
}

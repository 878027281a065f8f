package importer

import (
	"context"
	"fmt"

	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/authz"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

// Service orquestra a sessão de importação: autoriza o ator na filial alvo,
// tira o snapshot de funcionários existentes, valida e commita.
type Service struct {
	branches  repository.BranchRepository
	employees repository.EmployeeRepository
	validator *Validator
	committer *Committer
	log       *logger.Logger
}

// NewService constrói o serviço de importação.
func NewService(branches repository.BranchRepository, employees repository.EmployeeRepository,
	validator *Validator, committer *Committer, log *logger.Logger) *Service {
	return &Service{branches: branches, employees: employees, validator: validator, committer: committer, log: log}
}

// Validate roda a validação completa do lote contra a filial. Nenhuma escrita.
// O snapshot de funcionários existentes é lido uma única vez por chamada e não
// é revalidado contra escritas concorrentes de outras sessões; a unicidade
// definitiva fica com a constraint do banco no commit.
func (s *Service) Validate(ctx context.Context, actor entity.Actor, branchID string,
	mapping ColumnMapping, rows [][]string) ([]RowResult, error) {

	if err := s.authorize(ctx, actor, branchID); err != nil {
		return nil, err
	}
	snapshot, err := s.employees.SnapshotByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("snapshot de funcionários da filial %s: %w", branchID, err)
	}
	return s.validator.Validate(mapping, rows, snapshot)
}

// Commit revalida o lote no servidor e insere as linhas aceitas. Sucesso
// parcial é esperado e reportado por linha; não há rollback do lote.
func (s *Service) Commit(ctx context.Context, actor entity.Actor, branchID string,
	mapping ColumnMapping, rows [][]string, opts CommitOptions) (*CommitResult, error) {

	results, err := s.Validate(ctx, actor, branchID, mapping, rows)
	if err != nil {
		return nil, err
	}
	return s.committer.Commit(ctx, branchID, results, opts)
}

func (s *Service) authorize(ctx context.Context, actor entity.Actor, branchID string) error {
	scope, err := s.branches.GetScope(ctx, branchID)
	if err != nil {
		return err
	}
	if scope == nil {
		return fmt.Errorf("filial %s: %w", branchID, domain.ErrNotFound)
	}
	return authz.Authorize(actor, *scope)
}

package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mktfun/gps-rh-api/internal/domain"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

// DefaultConcurrency fan-out padrão do commit.
const DefaultConcurrency = 5

// CommitOptions controla o commit de um lote validado.
type CommitOptions struct {
	// AllowWarnings inclui linhas com avisos (duplicata já confirmada pelo operador).
	AllowWarnings bool
	// SkipErrors prossegue ignorando linhas com erro; sem ela, um lote com
	// qualquer erro é rejeitado por inteiro antes de escrever.
	SkipErrors bool
	// Concurrency limita o fan-out; <=0 usa DefaultConcurrency.
	Concurrency int
}

// Desfechos por linha do commit.
const (
	OutcomeImportado = "importado"
	OutcomeIgnorado  = "ignorado"
	OutcomeDuplicado = "duplicado"
	OutcomeFalhou    = "falhou"
)

// CommitOutcome desfecho de uma linha.
type CommitOutcome struct {
	Row        int
	Status     string
	EmployeeID string // preenchido quando importada
	Reason     string
}

// CommitResult agregado do lote: sucesso parcial é reportado, nunca revertido.
type CommitResult struct {
	Imported int
	Skipped  int
	Outcomes []CommitOutcome
}

// Failures devolve as linhas que tentaram inserir e não conseguiram.
func (r *CommitResult) Failures() []CommitOutcome {
	var out []CommitOutcome
	for _, o := range r.Outcomes {
		if o.Status == OutcomeFalhou || o.Status == OutcomeDuplicado {
			out = append(out, o)
		}
	}
	return out
}

// Committer insere as linhas validadas na filial alvo. As inserções correm em
// lotes concorrentes limitados; a falha de uma linha não aborta as demais.
type Committer struct {
	employees repository.EmployeeRepository
	log       *logger.Logger
}

// NewCommitter constrói o committer com a porta de persistência.
func NewCommitter(employees repository.EmployeeRepository, log *logger.Logger) *Committer {
	return &Committer{employees: employees, log: log}
}

// Commit processa o lote. O contexto cancela o lançamento de novas linhas;
// linhas já inseridas permanecem inseridas (sem rollback compensatório).
//
// Violações de unicidade vindas do banco — a janela entre o snapshot de
// duplicatas e o commit é uma corrida aceita — viram desfecho "duplicado",
// nunca falha genérica.
func (c *Committer) Commit(ctx context.Context, branchID string, rows []RowResult, opts CommitOptions) (*CommitResult, error) {
	if !opts.SkipErrors {
		for _, r := range rows {
			if r.Status == SeverityErro {
				return nil, fmt.Errorf("%w: linha %d contém erros; corrija ou use skip_errors", domain.ErrInvalidInput, r.Row)
			}
		}
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		sem      = make(chan struct{}, concurrency)
		outcomes = make([]CommitOutcome, 0, len(rows))
	)
	record := func(o CommitOutcome) {
		mu.Lock()
		outcomes = append(outcomes, o)
		mu.Unlock()
	}

	for _, row := range rows {
		switch {
		case row.Status == SeverityErro:
			record(CommitOutcome{Row: row.Row, Status: OutcomeIgnorado, Reason: "linha com erros de validação"})
			continue
		case row.Status == SeverityAviso && !opts.AllowWarnings:
			record(CommitOutcome{Row: row.Row, Status: OutcomeIgnorado, Reason: "linha com avisos não confirmados"})
			continue
		}

		if err := ctx.Err(); err != nil {
			record(CommitOutcome{Row: row.Row, Status: OutcomeFalhou, Reason: "importação cancelada"})
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(row RowResult) {
			defer wg.Done()
			defer func() { <-sem }()
			record(c.insertRow(ctx, branchID, row))
		}(row)
	}
	wg.Wait()

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Row < outcomes[j].Row })

	result := &CommitResult{Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Status {
		case OutcomeImportado:
			result.Imported++
		case OutcomeIgnorado:
			result.Skipped++
		}
	}
	c.log.Info().
		Str("branch_id", branchID).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("failed", len(result.Failures())).
		Msg("importação concluída")
	return result, nil
}

func (c *Committer) insertRow(ctx context.Context, branchID string, row RowResult) CommitOutcome {
	now := time.Now()
	emp := row.Employee
	emp.ID = uuid.New().String()
	emp.BranchID = branchID
	emp.Status = entity.EmployeeStatusPendente
	emp.CreatedAt = now
	emp.UpdatedAt = now

	if err := c.employees.Create(ctx, &emp); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return CommitOutcome{Row: row.Row, Status: OutcomeDuplicado,
				Reason: "CPF já cadastrado nesta filial (inserção concorrente)"}
		}
		c.log.Warn().Err(err).Int("row", row.Row).Str("branch_id", branchID).Msg("linha não inserida")
		return CommitOutcome{Row: row.Row, Status: OutcomeFalhou, Reason: err.Error()}
	}
	return CommitOutcome{Row: row.Row, Status: OutcomeImportado, EmployeeID: emp.ID}
}

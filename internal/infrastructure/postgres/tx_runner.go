package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mktfun/gps-rh-api/internal/application/enrollment"
	"github.com/mktfun/gps-rh-api/internal/domain/repository"
)

var _ enrollment.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL, com os
// repositórios atados à mesma tx. É o que mantém transição de status e
// pendência no mesmo commit.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner sobre o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre a transação, executa fn e faz Commit; qualquer erro de fn vira
// Rollback do conjunto.
func (r *TxRunner) Run(ctx context.Context, fn func(
	employees repository.EmployeeRepository,
	matriculations repository.MatriculationRepository,
	pendencias repository.PendenciaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", mapError(err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewEmployeeRepository(tx), NewMatriculationRepository(tx), NewPendenciaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", mapError(err))
	}
	return nil
}

package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mktfun/gps-rh-api/internal/domain"
)

// mapError traduz erros do PostgreSQL para os sentinelas do domínio.
// Erros que não são do Postgres passam intactos.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("constraint %s: %w", pgErr.ConstraintName, domain.ErrDuplicate)

	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("referência inexistente (%s): %w", pgErr.ConstraintName, domain.ErrInvalidInput)

	case pgerrcode.CheckViolation:
		return fmt.Errorf("check %s violado: %w", pgErr.ConstraintName, domain.ErrInvalidInput)

	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return fmt.Errorf("conflito de transação: %w", domain.ErrTransient)

	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.CannotConnectNow,
		pgerrcode.SQLClientUnableToEstablishSQLConnection,
		pgerrcode.AdminShutdown,
		pgerrcode.CrashShutdown,
		pgerrcode.TooManyConnections:
		return fmt.Errorf("banco indisponível: %w", domain.ErrTransient)

	default:
		return fmt.Errorf("postgres [%s]: %s: %w", pgErr.Code, pgErr.Message, err)
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

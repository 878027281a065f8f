package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/mktfun/gps-rh-api/internal/domain"
)

// withRetry reexecuta uma leitura com backoff exponencial enquanto o erro for
// transiente (conexão caída, deadlock). Qualquer outro erro interrompe na
// hora. Só leituras passam por aqui: escrita repetida sem idempotência é
// duplicata em potencial.
func withRetry[T any](ctx context.Context, op func() (T, error)) (T, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 100 * time.Millisecond
	exp.MaxInterval = 2 * time.Second

	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && !errors.Is(err, domain.ErrTransient) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(exp), backoff.WithMaxTries(4))
}

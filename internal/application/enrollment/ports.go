package enrollment

import (
	"context"

	"github.com/mktfun/gps-rh-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação do serviço de dados, com os
// repositórios atados à mesma tx. Se fn devolver erro, nada é aplicado —
// é o que garante que transição de status e pendência andam juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		employees repository.EmployeeRepository,
		matriculations repository.MatriculationRepository,
		pendencias repository.PendenciaRepository,
	) error) error
}

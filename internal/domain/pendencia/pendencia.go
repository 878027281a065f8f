// Package pendencia contém as regras puras de pendências: prioridade derivada
// do relógio e geração de protocolo.
package pendencia

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mktfun/gps-rh-api/internal/domain/entity"
)

// DefaultSLADays janela de SLA padrão: due date = criação + 7 dias.
const DefaultSLADays = 7

// Priority deriva a prioridade de uma pendência dos dias em aberto.
// Nunca é persistida: muda só com o relógio, então quem lê recalcula.
//
//	> 30 dias aberta → critica
//	> 15 dias aberta → urgente
//	senão           → normal
func Priority(createdAt, now time.Time) string {
	daysOpen := int(now.Sub(createdAt).Hours() / 24)
	switch {
	case daysOpen > 30:
		return entity.PrioridadeCritica
	case daysOpen > 15:
		return entity.PrioridadeUrgente
	default:
		return entity.PrioridadeNormal
	}
}

// DueDate devolve o prazo a partir da criação e da janela de SLA em dias.
func DueDate(createdAt time.Time, slaDays int) time.Time {
	if slaDays <= 0 {
		slaDays = DefaultSLADays
	}
	return createdAt.AddDate(0, 0, slaDays)
}

// NewProtocol gera um protocolo único e imutável: timestamp compacto mais um
// sufixo aleatório resistente a colisão.
// Ex.: "PRT-20250901143015-A3F09C".
func NewProtocol(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("PRT-%s-%s", now.Format("20060102150405"), suffix)
}

package pendencia_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mktfun/gps-rh-api/internal/domain/entity"
	"github.com/mktfun/gps-rh-api/internal/domain/pendencia"
)

// A prioridade é função pura de (criação, agora): os limites são exclusivos,
// então exatamente 30 dias ainda é urgente e exatamente 15 ainda é normal.
func TestPriority_Limites(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		daysOpen int
		want     string
	}{
		{0, entity.PrioridadeNormal},
		{15, entity.PrioridadeNormal},
		{16, entity.PrioridadeUrgente},
		{30, entity.PrioridadeUrgente},
		{31, entity.PrioridadeCritica},
		{90, entity.PrioridadeCritica},
	}
	for _, tc := range cases {
		createdAt := now.AddDate(0, 0, -tc.daysOpen)
		assert.Equal(t, tc.want, pendencia.Priority(createdAt, now),
			"pendência aberta há %d dias", tc.daysOpen)
	}
}

func TestPriority_FracaoDeDiaNaoConta(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	// 15 dias e 23 horas ainda são 15 dias inteiros.
	createdAt := now.Add(-(15*24 + 23) * time.Hour)
	assert.Equal(t, entity.PrioridadeNormal, pendencia.Priority(createdAt, now))
}

func TestDueDate(t *testing.T) {
	createdAt := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, createdAt.AddDate(0, 0, 7), pendencia.DueDate(createdAt, 0),
		"SLA não positivo cai no padrão de 7 dias")
	assert.Equal(t, createdAt.AddDate(0, 0, 15), pendencia.DueDate(createdAt, 15))
}

func TestNewProtocol(t *testing.T) {
	now := time.Date(2025, 9, 1, 14, 30, 15, 0, time.UTC)

	p1 := pendencia.NewProtocol(now)
	p2 := pendencia.NewProtocol(now)

	assert.True(t, strings.HasPrefix(p1, "PRT-20250901143015-"), "protocolo: %s", p1)
	assert.Len(t, p1, len("PRT-20250901143015-")+6)
	assert.NotEqual(t, p1, p2, "o sufixo aleatório deve evitar colisão no mesmo segundo")
}

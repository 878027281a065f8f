package br

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Erros de parsing de moeda.
var (
	ErrCurrencyEmpty       = errors.New("br: valor monetário vazio")
	ErrCurrencyFormat      = errors.New("br: valor monetário ilegível")
	ErrCurrencyNotPositive = errors.New("br: valor monetário deve ser positivo")
	ErrCurrencyOutOfRange  = errors.New("br: valor monetário fora da faixa aceita")
)

// CurrencyBounds delimita a faixa de sanidade aceita para valores monetários.
// Serve para capturar erros de unidade (valor digitado em centavos), não só
// erros de sintaxe.
type CurrencyBounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// DefaultCurrencyBounds faixa padrão: R$ 100,00 a R$ 1.000.000,00.
func DefaultCurrencyBounds() CurrencyBounds {
	return CurrencyBounds{
		Min: decimal.NewFromInt(100),
		Max: decimal.NewFromInt(1_000_000),
	}
}

// ParseCurrency interpreta um valor monetário ambíguo quanto ao locale:
//
//   - "1.234,56" (pt-BR) e "1,234.56" (internacional) → 1234.56
//   - com os dois separadores presentes, o mais à direita é o decimal;
//   - com um único tipo de separador, ele é decimal apenas se seguido de
//     exatamente dois dígitos no fim da string ("1.234" → 1234, "4.50" → 4.50);
//   - dígitos puros são interpretados diretamente ("150" → 150).
//
// Rejeita valores não positivos e fora da faixa de bounds, com motivo descritivo.
func ParseCurrency(raw string, bounds CurrencyBounds) (decimal.Decimal, error) {
	s := stripCurrencyNoise(raw)
	if s == "" {
		return decimal.Zero, ErrCurrencyEmpty
	}

	comma := strings.LastIndexByte(s, ',')
	dot := strings.LastIndexByte(s, '.')

	var normalized string
	switch {
	case comma >= 0 && dot >= 0:
		// O separador mais à direita é o decimal, o outro agrupa milhares.
		if comma > dot {
			normalized = strings.ReplaceAll(s, ".", "")
			normalized = strings.Replace(normalized, ",", ".", 1)
		} else {
			normalized = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		normalized = resolveSingleSeparator(s, ',', comma)
	case dot >= 0:
		normalized = resolveSingleSeparator(s, '.', dot)
	default:
		normalized = s
	}

	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrCurrencyFormat, raw)
	}
	if !value.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrCurrencyNotPositive, value.String())
	}
	if value.LessThan(bounds.Min) {
		return decimal.Zero, fmt.Errorf("%w: %s abaixo do mínimo %s",
			ErrCurrencyOutOfRange, value.StringFixed(2), bounds.Min.StringFixed(2))
	}
	if value.GreaterThan(bounds.Max) {
		return decimal.Zero, fmt.Errorf("%w: %s acima do máximo %s (valor digitado em centavos?)",
			ErrCurrencyOutOfRange, value.StringFixed(2), bounds.Max.StringFixed(2))
	}
	return value, nil
}

// resolveSingleSeparator trata strings com um único tipo de separador: decimal
// se a última ocorrência for seguida de exatamente dois dígitos no fim, senão
// agrupamento de milhares.
func resolveSingleSeparator(s string, sep byte, last int) string {
	if len(s)-last-1 == 2 {
		head := strings.ReplaceAll(s[:last], string(sep), "")
		return head + "." + s[last+1:]
	}
	return strings.ReplaceAll(s, string(sep), "")
}

// stripCurrencyNoise remove símbolo de moeda, espaços e NBSP.
func stripCurrencyNoise(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

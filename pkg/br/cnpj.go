package br

import (
	"errors"
	"fmt"
)

// Erros de validação de CNPJ.
var (
	ErrCNPJEmpty    = errors.New("br: CNPJ vazio")
	ErrCNPJLength   = errors.New("br: CNPJ deve ter 14 dígitos")
	ErrCNPJChecksum = errors.New("br: dígitos verificadores do CNPJ inválidos")
)

// pesos do módulo 11 para o primeiro e o segundo dígito verificador do CNPJ.
var (
	cnpjWeightsFirst  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeightsSecond = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// NormalizeCNPJ remove pontuação do CNPJ, valida os dois dígitos verificadores
// e devolve a forma canônica com 14 dígitos.
// Aceita "12.345.678/0001-95" ou "12345678000195".
func NormalizeCNPJ(raw string) (string, error) {
	digits := extractDigits(raw)
	if len(digits) == 0 {
		return "", ErrCNPJEmpty
	}
	if len(digits) != 14 {
		return "", fmt.Errorf("%w: recebidos %d", ErrCNPJLength, len(digits))
	}
	if allSameDigit(digits) {
		return "", ErrCNPJChecksum
	}
	if cnpjCheckDigit(digits[:12], cnpjWeightsFirst[:]) != digits[12] ||
		cnpjCheckDigit(digits[:13], cnpjWeightsSecond[:]) != digits[13] {
		return "", ErrCNPJChecksum
	}
	return string(digits), nil
}

func cnpjCheckDigit(base []byte, weights []int) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + 11 - r)
}

// FormatCNPJ formata um CNPJ canônico como "##.###.###/####-##".
func FormatCNPJ(canonical string) string {
	if len(canonical) != 14 {
		return canonical
	}
	return canonical[0:2] + "." + canonical[2:5] + "." + canonical[5:8] + "/" + canonical[8:12] + "-" + canonical[12:14]
}

// Package br contém validações de documentos brasileiros (CPF, CNPJ) e parsing
// de valores monetários em formato pt-BR. Funções puras, sem I/O.
package br

import (
	"errors"
	"fmt"
	"unicode"
)

// Erros de validação de CPF.
var (
	ErrCPFEmpty    = errors.New("br: CPF vazio")
	ErrCPFLength   = errors.New("br: CPF deve ter 11 dígitos")
	ErrCPFChecksum = errors.New("br: dígitos verificadores do CPF inválidos")
)

// NormalizeCPF remove pontuação do CPF, valida os dois dígitos verificadores
// (módulo 11) e devolve a forma canônica com 11 dígitos.
// Aceita "529.982.247-25", "529 982 247 25" ou "52998224725".
func NormalizeCPF(raw string) (string, error) {
	digits := extractDigits(raw)
	if len(digits) == 0 {
		return "", ErrCPFEmpty
	}
	if len(digits) != 11 {
		return "", fmt.Errorf("%w: recebidos %d", ErrCPFLength, len(digits))
	}
	// CPFs com todos os dígitos iguais passam na aritmética do módulo 11,
	// mas são inválidos perante a Receita Federal.
	if allSameDigit(digits) {
		return "", ErrCPFChecksum
	}
	if cpfCheckDigit(digits, 9) != digits[9] || cpfCheckDigit(digits, 10) != digits[10] {
		return "", ErrCPFChecksum
	}
	return string(digits), nil
}

// cpfCheckDigit calcula o dígito verificador na posição pos (9 ou 10) a partir
// dos pos primeiros dígitos, com pesos decrescentes de pos+1 até 2.
func cpfCheckDigit(digits []byte, pos int) byte {
	var sum int
	for i := 0; i < pos; i++ {
		sum += int(digits[i]-'0') * (pos + 1 - i)
	}
	r := (sum * 10) % 11
	if r == 10 {
		r = 0
	}
	return byte('0' + r)
}

// FormatCPF formata um CPF canônico como "###.###.###-##".
// Entrada fora do formato canônico é devolvida como está.
func FormatCPF(canonical string) string {
	if len(canonical) != 11 {
		return canonical
	}
	return canonical[0:3] + "." + canonical[3:6] + "." + canonical[6:9] + "-" + canonical[9:11]
}

func allSameDigit(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}

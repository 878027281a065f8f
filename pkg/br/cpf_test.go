package br_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktfun/gps-rh-api/pkg/br"
)

// ──────────────────────────────────────────────────────────────────────────────
// NormalizeCPF — o validador é a porta de entrada de toda importação em massa:
// um falso positivo aqui vira funcionário fantasma na seguradora.
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeCPF_FormatosValidos(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"com pontuação", "529.982.247-25"},
		{"sem pontuação", "52998224725"},
		{"com espaços", " 529 982 247 25 "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := br.NormalizeCPF(tc.in)
			require.NoError(t, err)
			assert.Equal(t, "52998224725", got, "a forma canônica deve ter só dígitos")
		})
	}
}

func TestNormalizeCPF_OutroCPFValido(t *testing.T) {
	got, err := br.NormalizeCPF("111.444.777-35")
	require.NoError(t, err)
	assert.Equal(t, "11144477735", got)
}

func TestNormalizeCPF_Vazio(t *testing.T) {
	_, err := br.NormalizeCPF("")
	assert.ErrorIs(t, err, br.ErrCPFEmpty)

	_, err = br.NormalizeCPF("abc-def")
	assert.ErrorIs(t, err, br.ErrCPFEmpty, "string sem nenhum dígito conta como vazia")
}

func TestNormalizeCPF_TamanhoErrado(t *testing.T) {
	_, err := br.NormalizeCPF("1234567890") // 10 dígitos
	assert.ErrorIs(t, err, br.ErrCPFLength)

	_, err = br.NormalizeCPF("123456789012") // 12 dígitos
	assert.ErrorIs(t, err, br.ErrCPFLength)
}

func TestNormalizeCPF_ChecksumInvalido(t *testing.T) {
	// Último dígito alterado do CPF válido 52998224725.
	_, err := br.NormalizeCPF("529.982.247-26")
	assert.ErrorIs(t, err, br.ErrCPFChecksum)

	// Primeiro dígito verificador alterado.
	_, err = br.NormalizeCPF("529.982.247-35")
	assert.ErrorIs(t, err, br.ErrCPFChecksum)
}

func TestNormalizeCPF_DigitosRepetidos(t *testing.T) {
	// Passam no módulo 11 mas são rejeitados pela Receita.
	for _, cpf := range []string{"111.111.111-11", "00000000000", "99999999999"} {
		_, err := br.NormalizeCPF(cpf)
		assert.ErrorIs(t, err, br.ErrCPFChecksum, "CPF %s deve ser rejeitado", cpf)
	}
}

func TestNormalizeCPF_Deterministico(t *testing.T) {
	a, err1 := br.NormalizeCPF("529.982.247-25")
	b, err2 := br.NormalizeCPF("529.982.247-25")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, a, b)
}

func TestFormatCPF(t *testing.T) {
	assert.Equal(t, "529.982.247-25", br.FormatCPF("52998224725"))
	assert.Equal(t, "123", br.FormatCPF("123"), "entrada não canônica volta intacta")
}

func TestNormalizeCNPJ(t *testing.T) {
	got, err := br.NormalizeCNPJ("11.222.333/0001-81")
	require.NoError(t, err)
	assert.Equal(t, "11222333000181", got)

	_, err = br.NormalizeCNPJ("11.222.333/0001-82")
	assert.ErrorIs(t, err, br.ErrCNPJChecksum)

	_, err = br.NormalizeCNPJ("11222333")
	assert.ErrorIs(t, err, br.ErrCNPJLength)

	_, err = br.NormalizeCNPJ("")
	assert.ErrorIs(t, err, br.ErrCNPJEmpty)
}

func TestFormatCNPJ(t *testing.T) {
	assert.Equal(t, "11.222.333/0001-81", br.FormatCNPJ("11222333000181"))
}

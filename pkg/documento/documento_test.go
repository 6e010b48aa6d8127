package documento

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCPF(t *testing.T) {
	assert.NoError(t, ValidateCPF("529.982.247-25"))
	assert.NoError(t, ValidateCPF("52998224725"))

	assert.Error(t, ValidateCPF("529.982.247-26"), "segundo dígito errado")
	assert.Error(t, ValidateCPF("111.111.111-11"), "dígitos repetidos")
	assert.Error(t, ValidateCPF("1234"), "tamanho")
}

func TestValidateCNPJ(t *testing.T) {
	assert.NoError(t, ValidateCNPJ("11.222.333/0001-81"))
	assert.NoError(t, ValidateCNPJ("11222333000181"))

	assert.Error(t, ValidateCNPJ("11.222.333/0001-82"))
	assert.Error(t, ValidateCNPJ("00000000000000"))
	assert.Error(t, ValidateCNPJ("112223330001"))
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "11222333000181", Digits("11.222.333/0001-81"))
	assert.Equal(t, "", Digits("abc"))
}

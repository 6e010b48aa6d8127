// Package documento valida documentos fiscales brasileños (CPF y CNPJ) por dígito verificador módulo 11.
package documento

import (
	"fmt"
	"unicode"
)

var (
	cpfWeights1  = []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	cpfWeights2  = []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Digits elimina todo lo que no sea dígito ("529.982.247-25" -> "52998224725").
func Digits(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// ValidateCPF valida un CPF con o sin máscara.
func ValidateCPF(cpf string) error {
	d := Digits(cpf)
	if len(d) != 11 {
		return fmt.Errorf("CPF deve ter 11 dígitos, encontrados %d", len(d))
	}
	if allEqual(d) {
		return fmt.Errorf("CPF inválido")
	}
	if checkDigit(d[:9], cpfWeights1) != d[9] || checkDigit(d[:10], cpfWeights2) != d[10] {
		return fmt.Errorf("dígito verificador do CPF inválido")
	}
	return nil
}

// ValidateCNPJ valida un CNPJ con o sin máscara.
func ValidateCNPJ(cnpj string) error {
	d := Digits(cnpj)
	if len(d) != 14 {
		return fmt.Errorf("CNPJ deve ter 14 dígitos, encontrados %d", len(d))
	}
	if allEqual(d) {
		return fmt.Errorf("CNPJ inválido")
	}
	if checkDigit(d[:12], cnpjWeights1) != d[12] || checkDigit(d[:13], cnpjWeights2) != d[13] {
		return fmt.Errorf("dígito verificador do CNPJ inválido")
	}
	return nil
}

// checkDigit: resto < 2 -> '0', si no 11 - resto.
func checkDigit(base string, weights []int) byte {
	var sum int
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * weights[i]
	}
	rem := sum % 11
	if rem < 2 {
		return '0'
	}
	return byte('0' + (11 - rem))
}

func allEqual(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}

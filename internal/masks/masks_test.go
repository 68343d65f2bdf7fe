package masks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5511987654321", "55+(11) 98765-4321"},
		{"55 11 98765 4321", "55+(11) 98765-4321"},
		{"5511", "55+(11"},
		{"551198765432199", "55+(11) 98765-4321"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Phone(tt.in), "Phone(%q)", tt.in)
	}
}

func TestCNPJ(t *testing.T) {
	assert.Equal(t, "12.345.678/0001-90", CNPJ("12345678000190"))
	assert.Equal(t, "12.345.678/0001-90", CNPJ("12.345.678/0001-90"))
	assert.Equal(t, "12.3", CNPJ("123"))
	assert.Equal(t, "", CNPJ(""))
}

func TestUnmask(t *testing.T) {
	assert.Equal(t, "12345678000190", Unmask("12.345.678/0001-90"))
	assert.Equal(t, "", Unmask("abc"))
	assert.Equal(t, "", Unmask(""))
}

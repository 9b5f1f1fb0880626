package userrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gousers/internal/domain"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// TestBuildUpdateStatement_SingleField garante que só a coluna fornecida
// entra no UPDATE; as demais ficam fora e preservam o valor no banco.
func TestBuildUpdateStatement_SingleField(t *testing.T) {
	query, args, ok := buildUpdateStatement("12345678900", domain.UpdateUserInput{
		Nome: strPtr("Maria"),
	})

	assert.True(t, ok)
	assert.Equal(t, "UPDATE users SET nome = ? WHERE cpf = ?", query)
	assert.Equal(t, []interface{}{"Maria", "12345678900"}, args)
}

// TestBuildUpdateStatement_MultipleFields verifica a ordem estável das
// colunas (a da lista fixa) e o CPF como último argumento.
func TestBuildUpdateStatement_MultipleFields(t *testing.T) {
	query, args, ok := buildUpdateStatement("12345678900", domain.UpdateUserInput{
		Nome:  strPtr("Maria"),
		Email: strPtr("maria@exemplo.com.br"),
		Ativo: boolPtr(false),
	})

	assert.True(t, ok)
	assert.Equal(t, "UPDATE users SET nome = ?, email = ?, ativo = ? WHERE cpf = ?", query)
	assert.Equal(t, []interface{}{"Maria", "maria@exemplo.com.br", false, "12345678900"}, args)
}

// TestBuildUpdateStatement_AtivoFalse garante que `false` explícito conta
// como campo fornecido (nil é omissão, não o zero value).
func TestBuildUpdateStatement_AtivoFalse(t *testing.T) {
	query, args, ok := buildUpdateStatement("12345678900", domain.UpdateUserInput{
		Ativo: boolPtr(false),
	})

	assert.True(t, ok)
	assert.Equal(t, "UPDATE users SET ativo = ? WHERE cpf = ?", query)
	assert.Equal(t, []interface{}{false, "12345678900"}, args)
}

// TestBuildUpdateStatement_AllFields cobre o conjunto completo de colunas
// atualizáveis, na ordem da lista fixa.
func TestBuildUpdateStatement_AllFields(t *testing.T) {
	query, args, ok := buildUpdateStatement("12345678900", domain.UpdateUserInput{
		Nome:  strPtr("Maria"),
		CPF:   strPtr("98765432100"),
		Email: strPtr("maria@exemplo.com.br"),
		Senha: strPtr("$2a$10$digest"),
		Role:  strPtr("ADMIN"),
		Ativo: boolPtr(true),
	})

	assert.True(t, ok)
	assert.Equal(t,
		"UPDATE users SET nome = ?, cpf = ?, email = ?, senha = ?, role = ?, ativo = ? WHERE cpf = ?",
		query)
	assert.Len(t, args, 7)
	assert.Equal(t, "12345678900", args[6])
}

// TestBuildUpdateStatement_NoFields garante que uma atualização vazia não
// gera UPDATE nenhum.
func TestBuildUpdateStatement_NoFields(t *testing.T) {
	query, args, ok := buildUpdateStatement("12345678900", domain.UpdateUserInput{})

	assert.False(t, ok)
	assert.Empty(t, query)
	assert.Nil(t, args)
}

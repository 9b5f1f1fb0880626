package validation

import "regexp"

// emailRegex valida o formato básico local@dominio.tld.
// Validação deliberadamente simples: não há verificação de DNS nem de caixa
// postal, e "a@b" sem TLD já é rejeitado pelo ponto obrigatório.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmailValid informa se a string tem formato de email aceitável.
func IsEmailValid(email string) bool {
	return emailRegex.MatchString(email)
}

package crypto

import (
	"golang.org/x/crypto/bcrypt"

	apperror "gousers/internal/errors"
)

// hashCost é o fator de trabalho do bcrypt, constante para o processo.
const hashCost = bcrypt.DefaultCost

// Hasher aplica o hash adaptativo (bcrypt) à senha antes da persistência.
// Cada chamada gera um salt novo: dois hashes da mesma senha nunca coincidem.
type Hasher struct{}

// NewHasher cria uma nova instância do Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash gera o digest bcrypt do texto puro.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", apperror.NewInternalError("falha ao gerar hash da senha", err)
	}
	return string(digest), nil
}

// Verify informa se o texto puro corresponde ao digest armazenado.
func (h *Hasher) Verify(plaintext string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

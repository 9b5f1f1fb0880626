package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	apperror "gousers/internal/errors"
)

// Tamanhos do formato de fio: base64( IV(12) || tag(16) || ciphertext ).
// O cliente e o servidor precisam concordar nesses offsets.
const (
	ivLength  = 12
	tagLength = 16
)

// KeyLength é o tamanho obrigatório da chave (AES-256).
const KeyLength = 32

// Codec criptografa e descriptografa a senha em trânsito com AES-256-GCM.
// A chave é única por processo, carregada na construção e somente leitura
// depois disso.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec constrói o codec a partir da chave de configuração.
// Falha se a chave não tiver exatamente 32 bytes: o processo não deve subir
// com uma chave inválida.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeyLength {
		return nil, fmt.Errorf("PASSWORD_ENC_KEY inválida: use uma chave de exatamente %d bytes (aes-256), recebidos %d", KeyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("falha ao inicializar cifra AES: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("falha ao inicializar modo GCM: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// Encrypt cifra o texto puro e retorna base64(IV || tag || ciphertext).
// O IV é aleatório a cada chamada; um par (chave, IV) nunca se repete.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, ivLength)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("falha ao gerar IV aleatório: %w", err)
	}

	// O Seal do Go produz ciphertext||tag; o formato de fio usa IV||tag||ciphertext.
	sealed := c.aead.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-tagLength]
	tag := sealed[len(sealed)-tagLength:]

	payload := make([]byte, 0, ivLength+tagLength+len(ciphertext))
	payload = append(payload, iv...)
	payload = append(payload, tag...)
	payload = append(payload, ciphertext...)

	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decrypt decodifica base64(IV || tag || ciphertext), verifica a tag de
// autenticação e retorna o texto puro. Qualquer payload malformado ou
// adulterado resulta em CryptoError; nunca em texto puro corrompido.
func (c *Codec) Decrypt(payload string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", apperror.NewCryptoError("payload de senha inválido (base64)", err)
	}

	// Sem espaço para ciphertext após IV e tag: entrada malformada.
	if len(raw) <= ivLength+tagLength {
		return "", apperror.NewCryptoError("payload de senha inválido", nil)
	}

	iv := raw[:ivLength]
	tag := raw[ivLength : ivLength+tagLength]
	ciphertext := raw[ivLength+tagLength:]

	sealed := make([]byte, 0, len(ciphertext)+tagLength)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, iv, sealed, nil)
	if err != nil {
		// Tag inválida: payload adulterado ou chave errada.
		return "", apperror.NewCryptoError("falha na autenticação do payload de senha", err)
	}

	return string(plaintext), nil
}

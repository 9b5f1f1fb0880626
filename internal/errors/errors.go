package errors

import (
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do serviço.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem
// do erro sem conhecer o tipo concreto.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa uma violação de unicidade (CPF ou email duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// UnauthorizedError representa falhas de autenticação (credenciais ou token).
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// CryptoError representa um payload de senha malformado ou adulterado
// (falha de base64, tamanho insuficiente ou tag de autenticação inválida).
// É erro do chamador, não do servidor: mapeia para 400.
type CryptoError struct {
	Msg string
	Err error
}

func (e *CryptoError) Error() string    { return fmt.Sprintf("Erro de Criptografia: %s", e.Msg) }
func (e *CryptoError) Category() string { return "CRYPTO_ERROR" }
func (e *CryptoError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *CryptoError) Unwrap() error    { return e.Err }

// NewCryptoError cria um erro de payload criptográfico inválido.
func NewCryptoError(msg string, err error) AppError {
	return &CryptoError{Msg: msg, Err: err}
}

// PersistenceError representa uma invariante do banco violada em tempo de
// execução (e.g., releitura pós-insert sem resultado).
type PersistenceError struct {
	Msg string
	Err error
}

func (e *PersistenceError) Error() string    { return fmt.Sprintf("Erro de Persistência: %s", e.Msg) }
func (e *PersistenceError) Category() string { return "PERSISTENCE_ERROR" }
func (e *PersistenceError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *PersistenceError) Unwrap() error    { return e.Err }

// NewPersistenceError cria um erro de invariante de persistência violada.
func NewPersistenceError(msg string, err error) AppError {
	return &PersistenceError{Msg: msg, Err: err}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas não esperadas).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
// O erro do driver fica encapsulado (Unwrap), nunca na mensagem exposta.
func NewDBError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, a categoria
// e a mensagem do corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	if appErr, ok := err.(AppError); ok {
		// O erro é tipado (ValidationError, NotFoundError, etc.)
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratar como erro interno genérico, sem vazar
	// detalhes do erro original para o chamador.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}

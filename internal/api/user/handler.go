package user

import (
	"context"
	"encoding/json"
	"net/http"

	"gousers/internal/domain"
	apperror "gousers/internal/errors"
	"gousers/internal/pkg/logger"
	"gousers/internal/pkg/middleware"
)

// UserService define o contrato para as operações sobre usuários.
type UserService interface {
	CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, cpf string) (domain.User, error)
	UpdateUser(ctx context.Context, cpf string, input domain.UpdateUserInput) (domain.User, error)
	DeleteUser(ctx context.Context, cpf string) error
	Login(ctx context.Context, cpf string, senha string) (string, error)
}

// LoginRequest representa o payload de entrada para o login.
// Senha chega criptografada em trânsito, como na criação de usuário.
type LoginRequest struct {
	CPF   string `json:"cpf"`
	Senha string `json:"senha"`
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// respond padroniza o tratamento de erros e respostas HTTP: sucesso escreve
// o payload com o status dado; erro é traduzido pela taxonomia de apperror.
func (h *Handler) respond(w http.ResponseWriter, data interface{}, err error, successStatus int) {
	if err == nil {
		if data == nil {
			w.WriteHeader(successStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		json.NewEncoder(w).Encode(data)
		return
	}

	// Mapeamento de erros de negócio para status HTTP
	status, category, message := apperror.MapToHTTPStatus(err)

	// Log apenas de erros graves
	if status >= 500 {
		h.Logger.Error("Erro interno no serviço de usuário.", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// CreateUserHandler lida com a requisição POST /users.
// @Summary Cria um novo usuário
// @Description Valida o payload, decifra a senha de transporte, aplica o hash e persiste o usuário.
// @Tags users
// @Accept json
// @Produce json
// @Param user body domain.CreateUserInput true "Dados do usuário (senha criptografada em trânsito)"
// @Success 201 {object} domain.User "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou payload de senha malformado"
// @Failure 409 {object} domain.ErrorResponse "CPF já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /users [post]
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respond(w, nil, apperror.NewValidationError("Payload JSON inválido"), http.StatusCreated)
		return
	}

	created, err := h.Service.CreateUser(r.Context(), input)
	h.respond(w, created, err, http.StatusCreated)
}

// ListUsersHandler lida com a requisição GET /users.
// @Summary Lista todos os usuários
// @Description Retorna todos os usuários, do mais recente para o mais antigo.
// @Tags users
// @Produce json
// @Success 200 {array} domain.User
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /users [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	h.respond(w, users, err, http.StatusOK)
}

// GetUserHandler lida com a requisição GET /users/{cpf}.
// @Summary Busca um usuário pelo CPF
// @Tags users
// @Produce json
// @Param cpf path string true "CPF do usuário"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse "CPF ausente"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{cpf} [get]
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	cpf := r.PathValue("cpf")
	if cpf == "" {
		h.respond(w, nil, apperror.NewValidationError("CPF inválido"), http.StatusOK)
		return
	}

	user, err := h.Service.GetUser(r.Context(), cpf)
	h.respond(w, user, err, http.StatusOK)
}

// UpdateUserHandler lida com a requisição PUT /users/{cpf}.
// @Summary Atualiza parcialmente um usuário
// @Description Somente os campos presentes no payload são alterados; campos omitidos preservam o valor atual.
// @Tags users
// @Accept json
// @Produce json
// @Param cpf path string true "CPF do usuário"
// @Param user body domain.UpdateUserInput true "Campos a atualizar"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse "Nenhum campo fornecido ou valor inválido"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado para outro CPF"
// @Router /users/{cpf} [put]
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	cpf := r.PathValue("cpf")
	if cpf == "" {
		h.respond(w, nil, apperror.NewValidationError("CPF inválido"), http.StatusOK)
		return
	}

	var input domain.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respond(w, nil, apperror.NewValidationError("Payload JSON inválido"), http.StatusOK)
		return
	}

	updated, err := h.Service.UpdateUser(r.Context(), cpf, input)
	h.respond(w, updated, err, http.StatusOK)
}

// DeleteUserHandler lida com a requisição DELETE /users/{cpf}.
// @Summary Remove um usuário pelo CPF
// @Tags users
// @Param cpf path string true "CPF do usuário"
// @Success 204 "Usuário removido"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{cpf} [delete]
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	cpf := r.PathValue("cpf")
	if cpf == "" {
		h.respond(w, nil, apperror.NewValidationError("CPF inválido"), http.StatusNoContent)
		return
	}

	err := h.Service.DeleteUser(r.Context(), cpf)
	h.respond(w, nil, err, http.StatusNoContent)
}

// LoginHandler lida com a requisição POST /login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Recebe CPF e senha (criptografada em trânsito), verifica o digest e emite um JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais do usuário"
// @Success 200 {object} map[string]string "Token JWT emitido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, nil, apperror.NewValidationError("Payload JSON inválido"), http.StatusOK)
		return
	}

	tokenString, err := h.Service.Login(r.Context(), req.CPF, req.Senha)
	if err != nil {
		h.respond(w, nil, err, http.StatusOK)
		return
	}

	h.respond(w, map[string]string{"token": tokenString}, nil, http.StatusOK)
}

// MeHandler lida com a requisição GET /users/me (rota autenticada).
// @Summary Retorna o usuário autenticado
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Router /users/me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		h.respond(w, nil, apperror.NewUnauthorizedError("Autorização necessária"), http.StatusOK)
		return
	}

	user, err := h.Service.GetUser(r.Context(), claims.CPF)
	h.respond(w, user, err, http.StatusOK)
}

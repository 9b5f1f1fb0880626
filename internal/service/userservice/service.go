package userservice

import (
	"context"

	"gousers/internal/domain"
	apperror "gousers/internal/errors"
	"gousers/internal/pkg/logger"
	"gousers/internal/pkg/validation"
)

// Codec é o contrato da criptografia de transporte da senha.
type Codec interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(payload string) (string, error)
}

// Hasher é o contrato do hash adaptativo aplicado antes da persistência.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext string, digest string) bool
}

// TokenService é o contrato da camada de tokens (internal/pkg/token).
type TokenService interface {
	GenerateToken(cpf string, role string) (string, error)
}

// UserService orquestra validação, checagens de unicidade, transformação de
// credenciais e as chamadas ao repositório.
type UserService struct {
	UserRepo domain.UserRepository
	Codec    Codec
	Hasher   Hasher
	TokenSvc TokenService
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando as dependências.
func NewService(repo domain.UserRepository, codec Codec, hasher Hasher, tokenSvc TokenService, log logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		Codec:    codec,
		Hasher:   hasher,
		TokenSvc: tokenSvc,
		logger:   log,
	}
}

// validateEmail rejeita emails fora do formato local@dominio.tld.
func validateEmail(email string) error {
	if !validation.IsEmailValid(email) {
		return apperror.NewValidationError("Email inválido")
	}
	return nil
}

// validateRole rejeita papéis fora do conjunto fechado.
func validateRole(role string) (domain.UserRole, error) {
	parsed, ok := domain.ParseRole(role)
	if !ok {
		return "", apperror.NewValidationError("Role inválida")
	}
	return parsed, nil
}

// transformPassword descriptografa o payload de transporte e aplica o hash
// adaptativo. O texto puro vive apenas dentro desta chamada.
func (s *UserService) transformPassword(payload string) (string, error) {
	plaintext, err := s.Codec.Decrypt(payload)
	if err != nil {
		return "", err
	}
	return s.Hasher.Hash(plaintext)
}

// CreateUser valida o payload, garante a unicidade do CPF, transforma a
// credencial e persiste o novo usuário com ativo=true por padrão.
func (s *UserService) CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	// 1. Validações de formato
	if err := validateEmail(input.Email); err != nil {
		return domain.User{}, err
	}
	role, err := validateRole(input.Role)
	if err != nil {
		return domain.User{}, err
	}

	// 2. Pré-checagem de unicidade do CPF (best-effort; a constraint do
	// banco cobre a corrida entre criações concorrentes)
	existing, err := s.UserRepo.FindOneBy(ctx, domain.LookupByCPF, input.CPF)
	if err != nil {
		return domain.User{}, err
	}
	if existing != nil {
		return domain.User{}, apperror.NewConflictError("CPF já cadastrado")
	}

	// 3. Transformação da credencial: decifra o transporte, aplica o hash
	digest, err := s.transformPassword(input.Senha)
	if err != nil {
		return domain.User{}, err
	}

	// 4. Persistência (ativo default true quando omitido)
	ativo := true
	if input.Ativo != nil {
		ativo = *input.Ativo
	}

	created, err := s.UserRepo.Create(ctx, domain.User{
		Nome:  input.Nome,
		CPF:   input.CPF,
		Email: input.Email,
		Senha: digest,
		Role:  role,
		Ativo: ativo,
	})
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário criado.", map[string]interface{}{"user_id": created.ID, "cpf": created.CPF})
	return created, nil
}

// ListUsers retorna todos os usuários (projeção já exclui a senha).
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.UserRepo.List(ctx)
}

// GetUser busca um usuário pelo CPF.
func (s *UserService) GetUser(ctx context.Context, cpf string) (domain.User, error) {
	user, err := s.UserRepo.FindOneBy(ctx, domain.LookupByCPF, cpf)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado")
	}
	return *user, nil
}

// UpdateUser aplica uma atualização parcial ao usuário identificado pelo CPF.
// Campos omitidos preservam o valor atual; uma atualização sem nenhum campo
// é erro de validação.
func (s *UserService) UpdateUser(ctx context.Context, cpf string, input domain.UpdateUserInput) (domain.User, error) {
	if input.Empty() {
		return domain.User{}, apperror.NewValidationError("Nenhum campo para atualizar")
	}

	// Email novo: valida o formato e garante que nenhum OUTRO CPF já o usa.
	// Atualizar para o próprio email atual não é conflito.
	if input.Email != nil {
		if err := validateEmail(*input.Email); err != nil {
			return domain.User{}, err
		}

		existing, err := s.UserRepo.FindOneBy(ctx, domain.LookupByEmail, *input.Email)
		if err != nil {
			return domain.User{}, err
		}
		if existing != nil && existing.CPF != cpf {
			return domain.User{}, apperror.NewConflictError("Email já cadastrado")
		}
	}

	if input.Role != nil {
		if _, err := validateRole(*input.Role); err != nil {
			return domain.User{}, err
		}
	}

	// Senha nova chega criptografada em trânsito: decifra e aplica o hash
	// antes de tocar o banco.
	if input.Senha != nil {
		digest, err := s.transformPassword(*input.Senha)
		if err != nil {
			return domain.User{}, err
		}
		input.Senha = &digest
	}

	updated, err := s.UserRepo.Update(ctx, cpf, input)
	if err != nil {
		return domain.User{}, err
	}
	if updated == nil {
		return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado")
	}

	s.logger.Info("Usuário atualizado.", map[string]interface{}{"user_id": updated.ID, "cpf": updated.CPF})
	return *updated, nil
}

// DeleteUser remove o usuário pelo CPF (hard delete).
func (s *UserService) DeleteUser(ctx context.Context, cpf string) error {
	deleted, err := s.UserRepo.Delete(ctx, cpf)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFoundError("Usuário não encontrado")
	}

	s.logger.Info("Usuário removido.", map[string]interface{}{"cpf": cpf})
	return nil
}

// Login autentica um usuário pelo CPF e senha (criptografada em trânsito)
// e emite um JWT. CPF inexistente e senha incorreta respondem igual, para
// não dar dicas a quem tenta adivinhar credenciais.
func (s *UserService) Login(ctx context.Context, cpf string, senha string) (string, error) {
	if cpf == "" || senha == "" {
		return "", apperror.NewUnauthorizedError("CPF e senha são obrigatórios")
	}

	plaintext, err := s.Codec.Decrypt(senha)
	if err != nil {
		return "", err
	}

	user, err := s.UserRepo.FindCredentialsByCPF(ctx, cpf)
	if err != nil {
		return "", err
	}
	if user == nil || !s.Hasher.Verify(plaintext, user.Senha) {
		return "", apperror.NewUnauthorizedError("Credenciais inválidas")
	}

	tokenString, err := s.TokenSvc.GenerateToken(user.CPF, string(user.Role))
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação", err)
	}

	return tokenString, nil
}

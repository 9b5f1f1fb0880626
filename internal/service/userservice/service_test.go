package userservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gousers/internal/domain"
	apperror "gousers/internal/errors"
	"gousers/internal/pkg/crypto"
	"gousers/internal/pkg/logger"
	"gousers/internal/service/userservice"
)

// MockUserRepository é uma implementação mock da interface domain.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindOneBy(ctx context.Context, field domain.LookupField, value interface{}) (*domain.User, error) {
	args := m.Called(ctx, field, value)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindCredentialsByCPF(ctx context.Context, cpf string) (*domain.User, error) {
	args := m.Called(ctx, cpf)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, cpf string, input domain.UpdateUserInput) (*domain.User, error) {
	args := m.Called(ctx, cpf, input)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, cpf string) (bool, error) {
	args := m.Called(ctx, cpf)
	return args.Bool(0), args.Error(1)
}

// stubTokenService emite um token fixo, suficiente para os testes de login.
type stubTokenService struct{}

func (stubTokenService) GenerateToken(cpf string, role string) (string, error) {
	return "token-de-teste", nil
}

var (
	testHasher = crypto.NewHasher()
	testLogger = logger.NewLogger("error")
)

// newTestService monta o serviço com codec real (chave fixa de teste),
// hasher bcrypt real e repositório mockado.
func newTestService(t *testing.T) (*userservice.UserService, *MockUserRepository, *crypto.Codec) {
	t.Helper()

	codec, err := crypto.NewCodec([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	mockRepo := new(MockUserRepository)
	svc := userservice.NewService(mockRepo, codec, testHasher, stubTokenService{}, testLogger)
	return svc, mockRepo, codec
}

// encrypt cifra a senha como o cliente faria antes de enviá-la.
func encrypt(t *testing.T, codec *crypto.Codec, plaintext string) string {
	t.Helper()
	payload, err := codec.Encrypt(plaintext)
	require.NoError(t, err)
	return payload
}

// TestCreateUser_Success verifica o fluxo completo: decifra o transporte,
// aplica o hash, persiste com ativo=true por padrão.
func TestCreateUser_Success(t *testing.T) {
	svc, mockRepo, codec := newTestService(t)
	ctx := context.Background()

	mockRepo.On("FindOneBy", mock.Anything, domain.LookupByCPF, "12345678900").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		// O repositório recebe o digest bcrypt, nunca o texto puro nem o
		// payload de transporte.
		return u.Nome == "Maria" &&
			u.CPF == "12345678900" &&
			u.Role == domain.RoleAdmin &&
			u.Ativo &&
			testHasher.Verify("senha123", u.Senha)
	})).Return(domain.User{ID: 1, Nome: "Maria", CPF: "12345678900", Email: "maria@exemplo.com.br", Role: domain.RoleAdmin, Ativo: true}, nil)

	created, err := svc.CreateUser(ctx, domain.CreateUserInput{
		Nome:  "Maria",
		CPF:   "12345678900",
		Email: "maria@exemplo.com.br",
		Senha: encrypt(t, codec, "senha123"),
		Role:  "ADMIN",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Empty(t, created.Senha)
	mockRepo.AssertExpectations(t)
}

// TestCreateUser_InvalidEmail garante a rejeição antes de tocar o repositório.
func TestCreateUser_InvalidEmail(t *testing.T) {
	svc, mockRepo, codec := newTestService(t)

	_, err := svc.CreateUser(context.Background(), domain.CreateUserInput{
		Nome:  "Maria",
		CPF:   "12345678900",
		Email: "a@@b.co",
		Senha: encrypt(t, codec, "senha123"),
		Role:  "ADMIN",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Create")
}

// TestCreateUser_InvalidRole garante que papéis fora do conjunto fechado
// (inclusive variações de caixa) são rejeitados.
func TestCreateUser_InvalidRole(t *testing.T) {
	svc, mockRepo, codec := newTestService(t)

	_, err := svc.CreateUser(context.Background(), domain.CreateUserInput{
		Nome:  "Maria",
		CPF:   "12345678900",
		Email: "maria@exemplo.com.br",
		Senha: encrypt(t, codec, "senha123"),
		Role:  "admin",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Create")
}

// TestCreateUser_DuplicateCPF verifica o conflito na pré-checagem de CPF.
func TestCreateUser_DuplicateCPF(t *testing.T) {
	svc, mockRepo, codec := newTestService(t)

	existing := &domain.User{ID: 7, CPF: "12345678900"}
	mockRepo.On("FindOneBy", mock.Anything, domain.LookupByCPF, "12345678900").Return(existing, nil)

	_, err := svc.CreateUser(context.Background(), domain.CreateUserInput{
		Nome:  "Maria",
		CPF:   "12345678900",
		Email: "maria@exemplo.com.br",
		Senha: encrypt(t, codec, "senha123"),
		Role:  "ADMIN",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	mockRepo.AssertNotCalled(t, "Create")
}

// TestCreateUser_BadTransportPayload verifica que payload de senha
// malformado resulta em CryptoError, sem persistir nada.
func TestCreateUser_BadTransportPayload(t *testing.T) {
	svc, mockRepo, _ := newTestService(t)

	mockRepo.On("FindOneBy", mock.Anything, domain.LookupByCPF, "12345678900").Return(nil, nil)

	_, err := svc.CreateUser(context.Background(), domain.CreateUserInput{
		Nome:  "Maria",
		CPF:   "12345678900",
		Email: "maria@exemplo.com.br",
		Senha: "QUJD", // base64 válido, mas curto demais para IV+tag
		Role:  "ADMIN",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.CryptoError{}, err)
	mockRepo.AssertNotCalled(t, "Create")
}

// TestCreateUser_AtivoExplicitFalse verifica que o default true não
// sobrescreve um ativo=false explícito.
func TestCreateUser_AtivoExplicitFalse(t *testing.T) {
	svc, mockRepo, codec := newTestService(t)

	ativo := false
	mockRepo.On("FindOneBy", mock.Anything, domain.LookupByCPF, "12345678900").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return !u.Ativo
	})).Return(domain.User{ID: 2, Ativo: false}, nil)

	_, err := svc.CreateUser(context.Background(), domain.CreateUserInput{
		Nome:  "Maria",
		CPF:   "12345678900",
		Email: "maria@exemplo.com.br",
		Senha: encrypt(t, codec, "senha123"),
		Role:  "ADMIN",
		Ativo: &ativo,
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestGetUser_NotFound verifica a tradução de ausência para NOT_FOUND.
func TestGetUser_NotFound(t *testing.T) {
	svc, mockRepo, _ := newTestService(t)

	mockRepo.On("FindOneBy", mock.Anything, domain.LookupByCPF, "000").Return(nil, nil)

	_, err := svc.GetUser(context.Background(), "000")

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// TestListUsers_Passthrough verifica o repasse direto da listagem.
func TestListUsers_Passthrough(t *testing.T) {
	svc, mockRepo, _ := newTestService(t)

	expected := []domain.User{
		{ID: 2, Nome: "Maria", CPF: "222"},
		{ID: 1, Nome: "João", CPF: "111"},
	}
	mockRepo.On("List", mock.Anything).Return(expected, nil)

	users, err := svc.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, users)
}

// TestUpdateUser_NoFields verifica que atualização sem nenhum campo é erro
// de validação e não chega ao repositório.
func TestUpdateUser_NoFields(t *testing.T) {
	svc, mockRepo, _ := newTestService(t)

	_, err := svc.UpdateUser(context.Background(), "12345678900", domain.UpdateUserInput{})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Update")
}

// TestUpdateUser_EmailOwnedByOtherCPF verifica o conflito quando o email
// novo já pertence a outro usuário.
func TestUpdateUser_EmailOwnedByOtherCPF(t *testing.T) {
	svc, mockRepo, _ := newTestService(t)

	email := "maria@exemplo.com.br"
	owner := &domain.User{ID: 9, CPF: "99999999999", Email: email}
	mockRepo.On("FindOneBy", mock.Anything, domain.LookupByEmail, email).Return(owner, nil)

	_, err := svc.UpdateUser(context.Background(), "12345678900", domain.UpdateUserInput{Email: &email})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	mockRepo.AssertNotCalled(t, "Update")
}

// TestUpdateUser_OwnEmail verifica que atualizar para o próprio email atual
// não é conflito.
func TestUpdateUser_OwnEmail(t *testing.T) {
	svc, mockRepo, _ := newTestService(t)

	email := "maria@exemplo.com.br"
	self := &domain.User{ID: 3, CPF: "12345678900", Email: email}
	mockRepo.On("FindOneBy", mock.Anything, domain.LookupByEmail, email).Return(self, nil)
	mockRepo.On("Update", mock.Anything, "12345678900", domain.UpdateUserInput{Email: &email}).Return(self, nil)

	updated, err := svc.UpdateUser(context.Background(), "12345678900", domain.UpdateUserInput{Email: &email})

	assert.NoError(t, err)
	assert.Equal(t, email, updated.Email)
	mockRepo.AssertExpectations(t)
}

// TestUpdateUser_PasswordTransformed verifica que a senha nova chega ao
// repositório como digest bcrypt do texto decifrado.
func TestUpdateUser_PasswordTransformed(t *testing.T) {
	svc, mockRepo, codec := newTestService(t)

	payload := encrypt(t, codec, "senhaNova")
	result := &domain.User{ID: 3, CPF: "12345678900"}
	mockRepo.On("Update", mock.Anything, "12345678900", mock.MatchedBy(func(in domain.UpdateUserInput) bool {
		return in.Senha != nil && testHasher.Verify("senhaNova", *in.Senha)
	})).Return(result, nil)

	_, err := svc.UpdateUser(context.Background(), "12345678900", domain.UpdateUserInput{Senha: &payload})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestUpdateUser_NotFound verifica a tradução de zero linhas afetadas.
func TestUpdateUser_NotFound(t *testing.T) {
	svc, mockRepo, _ := newTestService(t)

	nome := "Maria"
	mockRepo.On("Update", mock.Anything, "000", mock.Anything).Return(nil, nil)

	_, err := svc.UpdateUser(context.Background(), "000", domain.UpdateUserInput{Nome: &nome})

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// TestUpdateUser_InvalidRole verifica a rejeição de papel inválido na
// atualização.
func TestUpdateUser_InvalidRole(t *testing.T) {
	svc, mockRepo, _ := newTestService(t)

	role := "GERENTE"
	_, err := svc.UpdateUser(context.Background(), "12345678900", domain.UpdateUserInput{Role: &role})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Update")
}

// TestDeleteUser verifica o sucesso e a tradução de zero linhas para
// NOT_FOUND.
func TestDeleteUser(t *testing.T) {
	svc, mockRepo, _ := newTestService(t)

	mockRepo.On("Delete", mock.Anything, "12345678900").Return(true, nil)
	assert.NoError(t, svc.DeleteUser(context.Background(), "12345678900"))

	mockRepo.On("Delete", mock.Anything, "000").Return(false, nil)
	err := svc.DeleteUser(context.Background(), "000")
	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// TestLogin_Success verifica a emissão de token com credenciais corretas.
func TestLogin_Success(t *testing.T) {
	svc, mockRepo, codec := newTestService(t)

	digest, err := testHasher.Hash("senha123")
	require.NoError(t, err)

	stored := &domain.User{ID: 1, CPF: "12345678900", Role: domain.RoleAdmin, Senha: digest}
	mockRepo.On("FindCredentialsByCPF", mock.Anything, "12345678900").Return(stored, nil)

	tokenString, err := svc.Login(context.Background(), "12345678900", encrypt(t, codec, "senha123"))

	assert.NoError(t, err)
	assert.Equal(t, "token-de-teste", tokenString)
}

// TestLogin_WrongPassword verifica que senha errada e CPF inexistente
// respondem com o mesmo erro de autenticação.
func TestLogin_WrongPassword(t *testing.T) {
	svc, mockRepo, codec := newTestService(t)

	digest, err := testHasher.Hash("senha123")
	require.NoError(t, err)

	stored := &domain.User{ID: 1, CPF: "12345678900", Role: domain.RoleAdmin, Senha: digest}
	mockRepo.On("FindCredentialsByCPF", mock.Anything, "12345678900").Return(stored, nil)
	mockRepo.On("FindCredentialsByCPF", mock.Anything, "000").Return(nil, nil)

	_, err = svc.Login(context.Background(), "12345678900", encrypt(t, codec, "senhaErrada"))
	assert.IsType(t, &apperror.UnauthorizedError{}, err)

	_, err = svc.Login(context.Background(), "000", encrypt(t, codec, "senha123"))
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

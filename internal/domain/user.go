package domain

import "context"

// User representa a entidade de usuário no sistema.
// O CPF é a chave de busca externa; o ID numérico é interno ao banco.
type User struct {
	ID    int64    `json:"id"`
	Nome  string   `json:"nome"`
	CPF   string   `json:"cpf"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	Ativo bool     `json:"ativo"`

	// Senha guarda apenas o digest bcrypt. A tag `json:"-"` garante que o
	// hash nunca apareça na projeção pública da entidade.
	Senha string `json:"-"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

// Papéis permitidos. O conjunto é fechado: qualquer outro valor é rejeitado
// na fronteira por ParseRole antes de chegar ao banco.
const (
	RoleAdmin        UserRole = "ADMIN"
	RoleOwner        UserRole = "OWNER"
	RoleClientStaff  UserRole = "CLIENT_STAFF"
	RoleCompanyStaff UserRole = "COMPANY_STAFF"
)

// ParseRole converte uma string não tipada em UserRole.
// A comparação é sensível a maiúsculas: "admin" não é um papel válido.
func ParseRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleAdmin, RoleOwner, RoleClientStaff, RoleCompanyStaff:
		return UserRole(s), true
	}
	return "", false
}

// IsValidRole informa se a string corresponde exatamente a um dos papéis.
func IsValidRole(s string) bool {
	_, ok := ParseRole(s)
	return ok
}

// CreateUserInput representa o payload de entrada para a criação de usuário.
// Senha chega criptografada em trânsito (base64 de IV||tag||ciphertext).
type CreateUserInput struct {
	Nome  string `json:"nome"`
	CPF   string `json:"cpf"`
	Email string `json:"email"`
	Senha string `json:"senha"`
	Role  string `json:"role"`
	Ativo *bool  `json:"ativo,omitempty"`
}

// UpdateUserInput representa o payload de atualização parcial.
// Campos nil foram omitidos pelo chamador e não devem tocar o banco.
type UpdateUserInput struct {
	Nome  *string `json:"nome,omitempty"`
	CPF   *string `json:"cpf,omitempty"`
	Email *string `json:"email,omitempty"`
	Senha *string `json:"senha,omitempty"`
	Role  *string `json:"role,omitempty"`
	Ativo *bool   `json:"ativo,omitempty"`
}

// Empty informa se nenhum campo foi fornecido na atualização.
func (in UpdateUserInput) Empty() bool {
	return in.Nome == nil && in.CPF == nil && in.Email == nil &&
		in.Senha == nil && in.Role == nil && in.Ativo == nil
}

// LookupField identifica as colunas pelas quais um usuário pode ser buscado.
// O conjunto é fixo: nomes de coluna nunca vêm de entrada do chamador.
type LookupField string

const (
	LookupByID    LookupField = "id"
	LookupByCPF   LookupField = "cpf"
	LookupByEmail LookupField = "email"
)

// UserRepository define o contrato de persistência para a entidade User.
// FindOneBy e Update retornam (nil, nil) quando não há linha correspondente;
// a tradução para NOT_FOUND é responsabilidade do serviço.
type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	FindOneBy(ctx context.Context, field LookupField, value interface{}) (*User, error)
	// FindCredentialsByCPF é a única busca que inclui o digest da senha;
	// existe apenas para a verificação de login.
	FindCredentialsByCPF(ctx context.Context, cpf string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, cpf string, input UpdateUserInput) (*User, error)
	Delete(ctx context.Context, cpf string) (bool, error)
}

// UserService define o contrato de lógica de negócio para a entidade User.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, cpf string) (User, error)
	UpdateUser(ctx context.Context, cpf string, input UpdateUserInput) (User, error)
	DeleteUser(ctx context.Context, cpf string) error
	Login(ctx context.Context, cpf string, senha string) (string, error)
}

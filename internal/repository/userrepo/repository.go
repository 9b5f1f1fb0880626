package userrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"gousers/internal/domain"
	apperror "gousers/internal/errors"
	"gousers/internal/pkg/cache"
	"gousers/internal/pkg/logger"
)

// Chave de cache para a busca por CPF (estratégia Cache-Aside).
const userCacheKey = "user:cpf:%s"

// Colunas da projeção pública. O digest da senha nunca entra aqui:
// só FindCredentialsByCPF o seleciona, e apenas para o login.
const projection = "id, nome, cpf, email, role, ativo"

// updatableColumns é o conjunto fixo de pares (coluna, extrator) usado para
// montar o UPDATE parcial. Nomes de coluna vêm somente desta lista, nunca do
// payload do chamador; valores são sempre parametrizados.
var updatableColumns = []struct {
	column string
	value  func(in domain.UpdateUserInput) (interface{}, bool)
}{
	{"nome", func(in domain.UpdateUserInput) (interface{}, bool) { return deref(in.Nome) }},
	{"cpf", func(in domain.UpdateUserInput) (interface{}, bool) { return deref(in.CPF) }},
	{"email", func(in domain.UpdateUserInput) (interface{}, bool) { return deref(in.Email) }},
	{"senha", func(in domain.UpdateUserInput) (interface{}, bool) { return deref(in.Senha) }},
	{"role", func(in domain.UpdateUserInput) (interface{}, bool) { return deref(in.Role) }},
	{"ativo", func(in domain.UpdateUserInput) (interface{}, bool) {
		if in.Ativo == nil {
			return nil, false
		}
		return *in.Ativo, true
	}},
}

func deref(s *string) (interface{}, bool) {
	if s == nil {
		return nil, false
	}
	return *s, true
}

// buildUpdateStatement monta o UPDATE tocando apenas as colunas cujos campos
// foram fornecidos. Retorna ok=false quando nenhum campo foi fornecido.
func buildUpdateStatement(cpf string, in domain.UpdateUserInput) (query string, args []interface{}, ok bool) {
	assignments := ""
	for _, col := range updatableColumns {
		value, set := col.value(in)
		if !set {
			continue
		}
		if assignments != "" {
			assignments += ", "
		}
		assignments += col.column + " = ?"
		args = append(args, value)
	}

	if assignments == "" {
		return "", nil, false
	}

	args = append(args, cpf)
	return "UPDATE users SET " + assignments + " WHERE cpf = ?", args, true
}

// isDuplicateKey detecta a violação de chave única do MySQL (errno 1062).
// A constraint do banco é a guarda autoritativa de unicidade: a pré-checagem
// do serviço é apenas best-effort e pode perder corridas.
func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

// UserRepository implementa a interface domain.UserRepository sobre MySQL,
// com cache-aside das buscas por CPF no Redis.
type UserRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando as
// dependências de infraestrutura (DB, Cache, Logger).
func NewUserRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// scanUser mapeia uma linha da projeção pública para a entidade.
func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Nome, &u.CPF, &u.Email, &u.Role, &u.Ativo)
	return u, err
}

// Create insere um novo usuário (com a senha já em digest) e relê a linha
// pelo ID gerado para devolver a projeção canônica, sem senha.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const insertSQL = `INSERT INTO users (nome, cpf, email, senha, role, ativo)
	                   VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		user.Nome,
		user.CPF,
		user.Email,
		user.Senha,
		user.Role,
		user.Ativo,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.User{}, apperror.NewConflictError("CPF ou email já cadastrado")
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("falha ao inserir usuário", err)
	}

	insertedID, err := result.LastInsertId()
	if err != nil {
		return domain.User{}, apperror.NewDBError("falha ao obter o ID gerado", err)
	}

	created, err := r.FindOneBy(ctx, domain.LookupByID, insertedID)
	if err != nil {
		return domain.User{}, err
	}
	if created == nil {
		// A linha recém-inserida sumiu: inconsistência no banco.
		return domain.User{}, apperror.NewPersistenceError("falha ao recuperar usuário criado", nil)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": created.ID, "cpf": created.CPF})
	return *created, nil
}

// FindOneBy busca um único usuário por id, cpf ou email.
// Retorna (nil, nil) quando não há linha correspondente: ausência não é erro
// na camada de repositório.
func (r *UserRepository) FindOneBy(ctx context.Context, field domain.LookupField, value interface{}) (*domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// O nome da coluna vem do conjunto fechado domain.LookupField.
	switch field {
	case domain.LookupByID, domain.LookupByCPF, domain.LookupByEmail:
	default:
		return nil, apperror.NewInternalError(fmt.Sprintf("campo de busca não suportado: %s", field), nil)
	}

	// Cache-Aside (READ): apenas para a busca por CPF, a chave externa.
	if field == domain.LookupByCPF {
		if cpf, ok := value.(string); ok {
			if u, found := r.readCache(ctxTimeout, cpf); found {
				return u, nil
			}
		}
	}

	query := fmt.Sprintf("SELECT %s FROM users WHERE %s = ? LIMIT 1", projection, field)
	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Falha ao buscar usuário no DB.", err)
		return nil, apperror.NewDBError("falha ao buscar usuário", err)
	}

	// Cache-Aside (WRITE): popula o cache para futuras buscas por CPF.
	if field == domain.LookupByCPF {
		r.writeCache(ctxTimeout, user)
	}

	return &user, nil
}

// FindCredentialsByCPF busca o usuário incluindo o digest da senha.
// Nunca usa o cache: o digest não pode ser serializado para fora do banco.
func (r *UserRepository) FindCredentialsByCPF(ctx context.Context, cpf string) (*domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `SELECT id, nome, cpf, email, role, ativo, senha FROM users WHERE cpf = ? LIMIT 1`

	var u domain.User
	err := r.DB.QueryRowContext(ctxTimeout, query, cpf).
		Scan(&u.ID, &u.Nome, &u.CPF, &u.Email, &u.Role, &u.Ativo, &u.Senha)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Falha ao buscar credenciais no DB.", err)
		return nil, apperror.NewDBError("falha ao buscar credenciais", err)
	}

	return &u, nil
}

// List retorna todos os usuários, do mais recente para o mais antigo.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT %s FROM users ORDER BY id DESC", projection)

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao listar usuários no DB.", err)
		return nil, apperror.NewDBError("falha ao listar usuários", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Nome, &u.CPF, &u.Email, &u.Role, &u.Ativo); err != nil {
			return nil, apperror.NewDBError("falha ao mapear usuário", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("falha ao percorrer usuários", err)
	}

	return users, nil
}

// Update aplica uma atualização parcial ao usuário identificado pelo CPF.
// Campos omitidos (nil) ficam fora do UPDATE e preservam o valor atual.
// Sem nenhum campo fornecido, devolve a linha atual sem tocar o banco.
// Retorna (nil, nil) quando nenhuma linha corresponde ao CPF.
func (r *UserRepository) Update(ctx context.Context, cpf string, input domain.UpdateUserInput) (*domain.User, error) {
	query, args, ok := buildUpdateStatement(cpf, input)
	if !ok {
		return r.FindOneBy(ctx, domain.LookupByCPF, cpf)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, query, args...)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, apperror.NewConflictError("CPF ou email já cadastrado")
		}
		r.logger.Error("Falha ao atualizar usuário no DB.", err)
		return nil, apperror.NewDBError("falha ao atualizar usuário", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperror.NewDBError("falha ao verificar linhas afetadas", err)
	}
	if affected == 0 {
		return nil, nil
	}

	// Invalida o cache do CPF antigo e, se o CPF mudou, a releitura abaixo
	// repopula a entrada nova.
	r.invalidateCache(ctxTimeout, cpf)

	currentCPF := cpf
	if input.CPF != nil {
		currentCPF = *input.CPF
	}

	return r.FindOneBy(ctx, domain.LookupByCPF, currentCPF)
}

// Delete remove o usuário pelo CPF. Retorna true se exatamente uma linha
// foi removida.
func (r *UserRepository) Delete(ctx context.Context, cpf string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, "DELETE FROM users WHERE cpf = ?", cpf)
	if err != nil {
		r.logger.Error("Falha ao remover usuário no DB.", err)
		return false, apperror.NewDBError("falha ao remover usuário", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperror.NewDBError("falha ao verificar linhas afetadas", err)
	}

	r.invalidateCache(ctxTimeout, cpf)

	return affected > 0, nil
}

// --- Cache-Aside ---

func (r *UserRepository) readCache(ctx context.Context, cpf string) (*domain.User, bool) {
	key := fmt.Sprintf(userCacheKey, cpf)
	cached, err := r.Cache.Get(ctx, key)
	if err != nil {
		// Cache miss ou Redis indisponível: segue para o banco.
		return nil, false
	}

	var u domain.User
	if json.Unmarshal([]byte(cached), &u) != nil {
		return nil, false
	}
	return &u, true
}

func (r *UserRepository) writeCache(ctx context.Context, user domain.User) {
	// A projeção serializada não carrega a senha (tag `json:"-"`).
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	key := fmt.Sprintf(userCacheKey, user.CPF)
	_ = r.Cache.Set(ctx, key, data, r.CacheTTL)
}

func (r *UserRepository) invalidateCache(ctx context.Context, cpf string) {
	_ = r.Cache.Delete(ctx, fmt.Sprintf(userCacheKey, cpf))
}

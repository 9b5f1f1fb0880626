package healthrepo

import (
	"context"
	"database/sql"
	"time"
)

// HealthRepository verifica a disponibilidade do banco de dados.
type HealthRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
}

// NewHealthRepository cria uma nova instância do HealthRepository.
func NewHealthRepository(db *sql.DB, dbTimeout time.Duration) *HealthRepository {
	return &HealthRepository{
		DB:        db,
		DBTimeout: dbTimeout,
	}
}

// Ping executa um SELECT 1 usando uma conexão do pool. A conexão é devolvida
// ao pool ao final, com ou sem erro.
func (r *HealthRepository) Ping(ctx context.Context) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var one int
	return r.DB.QueryRowContext(ctxTimeout, "SELECT 1").Scan(&one)
}

package database

import (
	"database/sql"
	"fmt"
	"time"

	// Driver MySQL para database/sql (o banco original do sistema é MySQL).
	"github.com/go-sql-driver/mysql"
)

// Opts agrupa os parâmetros de conexão carregados da configuração.
type Opts struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

// NewMySQLDB inicializa e configura o pool de conexões com o MySQL.
// Retorna a conexão *sql.DB pronta para uso.
func NewMySQLDB(o Opts) (*sql.DB, error) {
	// 1. Montar a DSN via driver (evita interpolação manual de credenciais)
	dsnCfg := mysql.NewConfig()
	dsnCfg.User = o.User
	dsnCfg.Passwd = o.Pass
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = fmt.Sprintf("%s:%d", o.Host, o.Port)
	dsnCfg.DBName = o.Name
	dsnCfg.ParseTime = true
	dsnCfg.Loc = time.UTC

	// 2. Abrir a conexão (ainda sem usar o pool)
	db, err := sql.Open("mysql", dsnCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	// 3. Testar a conexão imediatamente
	// Garante que as credenciais e o servidor estão corretos.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	// 4. Configuração do Connection Pool
	// Limite de 10 conexões simultâneas; requisições excedentes aguardam
	// na fila do database/sql.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return db, nil
}
